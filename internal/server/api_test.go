package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/treekit/lineage/pkg/pipeline"
	"github.com/treekit/lineage/pkg/store"
)

func testMembersJSON() string {
	return `[
		{"id": "anna", "first_name": "Anna", "last_name": "Vogel", "spouse_id": "bert"},
		{"id": "bert", "first_name": "Bert", "last_name": "Vogel", "spouse_id": "anna"},
		{"id": "carl", "first_name": "Carl", "last_name": "Vogel", "father_id": "bert", "mother_id": "anna"}
	]`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := httptest.NewServer(New(runner, st, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody[map[string]string](t, resp)
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if body["version"] == "" {
		t.Error("version should be reported")
	}
}

func TestLayoutEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/layout", fmt.Sprintf(`{"members": %s}`, testMembersJSON()))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}

	body := decodeBody[layoutResponse](t, resp)
	if body.MembersHash == "" {
		t.Error("members_hash should be set")
	}
	if len(body.Layout.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(body.Layout.Nodes))
	}
	if len(body.Findings) != 0 {
		t.Errorf("clean family should have no findings: %v", body.Findings)
	}
}

func TestLayoutEndpointDOTFormat(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/layout",
		fmt.Sprintf(`{"members": %s, "format": "dot"}`, testMembersJSON()))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte("digraph")) {
		t.Errorf("body should be DOT: %s", body[:min(len(body), 40)])
	}
}

func TestLayoutEndpointGridMode(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/layout",
		fmt.Sprintf(`{"members": %s, "mode": "grid"}`, testMembersJSON()))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody[layoutResponse](t, resp)
	if body.Layout.Mode != "grid" {
		t.Errorf("mode = %q, want grid", body.Layout.Mode)
	}
}

func TestLayoutEndpointErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed JSON", `{`, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing members", `{"mode": "tree"}`, http.StatusBadRequest, "INVALID_MEMBERS"},
		{"invalid mode", fmt.Sprintf(`{"members": %s, "mode": "spiral"}`, testMembersJSON()), http.StatusBadRequest, "INVALID_MODE"},
		{"invalid format", fmt.Sprintf(`{"members": %s, "format": "gif"}`, testMembersJSON()), http.StatusBadRequest, "INVALID_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/v1/layout", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body := decodeBody[errorResponse](t, resp)
			if string(body.Code) != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if body.RequestID == "" {
				t.Error("error responses should carry the request ID")
			}
		})
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Create
	resp := postJSON(t, srv.URL+"/v1/snapshots",
		fmt.Sprintf(`{"name": "vogels", "members": %s}`, testMembersJSON()))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	created := decodeBody[store.Summary](t, resp)
	if created.ID == "" || created.Count != 3 {
		t.Fatalf("unexpected summary: %+v", created)
	}

	// Get
	resp, err := http.Get(srv.URL + "/v1/snapshots/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	snap := decodeBody[store.Snapshot](t, resp)
	if snap.Name != "vogels" || len(snap.Members) != 3 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}

	// List
	resp, err = http.Get(srv.URL + "/v1/snapshots")
	if err != nil {
		t.Fatal(err)
	}
	list := decodeBody[map[string][]store.Summary](t, resp)
	if len(list["snapshots"]) != 1 {
		t.Errorf("expected 1 snapshot, got %d", len(list["snapshots"]))
	}

	// Layout from snapshot
	resp, err = http.Get(srv.URL + "/v1/snapshots/" + created.ID + "/layout?mode=grid")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot layout status = %d, want 200", resp.StatusCode)
	}
	computed := decodeBody[layoutResponse](t, resp)
	if computed.Layout.Mode != "grid" || len(computed.Layout.Nodes) != 3 {
		t.Errorf("unexpected layout: mode=%s nodes=%d", computed.Layout.Mode, len(computed.Layout.Nodes))
	}

	// Delete
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/snapshots/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()

	// Gone
	resp, err = http.Get(srv.URL + "/v1/snapshots/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSnapshotNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/snapshots/00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if string(body.Code) != "SNAPSHOT_NOT_FOUND" {
		t.Errorf("code = %q, want SNAPSHOT_NOT_FOUND", body.Code)
	}
}

func TestSnapshotRoutesWithoutStore(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := httptest.NewServer(New(runner, nil, logger).Handler())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/snapshots", `{"members": []}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRequestIDPassthrough(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "client-supplied" {
		t.Errorf("X-Request-ID = %q, want client-supplied", got)
	}
}
