package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/treekit/lineage/pkg/buildinfo"
	apperrors "github.com/treekit/lineage/pkg/errors"
	"github.com/treekit/lineage/pkg/layout"
	"github.com/treekit/lineage/pkg/member"
	"github.com/treekit/lineage/pkg/pipeline"
	"github.com/treekit/lineage/pkg/store"
)

// =============================================================================
// Requests and Responses
// =============================================================================

// layoutRequest is the body of POST /v1/layout.
type layoutRequest struct {
	Members  []member.FamilyMember `json:"members"`
	Mode     string                `json:"mode,omitempty"`
	Config   *layout.Config        `json:"config,omitempty"`
	Format   string                `json:"format,omitempty"`
	Detailed bool                  `json:"detailed,omitempty"`
}

// layoutResponse is the JSON body returned for format "json".
type layoutResponse struct {
	MembersHash string           `json:"members_hash"`
	Findings    []member.Finding `json:"findings,omitempty"`
	Layout      layout.Layout    `json:"layout"`
}

// snapshotRequest is the body of POST /v1/snapshots.
type snapshotRequest struct {
	Name    string                `json:"name,omitempty"`
	Members []member.FamilyMember `json:"members"`
}

var artifactContentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "request body is not valid JSON"))
		return
	}
	if req.Members == nil {
		writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidMembers, "members is required"))
		return
	}

	s.computeAndWrite(w, r, req.Members, req.Mode, req.Config, req.Format, req.Detailed)
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}

	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "request body is not valid JSON"))
		return
	}
	if req.Members == nil {
		writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidMembers, "members is required"))
		return
	}

	snap := store.NewSnapshot(req.Name, req.Members)
	if err := s.store.Put(r.Context(), snap); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, store.Summary{
		ID:        snap.ID,
		Name:      snap.Name,
		Count:     len(snap.Members),
		CreatedAt: snap.CreatedAt,
		UpdatedAt: snap.UpdatedAt,
	})
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}

	summaries, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": summaries})
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}

	snap, err := s.loadSnapshot(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}

	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshotLayout(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}

	snap, err := s.loadSnapshot(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	s.computeAndWrite(w, r, snap.Members, q.Get("mode"), nil, q.Get("format"), q.Get("detailed") == "true")
}

// =============================================================================
// Helpers
// =============================================================================

// computeAndWrite runs the pipeline for the given members and writes either
// the structured JSON response or a raw artifact, depending on format.
func (s *Server) computeAndWrite(w http.ResponseWriter, r *http.Request, members []member.FamilyMember, mode string, cfg *layout.Config, format string, detailed bool) {
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "unsupported format"))
		return
	}
	if mode != "" {
		if err := pipeline.ValidateMode(mode); err != nil {
			writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidMode, err, "unsupported mode"))
			return
		}
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Members:  members,
		Mode:     mode,
		Config:   cfg,
		Formats:  []string{format},
		Detailed: detailed,
		Logger:   s.logger,
	})
	if err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "compute layout"))
		return
	}

	if format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, layoutResponse{
			MembersHash: result.MembersHash,
			Findings:    result.Findings,
			Layout:      result.Layout,
		})
		return
	}

	w.Header().Set("Content-Type", artifactContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// loadSnapshot fetches the snapshot named by the {id} route parameter.
func (s *Server) loadSnapshot(r *http.Request) (*store.Snapshot, error) {
	id := chi.URLParam(r, "id")
	snap, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// requireStore writes a 503 when no snapshot store is configured.
func (s *Server) requireStore(w http.ResponseWriter, r *http.Request) bool {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:     "snapshot store is not configured",
			RequestID: RequestID(r.Context()),
		})
		return false
	}
	return true
}
