// Package pkg provides the core libraries for Lineage family-tree layout.
//
// # Overview
//
// Lineage turns a flat list of family member records into a positioned tree
// diagram. The pkg directory is organized into three main areas:
//
//  1. Domain logic: [member] (records and linting), [layout] (tree and grid
//     positioning), [render] (DOT/SVG/PNG artifacts)
//  2. Infrastructure: [cache] (file and Redis content-addressed caching),
//     [store] (file and MongoDB snapshot persistence), [config], [errors],
//     [observability], [buildinfo]
//  3. Orchestration: [pipeline] (load → layout → render with caching)
//
// # Architecture
//
// The typical data flow through Lineage:
//
//	family.json (flat member records)
//	         ↓
//	    [member] package (normalized collection, indexed by ID)
//	         ↓
//	    [layout] package (positions + edges)
//	         ↓
//	    [render] package (DOT → SVG/PNG)
//
// Members reference each other only by ID (father, mother, spouse), so the
// layout tolerates dangling references and cycles; [member.Lint] reports
// them as advisory findings instead of failing.
//
// # Quick Start
//
// Compute and render a family tree:
//
//	import (
//	    "github.com/treekit/lineage/pkg/layout"
//	    "github.com/treekit/lineage/pkg/member"
//	    "github.com/treekit/lineage/pkg/render"
//	)
//
//	// 1. Load members
//	c, _ := member.ReadMembersFile("family.json")
//
//	// 2. Compute the layout
//	l := layout.Compute(c, layout.DefaultConfig())
//
//	// 3. Render to SVG
//	dot := render.ToDOT(l, render.Options{})
//	svg, _ := render.RenderSVG(dot)
//
// # Main Packages
//
// [member] - The family member data model: a single flat record type with
// ID back-references, a Collection indexed by ID, and Lint for detecting
// duplicates, dangling references, asymmetric spouse links, and cycles.
//
// [layout] - The layout engine. Compute builds couple-merged subtrees from
// the root members and positions them with bottom-up width accumulation;
// ComputeGrid is the structure-free fallback. Both are pure functions of
// the collection and a Config.
//
// [render] - Artifact generation. ToDOT pins every node at its computed
// position so Graphviz (neato) reproduces the layout; SVG comes from
// goccy/go-graphviz, PNG/PDF via rsvg-convert.
//
// [pipeline] - The complete load → layout → render pipeline used by both
// the CLI and the HTTP service. The Runner caches every stage under
// content-addressed keys, so identical inputs never recompute.
//
// [cache] - Cache interface with file, Redis, and null backends plus the
// Keyer that derives members/layout/artifact keys from content hashes.
//
// [store] - Snapshot persistence for the serve surface: file-based for
// local use, MongoDB-backed for deployments.
//
// [config] - TOML application config (~/.config/lineage/config.toml)
// selecting layout constants and the cache/store backends.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [member]: https://pkg.go.dev/github.com/treekit/lineage/pkg/member
// [member.Lint]: https://pkg.go.dev/github.com/treekit/lineage/pkg/member#Lint
// [layout]: https://pkg.go.dev/github.com/treekit/lineage/pkg/layout
// [render]: https://pkg.go.dev/github.com/treekit/lineage/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/treekit/lineage/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/treekit/lineage/pkg/cache
// [store]: https://pkg.go.dev/github.com/treekit/lineage/pkg/store
// [config]: https://pkg.go.dev/github.com/treekit/lineage/pkg/config
// [errors]: https://pkg.go.dev/github.com/treekit/lineage/pkg/errors
// [observability]: https://pkg.go.dev/github.com/treekit/lineage/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/treekit/lineage/pkg/buildinfo
package pkg
