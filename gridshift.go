// Package gridshift turns cleaned administrative source extracts into
// canonical electrification indicator tables.
//
// Usage:
//
//	import (
//	    "github.com/gridshift-org/gridshift/catalog"
//	    "github.com/gridshift-org/gridshift/concord"
//	    "github.com/gridshift-org/gridshift/pipeline"
//	)
//
//	runner := pipeline.New(view, concord.NewResolver(concord.DefaultNZ()),
//	    catalog.BySource(catalog.SourceMVR),
//	    pipeline.WithSinks(csvSink, store),
//	)
//	summary := runner.Run()
//
// Each catalog.Metric is a declarative definition (filter predicates, group
// dimensions, calculation kind) that fully determines one output table. The
// engine recomputes every metric from a full in-memory snapshot per run — no
// incremental updates, no persistence format of its own beyond the artifact
// sinks. All computation is local; data acquisition and serving live with
// external collaborators.
package gridshift
