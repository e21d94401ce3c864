package concord

import "github.com/gridshift-org/gridshift/engine"

// ============================================================================
// CONCORDANCE VIEW — on-read place-name normalization (zero-copy)
// ============================================================================
// Wraps any engine.RecordView so that reads of one dimension pass through
// the resolver. The underlying table keeps its raw district labels; every
// consumer downstream of the view sees canonical regions.
// ============================================================================

// View normalizes one dimension of a parent view through a Resolver.
type View struct {
	parent    engine.RecordView
	dimension string
	resolver  *Resolver
}

// NewView wraps parent so that reads of dimension resolve raw place labels
// to canonical regions. No data copy — resolution happens per Dimension()
// call.
func NewView(parent engine.RecordView, dimension string, resolver *Resolver) engine.RecordView {
	return &View{parent: parent, dimension: dimension, resolver: resolver}
}

func (v *View) Len() int { return v.parent.Len() }

func (v *View) Dimension(i int, key string) string {
	val := v.parent.Dimension(i, key)
	if key == v.dimension {
		return v.resolver.Resolve(val)
	}
	return val
}

func (v *View) Measure(i int, key string) float64 {
	return v.parent.Measure(i, key)
}

func (v *View) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *View) MeasureKeys() []string   { return v.parent.MeasureKeys() }
