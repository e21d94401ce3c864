package engine

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations:
//   SliceView      — wraps []Record (CSV input, ad-hoc tests)
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — filtered subset (indices into parent, zero-copy)
//   ScaleView      — wraps any view, converts one measure's unit on read
//   AliasView      — wraps any view, renames one dimension on read
//
// The concordance view in package concord wraps the same interface to
// normalize place labels on read. Consumers bind accessors once at load;
// the engine reads millions of times.
// ============================================================================

// RecordView provides indexed access to a dataset.
// Dimension and Measure are called in tight loops — keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	DimensionKeys() []string
	MeasureKeys() []string
}

// ============================================================================
// SLICE VIEW — wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
type SliceView struct {
	records []Record
	dimKeys []string
	mesKeys []string
}

// NewSliceView creates a RecordView from a []Record slice.
func NewSliceView(records []Record) RecordView {
	v := &SliceView{records: records}
	v.cacheKeys()
	return v
}

func (v *SliceView) cacheKeys() {
	dimSeen := make(map[string]bool)
	mesSeen := make(map[string]bool)
	for _, r := range v.records {
		for k := range r.Dimensions {
			if !dimSeen[k] {
				dimSeen[k] = true
				v.dimKeys = append(v.dimKeys, k)
			}
		}
		for k := range r.Measures {
			if !mesSeen[k] {
				mesSeen[k] = true
				v.mesKeys = append(v.mesKeys, k)
			}
		}
	}
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	return v.records[i].Dimensions[key]
}

func (v *SliceView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.records) {
		return 0
	}
	return v.records[i].Measures[key]
}

func (v *SliceView) DimensionKeys() []string { return v.dimKeys }
func (v *SliceView) MeasureKeys() []string   { return v.mesKeys }

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

// NewSubView creates a view over a subset of parent rows.
func NewSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// SCALE VIEW — on-read unit conversion (zero-copy)
// ============================================================================

// ScaleView wraps a RecordView and multiplies one measure by a fixed
// conversion factor on read. No data copy — conversion happens per Measure()
// call. Used for pointwise unit conversions such as terajoules to MWh.
type ScaleView struct {
	parent  RecordView
	measure string
	factor  float64
}

// NewScaleView wraps parent so that reads of measure are multiplied by factor.
func NewScaleView(parent RecordView, measure string, factor float64) RecordView {
	return &ScaleView{parent: parent, measure: measure, factor: factor}
}

func (v *ScaleView) Len() int { return v.parent.Len() }

func (v *ScaleView) Dimension(i int, key string) string {
	return v.parent.Dimension(i, key)
}

func (v *ScaleView) Measure(i int, key string) float64 {
	val := v.parent.Measure(i, key)
	if key == v.measure {
		return val * v.factor
	}
	return val
}

func (v *ScaleView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *ScaleView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// ALIAS VIEW — on-read dimension rename (zero-copy)
// ============================================================================

// AliasView exposes one of the parent's dimensions under a different name.
// Reads of alias are redirected to source; every other key passes through.
// Used when an input carries its place labels in a non-canonical column
// (e.g. District) that the rest of the pipeline reads as Region.
type AliasView struct {
	parent RecordView
	alias  string
	source string
}

// NewAliasView wraps parent so that reads of alias read the source dimension.
func NewAliasView(parent RecordView, alias, source string) RecordView {
	return &AliasView{parent: parent, alias: alias, source: source}
}

func (v *AliasView) Len() int { return v.parent.Len() }

func (v *AliasView) Dimension(i int, key string) string {
	if key == v.alias {
		key = v.source
	}
	return v.parent.Dimension(i, key)
}

func (v *AliasView) Measure(i int, key string) float64 {
	return v.parent.Measure(i, key)
}

func (v *AliasView) DimensionKeys() []string {
	keys := v.parent.DimensionKeys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == v.source {
			k = v.alias
		}
		if k == v.alias && contains(out, v.alias) {
			continue
		}
		out = append(out, k)
	}
	return out
}

func (v *AliasView) MeasureKeys() []string { return v.parent.MeasureKeys() }

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

// ============================================================================
// DOMAIN ADAPTER — zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Registration]().
//	    Dimension(engine.DimFuelType, func(r Registration) string { return r.FuelType }).
//	    Measure(engine.MeasureRecordCount, func(Registration) float64 { return 1 })
//
//	view := adapter.Bind(registrations)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy — holds reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.data) {
		return 0
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }
