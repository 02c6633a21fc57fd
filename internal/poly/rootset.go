package poly

// RootSet is the complete collection of roots of one polynomial, tagged with
// the length of the polynomial they came from. It is not modified after the
// root finder hands it out.
type RootSet struct {
	Roots  []complex128 `json:"roots"`
	Length float64      `json:"length"`
}

// Degree is the number of roots minus one.
func (r RootSet) Degree() int { return len(r.Roots) - 1 }

// Clone returns a RootSet backed by its own slice.
func (r RootSet) Clone() RootSet {
	roots := make([]complex128, len(r.Roots))
	copy(roots, r.Roots)
	return RootSet{Roots: roots, Length: r.Length}
}
