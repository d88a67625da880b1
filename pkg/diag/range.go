package diag

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging is a byte range [From, To) in a text. Structs can embed Ranging to
// implement Ranger.
type Ranging struct {
	From int
	To   int
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// PointRanging returns a zero-width Ranging at p.
func PointRanging(p int) Ranging { return Ranging{p, p} }

// MixedRanging returns a Ranging from the start of a to the end of b.
func MixedRanging(a, b Ranger) Ranging {
	return Ranging{a.Range().From, b.Range().To}
}
