package feedback

import (
	"fmt"
	"strings"
)

// Bits is the set of values of one kind, with the value of ordinal i stored
// in bit 1<<i.
type Bits uint16

// BitsOf returns the set containing the given values. The values should all
// be of the same kind.
func BitsOf[V Value](vs ...V) Bits {
	var b Bits
	for _, v := range vs {
		b |= 1 << v.Ordinal()
	}
	return b
}

// AllBits returns the set of all values of a kind.
func AllBits(k Kind) Bits { return 1<<k.Size() - 1 }

// Selector classifies events along the six kinds. Each kind holds a
// non-empty set of values; a kind that was not constrained holds all of its
// values.
//
// Selector is comparable, and two selectors compare equal exactly when their
// packed forms are equal.
type Selector struct {
	sets [nKinds]Bits
}

// PackedBits is the number of bits used by the packed form of a Selector.
var PackedBits = func() uint {
	var n uint
	for _, k := range Kinds() {
		n += uint(k.Size())
	}
	return n
}()

// All is the selector that matches every event.
var All = func() Selector {
	var s Selector
	for _, k := range Kinds() {
		s.sets[k] = AllBits(k)
	}
	return s
}()

// Of returns a selector containing the given values. Kinds for which no value
// is given are unconstrained.
func Of(vs ...Value) Selector {
	var s Selector
	for _, v := range vs {
		s.sets[v.Kind()] |= 1 << v.Ordinal()
	}
	for _, k := range Kinds() {
		if s.sets[k] == 0 {
			s.sets[k] = AllBits(k)
		}
	}
	return s
}

// FromBits builds a selector from explicit sets, one per kind. It returns an
// error if any set is empty or contains bits beyond the size of its kind.
func FromBits(c, a, w, r, u, e Bits) (Selector, error) {
	s := Selector{[nKinds]Bits{c, a, w, r, u, e}}
	for _, k := range Kinds() {
		switch {
		case s.sets[k] == 0:
			return Selector{}, fmt.Errorf("empty %s set", k)
		case s.sets[k]&^AllBits(k) != 0:
			return Selector{}, fmt.Errorf("invalid %s set %#x", k, s.sets[k])
		}
	}
	return s, nil
}

// Unpack is the inverse of Pack. It returns an error if p has bits beyond
// PackedBits set, or if any kind would be empty.
func Unpack(p uint64) (Selector, error) {
	if p>>PackedBits != 0 {
		return Selector{}, fmt.Errorf("selector bits %#x out of range", p)
	}
	var s Selector
	kinds := Kinds()
	for i := len(kinds) - 1; i >= 0; i-- {
		k := kinds[i]
		s.sets[k] = Bits(p) & AllBits(k)
		if s.sets[k] == 0 {
			return Selector{}, fmt.Errorf("selector bits %#x have an empty %s set", p, k)
		}
		p >>= uint(k.Size())
	}
	return s, nil
}

// Pack packs the selector into an integer by concatenating the sets of each
// kind, with the case set in the most significant position.
func (s Selector) Pack() uint64 {
	var p uint64
	for _, k := range Kinds() {
		p = p<<uint(k.Size()) | uint64(s.sets[k])
	}
	return p
}

// Bits returns the set of the given kind.
func (s Selector) Bits(k Kind) Bits { return s.sets[k] }

// Has reports whether the selector contains v.
func (s Selector) Has(v Value) bool {
	return s.sets[v.Kind()]&(1<<v.Ordinal()) != 0
}

// IncludedIn reports whether every event matched by s is also matched by
// other.
func (s Selector) IncludedIn(other Selector) bool {
	for _, k := range Kinds() {
		if s.sets[k]&^other.sets[k] != 0 {
			return false
		}
	}
	return true
}

// Covers reports whether s matches every event matched by other.
func (s Selector) Covers(other Selector) bool { return other.IncludedIn(s) }

// IsAll reports whether s is unconstrained in all kinds.
func (s Selector) IsAll() bool { return s == All }

// String returns the textual form of the selector, accepted by
// ParseSelector. Unconstrained kinds are omitted, so All is written as an
// empty string.
func (s Selector) String() string {
	var groups []string
	for _, k := range Kinds() {
		if s.sets[k] == AllBits(k) {
			continue
		}
		var names []string
		for i := 0; i < k.Size(); i++ {
			if s.sets[k]&(1<<i) != 0 {
				names = append(names, nameOf(k, i))
			}
		}
		groups = append(groups, strings.Join(names, ","))
	}
	return strings.Join(groups, "-")
}

// Event is a classified event raised by the host.
type Event struct {
	Case       Case
	Action     Action
	When       When
	Resolve    Resolve
	Unresolved UnresolvedCount
	Errors     ErrorCount

	Name string
	Type string
	// Value is the value of the snippet; an empty string when it has none.
	Value string
	// UnresolvedNames is the already formatted list of unresolved names.
	UnresolvedNames string
	// ErrorLines are formatted diagnostics, rendered through the errorline
	// field.
	ErrorLines []string
}

// Selector returns the selector matching exactly the classification of the
// event.
func (e Event) Selector() Selector {
	return Of(e.Case, e.Action, e.When, e.Resolve, e.Unresolved, e.Errors)
}

// JoinUnresolved formats a list of unresolved names the way the built-in
// modes expect {unresolved} to look: a leading space, names separated by
// commas, and "and" before the last one.
func JoinUnresolved(names []string) string {
	var sb strings.Builder
	for i, name := range names {
		switch {
		case i == 0:
			sb.WriteString(" ")
		case i == len(names)-1:
			sb.WriteString(", and ")
		default:
			sb.WriteString(", ")
		}
		sb.WriteString(name)
	}
	return sb.String()
}
