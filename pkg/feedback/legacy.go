package feedback

import "fmt"

// Before the record case existed, the case kind had 12 values and selectors
// packed into 29 bits. The low 17 bits (action through errors) have the same
// layout in both versions.
//
//	old case bit:  0       1      2         3    4          5      6       7       8          9        10         11
//	               import  class  interface enum annotation method vardecl varinit expression varvalue assignment statement
//	new case bit:  0       1      2         3    4          6      7       8       9          10       11         12
//
// New bit 5 (record) is set whenever old bit 1 (class) is, so rules written
// for classes keep applying to records.
const (
	preRecordCaseSize = 12
	lowKindsBits      = 17
	// PreRecordAll is the packed form of All in the layout used before the
	// record case existed.
	PreRecordAll uint64 = 1<<(lowKindsBits+preRecordCaseSize) - 1
)

// FromPreRecordBits converts a selector packed in the layout used before the
// record case existed.
func FromPreRecordBits(p uint64) (Selector, error) {
	if p>>(lowKindsBits+preRecordCaseSize) != 0 {
		return Selector{}, fmt.Errorf("legacy selector bits %#x out of range", p)
	}
	low := p & (1<<lowKindsBits - 1)
	oldCase := p >> lowKindsBits
	// Bits below record stay, bits from method upwards move up by one.
	const keptMask = 1<<Record - 1
	newCase := oldCase&keptMask | (oldCase&^keptMask)<<1
	if oldCase&(1<<Class) != 0 {
		newCase |= 1 << Record
	}
	return Unpack(newCase<<lowKindsBits | low)
}

// Layout of packed selectors in an encoding.
type layout int

const (
	layoutCurrent layout = iota
	layoutPreRecord
)

func (l layout) unpack(p uint64) (Selector, error) {
	if l == layoutPreRecord {
		return FromPreRecordBits(p)
	}
	return Unpack(p)
}

// Every mode has a "name" field bound to All, so its packed selector reveals
// the layout of the encoding. When that is inconclusive, fallback decides.
func detectLayout(fields map[string][]rawSetting, fallback layout) layout {
	for _, rs := range fields["name"] {
		switch rs.bits {
		case PreRecordAll:
			return layoutPreRecord
		case All.Pack():
			return layoutCurrent
		}
	}
	return fallback
}
