package shape

import "strings"

// Variant tags a shape with its tetromino type. The zero value is Empty,
// which is what board queries return for unoccupied cells.
type Variant int

const (
	Empty Variant = iota
	I
	O
	T
	J
	L
	S
	Z
)

// Variants lists the seven spawnable variants in spawn-index order.
var Variants = []Variant{I, O, T, J, L, S, Z}

var names = map[Variant]string{
	Empty: "empty",
	I:     "I",
	O:     "O",
	T:     "T",
	J:     "J",
	L:     "L",
	S:     "S",
	Z:     "Z",
}

var markers = map[Variant]string{
	I: "🟦",
	O: "🟨",
	T: "🟫",
	J: "🟪",
	L: "🟧",
	S: "🟩",
	Z: "🟥",
}

func (v Variant) String() string {
	if n, ok := names[v]; ok {
		return n
	}
	return "unknown"
}

// Marker is the display glyph of v, or "" for Empty.
func (v Variant) Marker() string {
	return markers[v]
}

// ParseVariant maps a single letter (any case) to its variant.
func ParseVariant(s string) (Variant, bool) {
	for _, v := range Variants {
		if strings.EqualFold(names[v], s) {
			return v, true
		}
	}
	return Empty, false
}
