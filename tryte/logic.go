package tryte

// TruthTable maps a pair of unsigned trit digits to a result digit.
// Row is the digit of the receiver, column the digit of the other operand.
type TruthTable [3][3]uint8

var (
	AND_TABLE = TruthTable{{0, 0, 0}, {0, 1, 1}, {0, 1, 2}} // Tritwise minimum.
	OR_TABLE  = TruthTable{{0, 1, 2}, {1, 1, 2}, {2, 2, 2}} // Tritwise maximum.
)

// symmetricOrder is the order of the independent entries of a symmetric table.
var symmetricOrder = [6][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}}

// SymmetricTable builds a table that is unchanged under operand swap from
// its diagonal and upper triangle, in the order
// (0,0), (0,1), (0,2), (1,1), (1,2), (2,2).
func SymmetricTable(entries [6]uint8) (table TruthTable) {
	for n, pair := range symmetricOrder {
		a, b := pair[0], pair[1]
		table[a][b] = entries[n] % 3
		table[b][a] = entries[n] % 3
	}
	return
}

// Logic combines t and other trit by trit through table.
func (t Tryte) Logic(other Tryte, table TruthTable) Tryte {
	a := t.RawTrits()
	b := other.RawTrits()

	var out [TRITS]uint8
	for n := range TRITS {
		out[n] = table[a[n]][b[n]] % 3
	}

	return fromRaw(out)
}

// And returns the tritwise minimum.
func (t Tryte) And(other Tryte) Tryte {
	return t.Logic(other, AND_TABLE)
}

// Or returns the tritwise maximum.
func (t Tryte) Or(other Tryte) Tryte {
	return t.Logic(other, OR_TABLE)
}
