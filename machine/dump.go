package machine

import (
	"io"
	"strings"

	"github.com/ezrec/tersim/tryte"
)

const (
	DUMP_COLUMNS = len(tryte.DIGITS)                  // Trytes per dump row.
	DUMP_ROW_MAX = (MEMORY_SIZE/DUMP_COLUMNS - 1) / 2 // Last dump row.
	DUMP_ROW_MIN = -DUMP_ROW_MAX                      // First dump row.
)

// Dump writes memory rows rowMin through rowMax as a grid of tribble
// strings. Row n holds the addresses n*27-13 through n*27+13; rows are
// labelled by the two leading tribbles of their addresses, and columns by
// the trailing tribble.
func (m *Machine) Dump(w io.Writer, rowMin, rowMax int) (err error) {
	if rowMin > rowMax || rowMin < DUMP_ROW_MIN || rowMax > DUMP_ROW_MAX {
		err = ErrDumpRow
		return
	}

	var sb strings.Builder

	sb.WriteString("  ")
	for n := range DUMP_COLUMNS {
		sb.WriteString("  ")
		sb.WriteByte(tryte.DIGITS[n])
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	_, err = io.WriteString(w, sb.String())
	if err != nil {
		return
	}

	for row := rowMin; row <= rowMax; row++ {
		sb.Reset()
		base := tryte.New(row * DUMP_COLUMNS)
		sb.WriteString(base.Tribbles()[:2])
		for col := -13; col <= 13; col++ {
			sb.WriteByte(' ')
			sb.WriteString(m.Read(base.Add(tryte.New(col))).Tribbles())
		}
		sb.WriteByte('\n')

		_, err = io.WriteString(w, sb.String())
		if err != nil {
			return
		}
	}

	return
}

// DumpAll writes every row of memory.
func (m *Machine) DumpAll(w io.Writer) error {
	return m.Dump(w, DUMP_ROW_MIN, DUMP_ROW_MAX)
}
