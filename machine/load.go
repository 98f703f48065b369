package machine

import (
	"strings"

	"github.com/ezrec/tersim/internal"
	"github.com/ezrec/tersim/tryte"
)

// Load writes tribble text into memory starting at base, and returns the
// number of trytes written. Whitespace is ignored and symbols are
// upper-cased. Nothing is written if the text is malformed.
func (m *Machine) Load(base tryte.Tryte, text string) (count int, err error) {
	text = strings.ToUpper(strings.Join(strings.Fields(text), ""))

	if len(text)%tryte.TRIBBLES != 0 {
		err = &ErrLoad{Offset: len(text), Err: ErrLoadLength}
		return
	}

	words := make([]tryte.Tryte, 0, len(text)/tryte.TRIBBLES)
	for n := 0; n < len(text); n += tryte.TRIBBLES {
		var word tryte.Tryte
		word, err = tryte.FromTribbles(text[n : n+tryte.TRIBBLES])
		if err != nil {
			err = &ErrLoad{Offset: n, Err: err}
			return
		}
		words = append(words, word)
	}

	for addr, word := range internal.IterSpan(base, words) {
		m.Write(addr, word)
	}

	count = len(words)
	return
}

// LoadAt is Load with the base address given as a tribble string.
func (m *Machine) LoadAt(base string, text string) (count int, err error) {
	addr, err := ParseAddress(base)
	if err != nil {
		return
	}

	return m.Load(addr, text)
}
