package asm

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/ezrec/tersim/internal"
	"github.com/ezrec/tersim/machine"
	"github.com/ezrec/tersim/tryte"
)

// ORIGIN_DEFAULT is where assembly starts without an .org directive.
const ORIGIN_DEFAULT = tryte.Tryte(-364) // _AA

// Link is a reference to a label, resolved after the whole source is read.
type Link struct {
	Index    int    // Index into Codes of the word to patch.
	Label    string // Label to resolve.
	Relative bool   // If set, the word is a jump relative to the following word.
}

// Line is a line of source with the trytes it assembled to.
type Line struct {
	LineNo  int
	Address tryte.Tryte
	Words   []string
	Codes   []tryte.Tryte
	Links   []Link
}

// Trytes iterates over the line's address and code pairs.
func (line *Line) Trytes() iter.Seq2[tryte.Tryte, tryte.Tryte] {
	return internal.IterSpan(line.Address, line.Codes)
}

type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the line that assembled the word at addr.
func (prog *Program) Debug(addr tryte.Tryte) (dbg Debug) {
	for n, line := range prog.Lines {
		offset := addr.Sub(line.Address).Int()
		if offset >= 0 && offset < len(line.Codes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: offset,
			}
			break
		}
	}

	return
}

// Words iterates over every assembled address and word.
func (prog *Program) Words() iter.Seq2[tryte.Tryte, tryte.Tryte] {
	seqs := make([]iter.Seq2[tryte.Tryte, tryte.Tryte], 0, len(prog.Lines))
	for n := range prog.Lines {
		seqs = append(seqs, prog.Lines[n].Trytes())
	}
	return internal.IterSeq2Concat(seqs...)
}

// Len returns the number of assembled words.
func (prog *Program) Len() (count int) {
	for _, line := range prog.Lines {
		count += len(line.Codes)
	}
	return
}

// Origin returns the address of the first assembled word.
func (prog *Program) Origin() tryte.Tryte {
	if len(prog.Lines) == 0 {
		return ORIGIN_DEFAULT
	}
	return prog.Lines[0].Address
}

// End returns the address following the run of contiguous words that
// starts at the origin.
func (prog *Program) End() (end tryte.Tryte) {
	end = prog.Origin()
	for _, line := range prog.Lines {
		if line.Address != end {
			break
		}
		end = end.Add(tryte.New(len(line.Codes)))
	}
	return
}

// Text returns the loader text of the words from Origin up to End.
func (prog *Program) Text() string {
	var text strings.Builder
	addr := prog.Origin()
	for _, line := range prog.Lines {
		if line.Address != addr {
			break
		}
		for _, code := range line.Codes {
			text.WriteString(code.Tribbles())
		}
		addr = addr.Add(tryte.New(len(line.Codes)))
	}
	return text.String()
}

// Install writes the program into machine memory.
func (prog *Program) Install(m *machine.Machine) {
	for addr, code := range prog.Words() {
		m.Write(addr, code)
	}
}

// Listing writes each line's address, words and source.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, line := range prog.Lines {
		codes := make([]string, len(line.Codes))
		for n, code := range line.Codes {
			codes[n] = code.Tribbles()
		}
		_, err = fmt.Fprintf(w, "%v: %-15s ; %v\n", line.Address, strings.Join(codes, " "), strings.Join(line.Words, " "))
		if err != nil {
			return
		}
	}

	return
}
