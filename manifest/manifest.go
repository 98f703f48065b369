// Package manifest handles TOML machine image descriptions.
//
// A manifest looks like:
//
//	[machine]
//	entry = "_AA"
//	stack = 364
//	steps = 1000
//
//	[registers]
//	A = 14
//
//	[[segment]]
//	base = 14
//	text = "TEST_STRING_"
//
//	[[segment]]
//	base = "_AA"
//	source = "strlen.asm"
//
// Addresses and values are integers or three-symbol tribble strings.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/tersim/asm"
	"github.com/ezrec/tersim/emulator"
	"github.com/ezrec/tersim/machine"
	"github.com/ezrec/tersim/tryte"
)

// Value is a tryte given as an integer or a tribble string.
type Value tryte.Tryte

// UnmarshalTOML implements toml.Unmarshaler.
func (v *Value) UnmarshalTOML(data any) (err error) {
	switch value := data.(type) {
	case int64:
		if value < tryte.MIN || value > tryte.MAX {
			return fmt.Errorf("%d: %w", value, ErrValueRange)
		}
		*v = Value(tryte.New(int(value)))
	case string:
		var word tryte.Tryte
		word, err = tryte.FromTribbles(strings.ToUpper(value))
		if err != nil {
			return
		}
		*v = Value(word)
	default:
		err = fmt.Errorf("%v: %w", data, ErrValueType)
	}
	return
}

// Tryte returns the value as a tryte.
func (v Value) Tryte() tryte.Tryte {
	return tryte.Tryte(v)
}

// Manifest represents a machine image.
type Manifest struct {
	Machine   Machine          `toml:"machine"`
	Registers map[string]Value `toml:"registers"`
	Segments  []Segment        `toml:"segment"`

	// Dir is the directory containing the manifest (set at load time).
	Dir string `toml:"-"`
}

// Machine configures the reset state and step limit.
type Machine struct {
	Entry *Value `toml:"entry"`
	Stack *Value `toml:"stack"`
	Halt  *Value `toml:"halt"`
	Steps int    `toml:"steps"`
}

// Segment is memory content at a base address, either raw tribble text or
// an assembly source file.
type Segment struct {
	Base   Value  `toml:"base"`
	Text   string `toml:"text"`
	Source string `toml:"source"`
}

// Decode parses manifest text. Source paths are relative to dir.
func Decode(text string, dir string) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(text, &m)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKey, undecoded)
	}

	for n, seg := range m.Segments {
		if (len(seg.Text) == 0) == (len(seg.Source) == 0) {
			return nil, fmt.Errorf("segment %d: %w", n, ErrSegment)
		}
	}

	m.Dir = dir

	return &m, nil
}

// Load parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m, err := Decode(string(data), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// SourcePath returns the path of a segment's source file.
func (m *Manifest) SourcePath(seg Segment) string {
	if filepath.IsAbs(seg.Source) {
		return seg.Source
	}
	return filepath.Join(m.Dir, seg.Source)
}

// Apply configures the emulator from the manifest. Source segments are
// assembled at their base; the emulator must still be Reset to take effect.
func (m *Manifest) Apply(emu *emulator.Emulator) (err error) {
	sourced := false
	for n, seg := range m.Segments {
		if len(seg.Text) != 0 {
			emu.Segments = append(emu.Segments, emulator.Segment{Base: seg.Base.Tryte(), Text: seg.Text})
			continue
		}

		if sourced {
			return fmt.Errorf("segment %d: %w", n, ErrSourceDuplicate)
		}
		sourced = true

		var prog *asm.Program
		prog, err = m.assemble(emu, seg)
		if err != nil {
			return fmt.Errorf("segment %d: %w", n, err)
		}
		emu.SetProgram(prog)
	}

	if m.Machine.Entry != nil {
		emu.Entry = m.Machine.Entry.Tryte()
	}
	if m.Machine.Stack != nil {
		emu.Stack = m.Machine.Stack.Tryte()
	}
	if m.Machine.Halt != nil {
		emu.Halt = m.Machine.Halt.Tryte()
	}
	if m.Machine.Steps != 0 {
		emu.Limit = m.Machine.Steps
	}

	for name, value := range m.Registers {
		if len(name) != 1 {
			return fmt.Errorf("%v: %w", name, ErrRegister)
		}
		symbol := strings.ToUpper(name)[0]
		_, err = machine.Register(symbol)
		if err != nil {
			return fmt.Errorf("%v: %w", name, err)
		}
		if emu.Registers == nil {
			emu.Registers = map[byte]tryte.Tryte{}
		}
		emu.Registers[symbol] = value.Tryte()
	}

	return
}

// assemble assembles a source segment at its base address.
func (m *Manifest) assemble(emu *emulator.Emulator, seg Segment) (prog *asm.Program, err error) {
	path := m.SourcePath(seg)
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	assembler := &asm.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		assembler.Predefine(key, value)
	}
	assembler.Predefine("ORIGIN", fmt.Sprintf("%d", seg.Base.Tryte().Int()))

	prog, err = assembler.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}

	return
}
