package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/tersim/asm"
	"github.com/ezrec/tersim/emulator"
	"github.com/ezrec/tersim/machine"
	"github.com/ezrec/tersim/tryte"
)

const strlenSource = `
; length of the string at a
        move b a
loop:   read c a
        ifeq c zr
        jump done
        inc a 1
        jump loop
done:   sub a b
`

func writeFile(t *testing.T, dir, name, text string) string {
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	m, err := Decode(`
[machine]
entry = "_AA"
stack = 364
halt = "_ac"
steps = 1000

[registers]
A = 14
B = "TES"

[[segment]]
base = 14
text = "TEST_STRING_"

[[segment]]
base = "_BA"
source = "prog.asm"
`, "/tmp/image")
	assert.NoError(err)
	if err != nil {
		return
	}

	if assert.NotNil(m.Machine.Entry) {
		assert.Equal(tryte.Tryte(-364), m.Machine.Entry.Tryte())
	}
	if assert.NotNil(m.Machine.Stack) {
		assert.Equal(tryte.Tryte(364), m.Machine.Stack.Tryte())
	}
	if assert.NotNil(m.Machine.Halt) {
		assert.Equal(tryte.Tryte(-362), m.Machine.Halt.Tryte())
	}
	assert.Equal(1000, m.Machine.Steps)

	assert.Equal(Value(14), m.Registers["A"])
	assert.Equal("TES", m.Registers["B"].Tryte().String())

	assert.Equal(2, len(m.Segments))
	assert.Equal(Value(14), m.Segments[0].Base)
	assert.Equal("TEST_STRING_", m.Segments[0].Text)
	assert.Equal("_BA", m.Segments[1].Base.Tryte().String())
	assert.Equal("/tmp/image/prog.asm", m.SourcePath(m.Segments[1]))
	assert.Equal("/abs.asm", m.SourcePath(Segment{Source: "/abs.asm"}))
	assert.Equal("/tmp/image", m.Dir)
}

func TestDecodeDefaults(t *testing.T) {
	assert := assert.New(t)

	m, err := Decode("", ".")
	assert.NoError(err)
	assert.Nil(m.Machine.Entry)
	assert.Nil(m.Machine.Stack)
	assert.Nil(m.Machine.Halt)
	assert.Equal(0, m.Machine.Steps)
	assert.Equal(0, len(m.Segments))

	emu := emulator.NewEmulator()
	assert.NoError(m.Apply(emu))
	assert.Equal(asm.ORIGIN_DEFAULT, emu.Entry)
	assert.Equal(emulator.STACK_DEFAULT, emu.Stack)
	assert.Equal(emulator.STEP_LIMIT_DEFAULT, emu.Limit)
}

func TestDecodeErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text string
		err  error
	}){
		{"[machine]\nentry = \"_AA\"\nspeed = 9\n", ErrUnknownKey},
		{"[[segment]]\nbase = 0\n", ErrSegment},
		{"[[segment]]\nbase = 0\ntext = \"AAA\"\nsource = \"x.asm\"\n", ErrSegment},
		{"[machine]\nentry = \"AB\"\n", nil},
		{"[machine]\nentry = 99999\n", nil},
		{"[machine]\nentry = 1.5\n", nil},
		{"[machine\n", nil},
	}

	for _, entry := range table {
		_, err := Decode(entry.text, ".")
		assert.Error(err, entry.text)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.text)
		}
	}
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeFile(t, dir, "strlen.asm", strlenSource)
	path := writeFile(t, dir, "image.toml", `
[machine]
stack = "_ZZ"
steps = 1000

[registers]
a = 14

[[segment]]
base = 14
text = "TEST_STRING_"

[[segment]]
base = "_BA"
source = "strlen.asm"
`)

	m, err := Load(path)
	assert.NoError(err)
	if err != nil {
		return
	}
	assert.Equal(dir, m.Dir)

	emu := emulator.NewEmulator()
	assert.NoError(m.Apply(emu))
	assert.Equal(tryte.Tryte(-337), emu.Entry)
	assert.Equal(tryte.Tryte(-330), emu.Halt)
	assert.Equal(1000, emu.Limit)
	assert.Equal(1, len(emu.Segments))

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal(tryte.Tryte(4), emu.Read(machine.REG_MIN))
	assert.Equal(3, emu.Program.Lines[0].LineNo)
}

func TestLoadErrors(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(err, os.ErrNotExist)

	path := writeFile(t, dir, "bad.toml", "[[segment]]\nbase = 0\n")
	_, err = Load(path)
	assert.ErrorIs(err, ErrSegment)
	assert.True(strings.HasPrefix(err.Error(), path))
}

func TestApplyErrors(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeFile(t, dir, "good.asm", "nop\n")
	writeFile(t, dir, "bad.asm", "nop\nbogus a b\n")

	table := [](struct {
		text string
		err  error
	}){
		{"[[segment]]\nsource = \"good.asm\"\n[[segment]]\nsource = \"good.asm\"\n", ErrSourceDuplicate},
		{"[[segment]]\nsource = \"bad.asm\"\n", asm.ErrInstructionInvalid},
		{"[[segment]]\nsource = \"none.asm\"\n", os.ErrNotExist},
		{"[registers]\nAB = 1\n", ErrRegister},
		{"[registers]\n\"?\" = 1\n", tryte.ErrDecodeSymbol},
	}

	for _, entry := range table {
		m, err := Decode(entry.text, dir)
		if !assert.NoError(err, entry.text) {
			continue
		}
		err = m.Apply(emulator.NewEmulator())
		assert.ErrorIs(err, entry.err, entry.text)
	}
}
