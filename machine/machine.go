package machine

import (
	"errors"
	"fmt"

	"github.com/ezrec/tersim/tryte"
)

// Hardware is the hook invoked by the hw opcode.
type Hardware interface {
	// Interact is called with the raw operand symbols of the instruction.
	Interact(m *Machine, high, low byte) error
}

// Machine is the simulation context of a single ternary processor.
// A Machine is not safe for concurrent use.
type Machine struct {
	Hardware Hardware // Optional hw opcode hook; nil is a no-op.
	Ticks    int      // Instructions executed since reset.

	memory [MEMORY_SIZE]tryte.Tryte
}

// NewMachine creates a machine with all memory zeroed.
func NewMachine() (m *Machine) {
	m = &Machine{}

	return
}

// Reset zeroes memory and the tick counter.
func (m *Machine) Reset() {
	clear(m.memory[:])
	m.Ticks = 0
}

// ParseAddress decodes a tribble string address.
func ParseAddress(tribbles string) (addr tryte.Tryte, err error) {
	addr, err = tryte.FromTribbles(tribbles)
	if err != nil {
		err = errors.Join(ErrAddress, err)
	}
	return
}

// Read returns the tryte at addr. The zero register always reads as zero.
func (m *Machine) Read(addr tryte.Tryte) tryte.Tryte {
	if addr.Wrap() == REG_ZERO {
		return 0
	}
	return m.memory[slot(addr)]
}

// Write stores value at addr. Writes to the zero register are discarded.
func (m *Machine) Write(addr tryte.Tryte, value tryte.Tryte) {
	if addr.Wrap() == REG_ZERO {
		return
	}
	m.memory[slot(addr)] = value
}

// ReadAt is Read with the address given as a tribble string.
func (m *Machine) ReadAt(tribbles string) (value tryte.Tryte, err error) {
	addr, err := ParseAddress(tribbles)
	if err != nil {
		return
	}

	value = m.Read(addr)
	return
}

// WriteAt is Write with the address given as a tribble string.
func (m *Machine) WriteAt(tribbles string, value tryte.Tryte) (err error) {
	addr, err := ParseAddress(tribbles)
	if err != nil {
		return
	}

	m.Write(addr, value)
	return
}

// PC returns the program counter.
func (m *Machine) PC() tryte.Tryte {
	return m.Read(REG_PC)
}

// SetPC sets the program counter.
func (m *Machine) SetPC(addr tryte.Tryte) {
	m.Write(REG_PC, addr)
}

// SP returns the stack pointer.
func (m *Machine) SP() tryte.Tryte {
	return m.Read(REG_SP)
}

// SetSP sets the stack pointer.
func (m *Machine) SetSP(addr tryte.Tryte) {
	m.Write(REG_SP, addr)
}

// Fetch reads the tryte at the program counter, then advances the counter.
func (m *Machine) Fetch() (value tryte.Tryte) {
	pc := m.PC()
	value = m.Read(pc)
	m.SetPC(pc.Add(1))
	return
}

// ref resolves an operand as a destination address.
func (m *Machine) ref(operand Operand) tryte.Tryte {
	switch operand.Mode {
	case MODE_DISCARD:
		return REG_ZERO
	case MODE_INDIRECT:
		return m.Fetch()
	}
	return tryte.New(operand.Digit())
}

// value resolves an operand as a source value.
func (m *Machine) value(operand Operand) tryte.Tryte {
	switch operand.Mode {
	case MODE_DISCARD:
		return m.Fetch()
	case MODE_INDIRECT:
		return m.Read(m.Fetch())
	}
	return m.Read(tryte.New(operand.Digit()))
}

// Step fetches, decodes and executes a single instruction.
func (m *Machine) Step() (err error) {
	word := m.Fetch()

	ins, err := Decode(word)
	if err != nil {
		return
	}

	err = m.Execute(ins)
	return
}

// Execute executes a decoded instruction whose word has already been fetched.
func (m *Machine) Execute(ins Instruction) (err error) {
	m.Ticks++

	switch ins.Opcode.Class() {
	case CLASS_STACK:
		stack := m.Stack(m.ref(ins.High))
		switch ins.Opcode {
		case OP_PUSH:
			stack.Push(m.value(ins.Low))
		case OP_POP:
			dst := m.ref(ins.Low)
			m.Write(dst, stack.Pop())
		case OP_CALL:
			target := m.value(ins.Low)
			stack.Push(m.PC())
			m.SetPC(target)
		}
	case CLASS_BINARY:
		if ins.Opcode == OP_WRITE {
			addr := m.value(ins.High)
			m.Write(addr, m.value(ins.Low))
			break
		}
		// The high operand is a destination: its input is read back from
		// the resolved address, so '_' and 'M' fetch at most one
		// extension word between them.
		dst := m.ref(ins.High)
		var val tryte.Tryte
		if ins.Opcode != OP_ZERO {
			val = m.value(ins.Low)
		}
		var table tryte.TruthTable
		if ins.Opcode == OP_LOGIC {
			table = LogicTable(m.Fetch())
		}
		// Read after all extension fetches, so a PC destination sees the next instruction.
		input := m.Read(dst)
		var output tryte.Tryte
		switch ins.Opcode {
		case OP_MOVE:
			output = val
		case OP_ADD:
			output = input.Add(val)
		case OP_SUB:
			output = input.Sub(val)
		case OP_MUL:
			output = input.Mul(val)
		case OP_DIV:
			output = input.Div(val)
		case OP_AND:
			output = input.And(val)
		case OP_OR:
			output = input.Or(val)
		case OP_LOGIC:
			output = input.Logic(val, table)
		case OP_READ:
			output = m.Read(val)
		case OP_SWAP:
			output = val.Reverse()
		case OP_ZERO:
			output = 0
		}
		m.Write(dst, output)
	case CLASS_JUMP:
		offset := ins.High.Digit()*len(tryte.DIGITS) + ins.Low.Digit()
		m.SetPC(m.PC().Add(tryte.New(offset)))
	case CLASS_SKIP:
		a := m.value(ins.High)
		b := m.value(ins.Low)
		if !ins.Opcode.Holds(a, b) {
			m.SetPC(m.PC().Add(1))
		}
	case CLASS_SMALL:
		dst := m.ref(ins.High)
		literal := tryte.New(ins.Low.Digit())
		switch ins.Opcode {
		case OP_LOAD:
			m.Write(dst, literal)
		case OP_INC:
			m.Write(dst, m.Read(dst).Add(literal))
		}
	case CLASS_SPECIAL:
		// hw: reserved for hardware interaction.
		if m.Hardware != nil {
			err = m.Hardware.Interact(m, ins.High.Symbol, ins.Low.Symbol)
			if err != nil {
				err = errors.Join(ErrHardware, err)
			}
		}
	}

	return
}

// String returns the register file as text.
func (m *Machine) String() (text string) {
	text += fmt.Sprintf("% 5s: %v %6d\n", "pc", m.PC(), m.PC().Int())
	text += fmt.Sprintf("% 5s: %v %6d\n", "sp", m.SP(), m.SP().Int())
	for addr := REG_MIN; addr <= REG_MAX; addr++ {
		symbol := tryte.Symbol(addr.Int())
		if symbol == SYM_DISCARD || symbol == SYM_INDIRECT {
			continue
		}
		val := m.Read(addr)
		text += fmt.Sprintf("% 5s: %v %6d\n", string(symbol), val, val.Int())
	}
	return
}
