package machine

import (
	"fmt"

	"github.com/ezrec/tersim/tryte"
)

// Opcode is a decoded instruction operation.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode,OpClass,OperandMode -output=opcode_string.go
const (
	OP_PUSH     = Opcode(0)  // push
	OP_POP      = Opcode(1)  // pop
	OP_CALL     = Opcode(2)  // call
	OP_MOVE     = Opcode(3)  // move
	OP_ADD      = Opcode(4)  // add
	OP_SUB      = Opcode(5)  // sub
	OP_MUL      = Opcode(6)  // mul
	OP_DIV      = Opcode(7)  // div
	OP_AND      = Opcode(8)  // and
	OP_OR       = Opcode(9)  // or
	OP_LOGIC    = Opcode(10) // logic
	OP_READ     = Opcode(11) // read
	OP_WRITE    = Opcode(12) // write
	OP_SWAP     = Opcode(13) // swap
	OP_ZERO     = Opcode(14) // zero
	OP_JUMP     = Opcode(15) // jump
	OP_IFEQ     = Opcode(16) // ifeq
	OP_IFNE     = Opcode(17) // ifne
	OP_IFLT     = Opcode(18) // iflt
	OP_IFGE     = Opcode(19) // ifge
	OP_LOAD     = Opcode(20) // load
	OP_INC      = Opcode(21) // inc
	OP_HARDWARE = Opcode(22) // hw
)

// OpClass is an opcode family.
type OpClass int

const (
	CLASS_STACK   = OpClass(0) // stack
	CLASS_BINARY  = OpClass(1) // binary
	CLASS_JUMP    = OpClass(2) // jump
	CLASS_SKIP    = OpClass(3) // skip
	CLASS_SMALL   = OpClass(4) // small
	CLASS_SPECIAL = OpClass(5) // special
)

// OperandMode is the addressing mode selected by an operand symbol.
type OperandMode int

const (
	MODE_DIRECT   = OperandMode(0) // direct
	MODE_DISCARD  = OperandMode(1) // discard
	MODE_INDIRECT = OperandMode(2) // indirect
)

type opInfo struct {
	symbol byte
	class  OpClass
}

// opTable is indexed by Opcode.
var opTable = [...]opInfo{
	OP_PUSH:     {'U', CLASS_STACK},
	OP_POP:      {'O', CLASS_STACK},
	OP_CALL:     {'C', CLASS_STACK},
	OP_MOVE:     {'M', CLASS_BINARY},
	OP_ADD:      {'A', CLASS_BINARY},
	OP_SUB:      {'S', CLASS_BINARY},
	OP_MUL:      {'P', CLASS_BINARY},
	OP_DIV:      {'Q', CLASS_BINARY},
	OP_AND:      {'B', CLASS_BINARY},
	OP_OR:       {'Y', CLASS_BINARY},
	OP_LOGIC:    {'T', CLASS_BINARY},
	OP_READ:     {'R', CLASS_BINARY},
	OP_WRITE:    {'W', CLASS_BINARY},
	OP_SWAP:     {'X', CLASS_BINARY},
	OP_ZERO:     {'Z', CLASS_BINARY},
	OP_JUMP:     {'J', CLASS_JUMP},
	OP_IFEQ:     {'E', CLASS_SKIP},
	OP_IFNE:     {'N', CLASS_SKIP},
	OP_IFLT:     {'L', CLASS_SKIP},
	OP_IFGE:     {'G', CLASS_SKIP},
	OP_LOAD:     {'V', CLASS_SMALL},
	OP_INC:      {'I', CLASS_SMALL},
	OP_HARDWARE: {'H', CLASS_SPECIAL},
}

// opcodeMap maps opcode symbols to opcodes.
var opcodeMap = func() map[byte]Opcode {
	ops := make(map[byte]Opcode, len(opTable))
	for op, info := range opTable {
		ops[info.symbol] = Opcode(op)
	}
	return ops
}()

// Opcodes returns all opcodes, in order.
func Opcodes() (ops []Opcode) {
	for op := range opTable {
		ops = append(ops, Opcode(op))
	}
	return
}

// LookupOpcode returns the opcode for a symbol.
func LookupOpcode(symbol byte) (op Opcode, ok bool) {
	op, ok = opcodeMap[symbol]
	return
}

// Symbol returns the opcode's tribble symbol.
func (op Opcode) Symbol() byte {
	return opTable[op].symbol
}

// Class returns the opcode's family.
func (op Opcode) Class() OpClass {
	return opTable[op].class
}

// Holds is true if the comparison named by a skip opcode holds for a and b.
// The instruction following a skip opcode is executed only if it holds.
func (op Opcode) Holds(a, b tryte.Tryte) bool {
	switch op {
	case OP_IFEQ:
		return a == b
	case OP_IFNE:
		return a != b
	case OP_IFLT:
		return a < b
	case OP_IFGE:
		return a >= b
	}
	return true
}

// Operand is a decoded operand symbol.
type Operand struct {
	Mode   OperandMode
	Symbol byte
}

// DecodeOperand resolves the addressing mode of an operand symbol.
func DecodeOperand(symbol byte) (operand Operand) {
	operand.Symbol = symbol
	switch symbol {
	case SYM_DISCARD:
		operand.Mode = MODE_DISCARD
	case SYM_INDIRECT:
		operand.Mode = MODE_INDIRECT
	default:
		operand.Mode = MODE_DIRECT
	}
	return
}

// Digit returns the signed digit value of the operand symbol.
func (operand Operand) Digit() int {
	digit, _ := tryte.Digit(operand.Symbol)
	return digit
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Word   tryte.Tryte
	Opcode Opcode
	High   Operand
	Low    Operand
}

// Decode splits an instruction word into its opcode and operands.
func Decode(word tryte.Tryte) (ins Instruction, err error) {
	tribbles := word.Tribbles()

	op, ok := LookupOpcode(tribbles[0])
	if !ok {
		err = ErrOpcode{Symbol: tribbles[0], Word: word}
		return
	}

	ins = Instruction{
		Word:   word,
		Opcode: op,
		High:   DecodeOperand(tribbles[1]),
		Low:    DecodeOperand(tribbles[2]),
	}

	return
}

// String returns the instruction as its mnemonic and operand symbols.
func (ins Instruction) String() string {
	return fmt.Sprintf("%v.%c.%c", ins.Opcode.String(), ins.High.Symbol, ins.Low.Symbol)
}

// LogicTable expands a table tryte into a symmetric truth table, taking the
// six most-significant trits as the diagonal and upper triangle.
func LogicTable(word tryte.Tryte) tryte.TruthTable {
	raw := word.RawTrits()
	return tryte.SymmetricTable([6]uint8(raw[:6]))
}
