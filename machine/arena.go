package machine

import (
	"github.com/ezrec/tersim/tryte"
)

const (
	MEMORY_SIZE = tryte.RANGE // Trytes of addressable memory.
	MEMORY_BIAS = tryte.BIAS  // Address to slot offset; half the address range.
)

const (
	REG_PC   = tryte.Tryte(3)  // P: Program counter.
	REG_SP   = tryte.Tryte(6)  // S: Stack pointer.
	REG_ZERO = tryte.Tryte(13) // Z: Always reads as zero.
)

const (
	SYM_DISCARD  = '_' // Operand symbol for the zero register, or an inline immediate value.
	SYM_INDIRECT = 'M' // Operand symbol for an address fetched from the instruction stream.
)

const (
	REG_MIN = tryte.Tryte(-13) // First register address (A).
	REG_MAX = tryte.Tryte(13)  // Last register address (Z).
)

// Register returns the address of a register by its tribble symbol.
func Register(symbol byte) (addr tryte.Tryte, err error) {
	digit, err := tryte.Digit(symbol)
	if err != nil {
		return
	}

	addr = tryte.New(digit)
	return
}

// slot maps an address to its index in the backing array. Trytes made
// by conversion rather than New are wrapped first.
func slot(addr tryte.Tryte) int {
	return int(addr.Wrap()) + MEMORY_BIAS
}
