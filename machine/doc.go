// Package machine implements the fetch/decode/execute engine of the tersim
// balanced-ternary processor.
//
// Memory is a single flat arena of 3^9 trytes addressed by centered values in
// [-9841, 9841]. The registers are the 27 addresses -13..13, named by the
// tribble symbol of their address; three of them are control registers:
// the program counter (P), the stack pointer (S), and the zero register (Z),
// which always reads as zero.
//
// An instruction is a single tryte whose tribbles are the opcode symbol and
// two operand symbols. Operands may request extension trytes from the
// instruction stream: '_' as a value is an inline immediate, 'M' is an
// indirect address in either role.
package machine
