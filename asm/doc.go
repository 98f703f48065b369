// Package asm implements a line-oriented macro assembler for the tersim
// instruction set.
//
// Each line is an optional list of labels, then either a mnemonic with its
// operands, a directive, or raw three-symbol tribble words:
//
//	loop:   read c a        ; c = mem[a]
//	        ifeq c zr
//	        jump done
//	        inc a 1
//	        jump loop
//	done:   sub a b
//
// Operands are a register letter (not 'm'), one of the aliases pc, sp and zr,
// '_' for the zero register as a destination, #VALUE for an inline
// immediate, or [VALUE] for an indirect address. A bare VALUE in a source
// position is an inline immediate. VALUE is a number, a tribble word, an
// equate, a label, or a $(...) Starlark expression. Three-symbol uppercase
// words such as _BA are always tribble values, so labels are best lowercase.
// A jump takes a label, or a numeric offset from the following word.
//
// Directives are .org, .equ, .word, .data, .macro and .endm.
package asm
