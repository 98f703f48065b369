package asm

import (
	"errors"

	"github.com/ezrec/tersim/translate"
)

var f = translate.From

var (
	// Directive errors
	ErrEquateSyntax    = errors.New(f(".equ needs a name and a value"))
	ErrEquateDuplicate = errors.New(f(".equ name already defined"))
	ErrEquateLoop      = errors.New(f(".equ refers back to itself"))
	ErrLabelDuplicate  = errors.New(f("label already defined"))
	ErrOrgSyntax       = errors.New(f(".org needs a known address"))
	ErrDataSyntax      = errors.New(f(".data needs whole tribble words"))

	// Macro errors
	ErrMacroSyntax     = errors.New(f(".macro argument count mismatch"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro already defined"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))

	// Instruction errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("too many operands"))
	ErrOpcodeMissing      = errors.New(f("operand missing"))
	ErrOperandInvalid     = errors.New(f("operand invalid as a source"))
	ErrTargetInvalid      = errors.New(f("operand invalid as a destination"))
	ErrJumpRange          = errors.New(f("jump offset beyond 364 trytes"))
	ErrSmallRange         = errors.New(f("small constant outside -13..13"))
)

// ErrLabelMissing is a label referenced but never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrSyntax locates an error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v': %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a tryte value", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) does not evaluate to an integer", string(err))
}

// ErrMacro locates an error within a macro expansion.
type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("in macro %v line %v: %v", err.Macro, err.Line, err.Err)
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
