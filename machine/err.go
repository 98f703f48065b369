package machine

import (
	"errors"

	"github.com/ezrec/tersim/translate"
	"github.com/ezrec/tersim/tryte"
)

var f = translate.From

var (
	// Machine errors
	ErrAddress  = errors.New(f("address invalid"))
	ErrHardware = errors.New(f("hardware"))
	ErrDumpRow  = errors.New(f("dump row out of range"))

	// Loader errors
	ErrLoadLength = errors.New(f("length is not a multiple of 3 symbols"))
)

// ErrOpcode is returned when an instruction's opcode symbol has no handler.
type ErrOpcode struct {
	Symbol byte
	Word   tryte.Tryte
}

func (eo ErrOpcode) Error() string {
	return f("unimplemented opcode '%c' in %v", eo.Symbol, eo.Word)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrLoad indicates the symbol offset of a loader failure.
type ErrLoad struct {
	Offset int
	Err    error
}

func (err *ErrLoad) Error() string {
	return f("load offset %d %v", err.Offset, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
