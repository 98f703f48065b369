package emulator

import (
	"errors"

	"github.com/ezrec/tersim/translate"
	"github.com/ezrec/tersim/tryte"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit exceeded"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo  int
	Address tryte.Tryte
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("line %d address %v %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
