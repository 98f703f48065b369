package tryte

import (
	"errors"

	"github.com/ezrec/tersim/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrDecodeLength = errors.New(f("wrong length"))
	ErrDecodeSymbol = errors.New(f("unknown symbol"))
	ErrDecodeDigit  = errors.New(f("trit digit out of range"))
)

// ErrDecode reports malformed tribble or trit input.
type ErrDecode struct {
	Input string
	Err   error
}

func (err *ErrDecode) Error() string {
	return f("decode '%v' %v", err.Input, err.Err)
}

func (err *ErrDecode) Unwrap() error {
	return err.Err
}
