package manifest

import (
	"errors"

	"github.com/ezrec/tersim/translate"
)

var f = translate.From

var (
	ErrValueType       = errors.New(f("value must be an integer or tribble string"))
	ErrValueRange      = errors.New(f("value out of range"))
	ErrUnknownKey      = errors.New(f("unknown key"))
	ErrSegment         = errors.New(f("segment needs exactly one of text or source"))
	ErrSourceDuplicate = errors.New(f("only one source segment allowed"))
	ErrRegister        = errors.New(f("register name must be a single symbol"))
)
