package machine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/tersim/tryte"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()

	count, err := m.Load(tryte.New(-364), " aab AaC\n\taad ")
	assert.NoError(err)
	assert.Equal(3, count)
	assert.Equal(mustWord(t, "AAB"), m.Read(tryte.New(-364)))
	assert.Equal(mustWord(t, "AAC"), m.Read(tryte.New(-363)))
	assert.Equal(mustWord(t, "AAD"), m.Read(tryte.New(-362)))

	count, err = m.LoadAt("_NA", "TEST_STRING_")
	assert.NoError(err)
	assert.Equal(4, count)
	assert.Equal(mustWord(t, "TES"), m.Read(tryte.New(14)))
	assert.Equal(mustWord(t, "NG_"), m.Read(tryte.New(17)))

	count, err = m.Load(tryte.New(0), "")
	assert.NoError(err)
	assert.Equal(0, count)
}

func TestLoad_Wrap(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	count, err := m.Load(tryte.New(tryte.MAX), "AAAZZZ")
	assert.NoError(err)
	assert.Equal(2, count)
	assert.Equal(tryte.New(tryte.MIN), m.Read(tryte.New(tryte.MAX)))
	assert.Equal(tryte.New(tryte.MAX), m.Read(tryte.New(tryte.MIN)))
}

func TestLoad_Errors(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()

	table := [](struct {
		name   string
		text   string
		offset int
		err    error
	}){
		{"length", "AABA", 4, ErrLoadLength},
		{"symbol", "AAB A$C", 3, tryte.ErrDecodeSymbol},
	}

	for _, entry := range table {
		count, err := m.Load(tryte.New(0), entry.text)
		assert.Equal(0, count, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
		var el *ErrLoad
		if assert.True(errors.As(err, &el), entry.name) {
			assert.Equal(entry.offset, el.Offset, entry.name)
		}
		// Nothing is written on failure.
		assert.Equal(tryte.Tryte(0), m.Read(tryte.New(0)), entry.name)
	}

	_, err := m.LoadAt("_A", "AAB")
	assert.ErrorIs(err, ErrAddress)
}
