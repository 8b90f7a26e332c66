package catalog

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAddress(t *testing.T) {
	assert.Equal(t, "1-5", EncodeAddress(1, 5))
	assert.Equal(t, "0-0", EncodeAddress(0, 0))
	assert.Equal(t, "12-104", Address{Season: 12, Episode: 104}.String())
}

func TestParseAddress_RoundTrip(t *testing.T) {
	pairs := [][2]int{
		{0, 0}, {0, 1}, {1, 0}, {1, 5}, {2, 13}, {10, 100},
		{999, 12345}, {math.MaxInt32, math.MaxInt32}, {math.MaxInt, 1},
	}

	for _, p := range pairs {
		encoded := EncodeAddress(p[0], p[1])
		addr, err := ParseAddress(encoded)
		require.NoError(t, err, encoded)
		assert.Equal(t, Address{Season: p[0], Episode: p[1]}, addr, encoded)
	}
}

func TestParseAddress_Invalid(t *testing.T) {
	overflow := strconv.FormatUint(math.MaxUint64, 10)

	inputs := []string{
		"",
		"abc",
		"1",
		"1-",
		"-5",
		"1--5",
		"-1-5",
		"1-5-2",
		"01-5",
		"1-05",
		"+1-5",
		"1 -5",
		" 1-5",
		"1-5 ",
		"1_5",
		"1.0-5",
		"a1-5",
		"1-5a",
		"١-٥",
		overflow + "-1",
		"1-" + overflow,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAddress(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFormat)

			var addrErr *AddressError
			require.True(t, errors.As(err, &addrErr))
			assert.Equal(t, in, addrErr.Input)
		})
	}
}
