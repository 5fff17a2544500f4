package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{name: "thousand dot", input: "9.340", want: 9340, ok: true},
		{name: "thousand comma", input: "9,340", want: 9340, ok: true},
		{name: "millions", input: "1.250.000", want: 1250000, ok: true},
		{name: "plain", input: "854", want: 854, ok: true},
		{name: "currency sign", input: "$ 27.200", want: 27200, ok: true},
		{name: "two digit group", input: "12.50", want: 1250, ok: true},
		{name: "apostrophe", input: "1'250.000", want: 1250000, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "letters", input: "12O", ok: false},
		{name: "too long", input: "1234567890123", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseAmount(tc.input)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "decimal dot", input: "0.305", want: 0.305},
		{name: "decimal comma", input: "1,250", want: 1.25},
		{name: "colon for dot", input: "0:850", want: 0.85},
		{name: "integer", input: "6", want: 6},
		{name: "comma trailing zeros", input: "2,000", want: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseQuantity(tc.input)
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}

	_, ok := ParseQuantity("kg")
	assert.False(t, ok)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "6.540", FormatMoney(6540))
	assert.Equal(t, "854", FormatMoney(854))
	assert.Equal(t, "1.250.000", FormatMoney(1250000))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "0,305", FormatQuantity(0.305))
	assert.Equal(t, "12,5", FormatQuantity(12.5))
	assert.Equal(t, "2", FormatQuantity(2))
}
