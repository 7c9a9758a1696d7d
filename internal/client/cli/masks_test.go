package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCPF(t *testing.T) {
	assert.Equal(t, "390.533.447-05", FormatCPF("39053344705"))
	assert.Equal(t, "390.533.447-05", FormatCPF("390.533.447-05"))
	assert.Equal(t, "123", FormatCPF("123"))
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(11) 91234-5678", FormatPhone("11912345678"))
	assert.Equal(t, "(11) 91234-5678", FormatPhone("+55 11 91234-5678"))
	assert.Equal(t, "(11) 91234-5678", FormatPhone("(11) 91234-5678"))
	assert.Equal(t, "999", FormatPhone("999"))
}

func TestFormatCEP(t *testing.T) {
	assert.Equal(t, "01310-100", FormatCEP("01310100"))
	assert.Equal(t, "01310-100", FormatCEP("01310-100"))
	assert.Equal(t, "42", FormatCEP("42"))
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{125_000, "R$ 1.250,00"},
		{123_456_789, "R$ 1.234.567,89"},
		{-4_250, "-R$ 42,50"},
		{5, "R$ 0,05"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBRL(tt.cents))
	}
}
