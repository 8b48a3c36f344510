package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "R$ 0,00"},
		{9.9, "R$ 9,90"},
		{1234.56, "R$ 1.234,56"},
		{7899, "R$ 7.899,00"},
		{1000000.5, "R$ 1.000.000,50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.amount))
	}
}

func TestInstallment(t *testing.T) {
	assert.InDelta(t, 100.0, Installment(1200), 0.001)
}

func TestPixPrice(t *testing.T) {
	assert.InDelta(t, 900.0, PixPrice(1000), 0.001)
}
