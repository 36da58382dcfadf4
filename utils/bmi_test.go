package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(175, 90)
	require.NoError(t, err)
	assert.InDelta(t, 29.39, bmi, 0.01)
}

func TestCalculateBMIRejectsGarbage(t *testing.T) {
	cases := []struct{ h, w float64 }{
		{0, 70},
		{170, 0},
		{-170, 70},
		{30, 70},   // below plausible height
		{170, 500}, // above plausible weight
	}
	for _, tc := range cases {
		_, err := CalculateBMI(tc.h, tc.w)
		assert.Error(t, err, "height %.0f weight %.0f", tc.h, tc.w)
	}
}
