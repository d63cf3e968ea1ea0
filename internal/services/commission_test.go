package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickrent/internal/domain"
)

func TestComputeCharge(t *testing.T) {
	cases := []struct {
		name           string
		price          int64
		rate           float64
		wantCommission int64
		wantTotal      int64
	}{
		{"five percent", 50000, 5, 2500, 52500},
		{"zero rate", 50000, 0, 0, 50000},
		{"full rate", 50000, 100, 50000, 100000},
		{"rounds half up", 999, 5, 50, 1049},
		{"rounds down", 101, 2.4, 2, 103},
		{"one pesewa", 1, 5, 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeCharge(tc.price, tc.rate)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCommission, got.Commission)
			assert.Equal(t, tc.wantTotal, got.TotalAmount)
		})
	}
}

func TestComputeChargeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		price int64
		rate  float64
	}{
		{"zero price", 0, 5},
		{"negative price", -100, 5},
		{"negative rate", 50000, -1},
		{"rate above hundred", 50000, 100.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeCharge(tc.price, tc.rate)
			require.Error(t, err)
			assert.True(t, domain.IsInvalidInput(err))
		})
	}
}

func TestComputeChargeDeterministic(t *testing.T) {
	first, err := ComputeCharge(123457, 7.5)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := ComputeCharge(123457, 7.5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
