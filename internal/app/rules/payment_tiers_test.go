package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeeForEmployeeCount(t *testing.T) {
	tests := []struct {
		employees int
		want      int64
		ok        bool
	}{
		{1, 25_000, true},
		{10, 25_000, true},
		{11, 50_000, true},
		{50, 50_000, true},
		{51, 100_000, true},
		{250, 100_000, true},
		{251, 250_000, true},
		{1000, 250_000, true},
		{1001, 500_000, true},
		{5000, 500_000, true},
		{5001, 0, false},
		{100_000, 0, false},
	}

	for _, tt := range tests {
		amount, ok := FeeForEmployeeCount(tt.employees)
		assert.Equal(t, tt.ok, ok, "%d employees", tt.employees)
		assert.Equal(t, tt.want, amount, "%d employees", tt.employees)
	}
}

func TestPaymentTiers_ReturnsCopy(t *testing.T) {
	tiers := PaymentTiers()
	assert.Len(t, tiers, 5)

	tiers[0].AmountCents = 1
	fresh := PaymentTiers()
	assert.Equal(t, int64(25_000), fresh[0].AmountCents)
}
