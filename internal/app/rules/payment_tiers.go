package rules

// PaymentTier maps an employee-count band to a fixed certification fee.
type PaymentTier struct {
	MaxEmployees int   // inclusive upper bound of the band
	AmountCents  int64 // fee in USD cents
}

// paymentTiers is ordered by band. Companies above the top band have no
// self-serve fee and must request a quote.
var paymentTiers = []PaymentTier{
	{MaxEmployees: 10, AmountCents: 25_000},
	{MaxEmployees: 50, AmountCents: 50_000},
	{MaxEmployees: 250, AmountCents: 100_000},
	{MaxEmployees: 1000, AmountCents: 250_000},
	{MaxEmployees: 5000, AmountCents: 500_000},
}

// FeeForEmployeeCount returns the certification fee for the given company
// size. ok is false above the top band: payment is request-for-quote only.
func FeeForEmployeeCount(employees int) (amountCents int64, ok bool) {
	for _, tier := range paymentTiers {
		if employees <= tier.MaxEmployees {
			return tier.AmountCents, true
		}
	}
	return 0, false
}

// PaymentTiers returns a copy of the tier table for display.
func PaymentTiers() []PaymentTier {
	out := make([]PaymentTier, len(paymentTiers))
	copy(out, paymentTiers)
	return out
}
