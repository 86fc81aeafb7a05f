package domain

// VATRate is the fixed Swedish catering VAT applied to every quote.
const VATRate = 0.12

// ComputeTotal derives a quote's total price from its pricing fields.
//
// The formula: guests × price-per-guest, plus staff costs, plus the sum of
// custom cost lines, minus the discount, plus 12% VAT on the discounted
// subtotal. A discount larger than the subtotal yields a negative total;
// nothing is clamped. Nil quotes price to zero.
//
// Pure and side-effect-free: callers rely on this being safe to invoke on
// partially populated drafts.
func ComputeTotal(q *Quote) float64 {
	if q == nil {
		return 0
	}

	base := float64(q.GuestCount) * q.PricePerGuest
	staff := q.ChefCost + q.ServingStaffCost

	var custom float64
	for _, line := range q.CustomCosts {
		custom += line.Amount
	}

	subtotal := base + staff + custom
	discounted := subtotal - q.DiscountAmount

	return discounted + discounted*VATRate
}
