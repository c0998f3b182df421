// Package pricing computes shipping, tax and order totals. All amounts are
// int64 paise; callers must pass a non-negative subtotal (cart and checkout
// validation guarantee it).
package pricing

import "github.com/freshkart/storefront/internal/domain"

const (
	// FreeShippingThreshold is the subtotal at which standard delivery
	// becomes free and express drops to the reduced fee.
	FreeShippingThreshold int64 = 100_000 // ₹1000

	StandardFee       int64 = 20_000 // ₹200
	ExpressFee        int64 = 40_000 // ₹400
	ExpressReducedFee int64 = 20_000 // ₹200 above the threshold

	taxRatePercent int64 = 10
)

// ShippingCost returns the delivery fee for the subtotal. Unknown delivery
// methods are charged as standard.
func ShippingCost(subtotal int64, method domain.DeliveryMethod) int64 {
	if method == domain.DeliveryExpress {
		if subtotal >= FreeShippingThreshold {
			return ExpressReducedFee
		}
		return ExpressFee
	}
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return StandardFee
}

// Tax is the flat 10% on the subtotal only, rounded half-up to the paisa.
func Tax(subtotal int64) int64 {
	return (subtotal*taxRatePercent + 50) / 100
}

// Compute derives the full breakdown for display and checkout.
func Compute(subtotal int64, method domain.DeliveryMethod) domain.PricingBreakdown {
	shipping := ShippingCost(subtotal, method)
	tax := Tax(subtotal)
	return domain.PricingBreakdown{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal + shipping + tax,
	}
}
