package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/MGservicing/MGservice-2/internal/model"
)

// Fixed storefront rates. These are configuration constants, not
// negotiable per order.
const (
	// Stickers are displayed with a 30% discount already baked into the
	// price; the original price is reconstructed as price / 0.7.
	stickerDiscountFactor = 0.7

	// Boost orders from players holding at least this many dice get a
	// flat discount off the tier price.
	DiceDiscountThreshold = 1000
	diceDiscount          = 2
)

var (
	taxRate       = decimal.NewFromFloat(0.05)
	stickerFactor = decimal.NewFromFloat(stickerDiscountFactor)
)

// BoostTier is one dice-boost offering. TierPrice is the base discounted
// price before the dice-count discount is applied.
type BoostTier struct {
	ID            string
	Label         string
	OriginalPrice float64
	TierPrice     float64
}

var BoostTiers = []BoostTier{
	{ID: "boost-2k", Label: "+2,000", OriginalPrice: 10, TierPrice: 10},
	{ID: "boost-3k", Label: "+3,000", OriginalPrice: 15, TierPrice: 14},
	{ID: "boost-4k", Label: "+4,000", OriginalPrice: 20, TierPrice: 18},
	{ID: "boost-5k", Label: "+5,000", OriginalPrice: 25, TierPrice: 22.5},
	{ID: "boost-6k", Label: "+6,000", OriginalPrice: 30, TierPrice: 25.5},
	{ID: "boost-7k", Label: "+7,000", OriginalPrice: 35, TierPrice: 29.75},
	{ID: "boost-8k", Label: "+8,000", OriginalPrice: 40, TierPrice: 32},
	{ID: "boost-9k", Label: "+9,000", OriginalPrice: 45, TierPrice: 36},
}

// FindBoostTier looks a tier up by id.
func FindBoostTier(id string) (BoostTier, bool) {
	for _, t := range BoostTiers {
		if t.ID == id {
			return t, true
		}
	}
	return BoostTier{}, false
}

// BoostPrice applies the dice-count discount to a tier price: players at
// or above the threshold get the flat discount, floored at zero.
func BoostPrice(tierPrice float64, dice int) float64 {
	if dice < DiceDiscountThreshold {
		return tierPrice
	}
	p := decimal.NewFromFloat(tierPrice).Sub(decimal.NewFromInt(diceDiscount))
	if p.IsNegative() {
		return 0
	}
	return p.InexactFloat64()
}

// StickerOriginalPrice reconstructs the pre-discount price of a sticker
// from its displayed price. Display-only; never stored.
func StickerOriginalPrice(price float64) float64 {
	return decimal.NewFromFloat(price).Div(stickerFactor).Round(2).InexactFloat64()
}

// LineDiscount returns the per-unit discount shown for a cart line.
// Boosts carry their original price on the item; anything else is a
// sticker whose original price is reconstructed.
func LineDiscount(item model.CartItem) float64 {
	price := decimal.NewFromFloat(item.Price)

	var original decimal.Decimal
	if item.Type == model.ItemTypeBoost {
		if item.OriginalPrice > 0 {
			original = decimal.NewFromFloat(item.OriginalPrice)
		} else {
			original = price
		}
	} else {
		original = price.Div(stickerFactor)
	}
	return original.Sub(price).Round(2).InexactFloat64()
}

// Totals is a cart-level amount breakdown, rounded to cents.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CartTotals derives the frozen order amounts from a cart snapshot:
// subtotal is the sum of price*quantity, tax is 5% of the subtotal, and
// total is their sum. Math is exact decimal internally; rounding to two
// places happens here, at the presentation boundary.
func CartTotals(items []model.CartItem) Totals {
	sub := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sub = sub.Add(line)
	}

	subtotal := sub.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
