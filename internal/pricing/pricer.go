package pricing

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Tier selects which of the two catalog prices applies to an item.
type Tier string

const (
	Retail    Tier = "RETAIL"
	Wholesale Tier = "WHOLESALE"
)

// ParseTier defaults to Retail for anything it does not recognize.
func ParseTier(s string) Tier {
	switch s {
	case string(Wholesale), "RESELLER", "MAYORISTA", "REVENDEDOR":
		return Wholesale
	default:
		return Retail
	}
}

var ErrInvalidQuantity = errors.New("quantity must be positive")

const DefaultQuantity = 1

// QuantityOrDefault applies the default for an omitted quantity.
func QuantityOrDefault(q *int) int {
	if q == nil {
		return DefaultQuantity
	}
	return *q
}

// ItemInput is one line after unit normalization.
type ItemInput struct {
	WidthCm        float64
	HeightCm       float64
	Quantity       int
	Tier           Tier
	RetailPrice    float64
	WholesalePrice *float64
}

// Line holds every derived figure of a priced item.
type Line struct {
	Width        int
	Height       int
	SquareMeters float64
	Quantity     int
	Tier         Tier
	UnitPrice    float64
	PricePerSqm  float64
	Subtotal     float64
}

// SquareMeters is computed from unrounded centimeters.
func SquareMeters(widthCm, heightCm float64) float64 {
	return widthCm * heightCm / 10000
}

// UnitPrice picks the tier price. Wholesale without a wholesale price uses retail.
func (in ItemInput) UnitPrice() float64 {
	if in.Tier == Wholesale && in.WholesalePrice != nil {
		return *in.WholesalePrice
	}
	return in.RetailPrice
}

// PriceItem prices one line. The subtotal scales with quantity only; area feeds
// the reported price per square meter and nothing else.
func PriceItem(in ItemInput) (Line, error) {
	if in.Quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	tier := in.Tier
	if tier != Wholesale {
		tier = Retail
	}
	unit := in.UnitPrice()
	sqm := SquareMeters(in.WidthCm, in.HeightCm)
	line := Line{
		Width:        RoundCentimeters(in.WidthCm),
		Height:       RoundCentimeters(in.HeightCm),
		SquareMeters: sqm,
		Quantity:     in.Quantity,
		Tier:         tier,
		UnitPrice:    unit,
		Subtotal:     unit * float64(in.Quantity),
	}
	if sqm > 0 {
		line.PricePerSqm = unit / sqm
	}
	return line, nil
}

// DisplaySquareMeters renders an area with two decimals.
func DisplaySquareMeters(sqm float64) string {
	return decimal.NewFromFloat(sqm).StringFixed(2)
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
