package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize coerces the raw form fields into numeric inputs. Blank or
// non-numeric values become zero rather than an error — the calculator runs on
// every keystroke and a half-typed field must never surface a failure.
// A blank tax field falls back to DefaultTaxPercent; pack quantity is floored
// at DefaultPackQuantity.
func (r RawCostInputs) Normalize() CostInputs {
	inputs := CostInputs{
		CostPrice:     coerceDecimal(r.CostPrice),
		MarkupPercent: coerceDecimal(r.MarkupPercent),
		TaxPercent:    coerceDecimal(r.TaxPercent),
		PackQuantity:  coerceInt(r.PackQuantity),
	}
	if strings.TrimSpace(r.TaxPercent) == "" {
		inputs.TaxPercent = decimal.NewFromInt(DefaultTaxPercent)
	}
	if inputs.PackQuantity < DefaultPackQuantity {
		inputs.PackQuantity = DefaultPackQuantity
	}
	return inputs
}

// DerivePricing computes the full derived-price record from the cost inputs.
// It is side-effect-free and cheap enough to run per keystroke.
//
//	sellPrice    = costPrice + costPrice * markup / 100
//	grossProfit  = sellPrice - costPrice
//	taxAmount    = sellPrice * tax / 100
//	priceWithTax = sellPrice + taxAmount
//	taxPayable   = taxAmount (separate ledger field downstream)
//	netProfit    = grossProfit - taxAmount
//
// netProfit is the single canonical rule: profit net of the tax liability.
// Each output is rounded to 2 decimals independently, not only the final result.
func DerivePricing(inputs CostInputs) DerivedPricing {
	hundred := decimal.NewFromInt(100)

	sellPrice := inputs.CostPrice.Add(inputs.CostPrice.Mul(inputs.MarkupPercent).Div(hundred))
	grossProfit := sellPrice.Sub(inputs.CostPrice)
	taxAmount := sellPrice.Mul(inputs.TaxPercent).Div(hundred)
	priceWithTax := sellPrice.Add(taxAmount)
	netProfit := grossProfit.Sub(taxAmount)

	return DerivedPricing{
		SellPrice:    sellPrice.Round(2),
		GrossProfit:  grossProfit.Round(2),
		TaxAmount:    taxAmount.Round(2),
		PriceWithTax: priceWithTax.Round(2),
		TaxPayable:   taxAmount.Round(2),
		NetProfit:    netProfit.Round(2),
	}
}

// CoerceAmount parses a free-text monetary field with the same tolerance the
// calculator applies: blank or unparseable values become zero, thousands
// separators are stripped.
func CoerceAmount(raw string) decimal.Decimal {
	return coerceDecimal(raw)
}

// coerceDecimal parses a free-text numeric field, treating anything
// unparseable as zero. Thousands separators are tolerated.
func coerceDecimal(raw string) decimal.Decimal {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func coerceInt(raw string) int {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
