package core

import "github.com/shopspring/decimal"

// RawCostInputs holds the cost inputs exactly as collected by a form layer:
// free-text numeric strings, possibly blank or garbage mid-keystroke.
// Normalize coerces them into CostInputs without ever failing.
type RawCostInputs struct {
	CostPrice     string `json:"costPrice"`
	MarkupPercent string `json:"markup"`
	TaxPercent    string `json:"gst"`
	PackQuantity  string `json:"packQuantity"`
}

// CostInputs is the coerced, numeric form of the pricing inputs.
type CostInputs struct {
	CostPrice     decimal.Decimal `json:"costPrice"`
	MarkupPercent decimal.Decimal `json:"markup"`
	TaxPercent    decimal.Decimal `json:"gst"`
	PackQuantity  int             `json:"packQuantity"`
}

// DerivedPricing is the full set of priced fields computed from CostInputs.
// All values are rounded to 2 fractional digits independently. The record is
// read-only downstream: screens display it and the save path serializes it as-is.
type DerivedPricing struct {
	SellPrice    decimal.Decimal `json:"sellPrice"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	TaxAmount    decimal.Decimal `json:"gstAmount"`
	PriceWithTax decimal.Decimal `json:"priceWithGst"`
	TaxPayable   decimal.Decimal `json:"payableGst"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}

const (
	// DefaultTaxPercent applies when the tax field is blank.
	DefaultTaxPercent = 18
	// DefaultPackQuantity applies when the pack field is blank or below 1.
	DefaultPackQuantity = 1
)
