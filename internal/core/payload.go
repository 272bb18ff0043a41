package core

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PriceSlabPayload is one per-size bulk pricing record in the product save
// payload. The derived fields are sent pre-computed — the remote API stores
// them verbatim and never recomputes, so field names and units are fixed.
type PriceSlabPayload struct {
	CostPrice    decimal.Decimal `json:"costPrice"`
	MarkupPrice  decimal.Decimal `json:"markupPrice"`
	SellPrice    decimal.Decimal `json:"sellPrice"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	Gst          decimal.Decimal `json:"gst"`
	GstAmount    decimal.Decimal `json:"gstAmount"`
	PriceWithGst decimal.Decimal `json:"priceWithGst"`
	PayableGst   decimal.Decimal `json:"payableGst"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	PackOff      int             `json:"packOff"`
	MinPack      int             `json:"minPack"`
}

// InventoryPayload is the flat inventory record: raw cost fields in snake
// case plus the same derived fields as the product payload.
type InventoryPayload struct {
	CostPrice    decimal.Decimal `json:"cost_price"`
	Markup       decimal.Decimal `json:"markup"`
	Gst          decimal.Decimal `json:"gst"`
	InStock      int             `json:"in_stock"`
	SellPrice    decimal.Decimal `json:"sellPrice"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	GstAmount    decimal.Decimal `json:"gstAmount"`
	PriceWithGst decimal.Decimal `json:"priceWithGst"`
	PayableGst   decimal.Decimal `json:"payableGst"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}

// NewPriceSlabPayload assembles the outbound record from the inputs and the
// derived pricing. PackOff and MinPack are packaging multipliers carried
// alongside the slab; they take no part in the arithmetic.
func NewPriceSlabPayload(inputs CostInputs, derived DerivedPricing, packOff, minPack int) PriceSlabPayload {
	return PriceSlabPayload{
		CostPrice:    inputs.CostPrice,
		MarkupPrice:  inputs.MarkupPercent,
		SellPrice:    derived.SellPrice,
		GrossProfit:  derived.GrossProfit,
		Gst:          inputs.TaxPercent,
		GstAmount:    derived.TaxAmount,
		PriceWithGst: derived.PriceWithTax,
		PayableGst:   derived.TaxPayable,
		NetProfit:    derived.NetProfit,
		PackOff:      packOff,
		MinPack:      minPack,
	}
}

// PayloadKind tags the recognized upstream response shapes.
type PayloadKind string

const (
	PayloadPriceSlabs    PayloadKind = "price_slabs"
	PayloadInventory     PayloadKind = "inventory"
	PayloadDiscountSlabs PayloadKind = "discount_slabs"
	PayloadQuantitySlabs PayloadKind = "quantity_slabs"
	PayloadUnrecognized  PayloadKind = "unrecognized"
)

// SlabPayload is a discriminated union over the slab-bearing response shapes
// the remote API produces. Exactly one branch is populated for a recognized
// shape; anything else decodes to Kind == PayloadUnrecognized rather than
// being probed ad hoc at call sites.
type SlabPayload struct {
	Kind          PayloadKind
	PriceSlabs    []PriceSlabPayload
	Inventory     *InventoryPayload
	DiscountSlabs []RawDiscountSlab
	QuantitySlabs []RawQuantitySlab
}

// DecodeSlabPayload classifies and decodes an API response body. It never
// returns an error: a body that matches no known shape yields the
// Unrecognized branch and the caller decides how loudly to complain.
func DecodeSlabPayload(data []byte) SlabPayload {
	var probe struct {
		PriceSlabs []json.RawMessage `json:"priceSlabs"`
		Inventory  json.RawMessage   `json:"inventory"`
		Slabs      []json.RawMessage `json:"slabs"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		// Not an object — maybe a bare array of quantity triples.
		if qs, ok := decodeQuantityTriples(data); ok {
			return SlabPayload{Kind: PayloadQuantitySlabs, QuantitySlabs: qs}
		}
		return SlabPayload{Kind: PayloadUnrecognized}
	}

	switch {
	case len(probe.PriceSlabs) > 0:
		var body struct {
			PriceSlabs []PriceSlabPayload `json:"priceSlabs"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return SlabPayload{Kind: PayloadUnrecognized}
		}
		return SlabPayload{Kind: PayloadPriceSlabs, PriceSlabs: body.PriceSlabs}

	case len(probe.Inventory) > 0:
		var body struct {
			Inventory InventoryPayload `json:"inventory"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return SlabPayload{Kind: PayloadUnrecognized}
		}
		return SlabPayload{Kind: PayloadInventory, Inventory: &body.Inventory}

	case len(probe.Slabs) > 0:
		var body struct {
			Slabs []RawDiscountSlab `json:"slabs"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return SlabPayload{Kind: PayloadUnrecognized}
		}
		return SlabPayload{Kind: PayloadDiscountSlabs, DiscountSlabs: body.Slabs}
	}

	if qs, ok := decodeQuantityTriples(data); ok {
		return SlabPayload{Kind: PayloadQuantitySlabs, QuantitySlabs: qs}
	}
	return SlabPayload{Kind: PayloadUnrecognized}
}

// decodeQuantityTriples accepts a bare array of {min_qty, max_qty,
// price_per_unit} records, the shape used by the dedicated slab calls.
func decodeQuantityTriples(data []byte) ([]RawQuantitySlab, bool) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil || len(rows) == 0 {
		return nil, false
	}
	out := make([]RawQuantitySlab, 0, len(rows))
	for _, row := range rows {
		if _, ok := row["min_qty"]; !ok {
			return nil, false
		}
		minQty, ok := numberField(row, "min_qty")
		if !ok {
			return nil, false
		}
		maxQty, ok := numberField(row, "max_qty")
		if !ok {
			return nil, false
		}
		unitPrice, ok := numberField(row, "price_per_unit")
		if !ok {
			return nil, false
		}
		out = append(out, RawQuantitySlab{MinQty: minQty, MaxQty: maxQty, UnitPrice: unitPrice})
	}
	return out, true
}

// numberField decodes one numeric field from a decoded row. An absent field
// is an empty string (the validator reports it); a present non-numeric value
// disqualifies the whole shape.
func numberField(row map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := row[key]
	if !ok {
		return "", true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n.String(), true
}
