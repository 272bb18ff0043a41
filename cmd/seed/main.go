// seed is a one-shot tool that loads a small demo catalog: a few products
// with sizes and bulk tiers, a delivery charge configuration, and a global
// quantity slab list. Run it against a freshly migrated database.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"supply-console/internal/core"
	"supply-console/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	catalog := core.NewCatalogService(pool)
	discounts := core.NewDiscountConfigService(pool)
	slabs := core.NewPriceSlabService(pool)

	log.Println("Seeding products...")
	products := []core.ProductInput{
		{
			Code: "RICE-BASMATI", Name: "Basmati Rice", Category: "Grains",
			Subcategory: "Rice", Unit: "kg", BasePrice: "120",
			Sizes: []core.ProductSizeInput{
				{
					Label: "5 kg", Quantity: 40,
					Inputs: core.RawCostInputs{CostPrice: "100", MarkupPercent: "15", TaxPercent: "18", PackQuantity: "5"},
					Slabs: []core.BulkSlabInput{
						{Inputs: core.RawCostInputs{CostPrice: "95", MarkupPercent: "12", TaxPercent: "18"}, PackOff: 5, MinPack: 10},
					},
				},
				{
					Label: "25 kg", Quantity: 12,
					Inputs: core.RawCostInputs{CostPrice: "95", MarkupPercent: "12", TaxPercent: "18", PackQuantity: "25"},
				},
			},
		},
		{
			Code: "FLOUR-MAIDA", Name: "Refined Flour", Category: "Grains",
			Subcategory: "Flour", Unit: "kg", BasePrice: "48",
			Sizes: []core.ProductSizeInput{
				{
					Label: "10 kg", Quantity: 30,
					Inputs: core.RawCostInputs{CostPrice: "40", MarkupPercent: "20", TaxPercent: "5", PackQuantity: "10"},
				},
			},
		},
		{
			Code: "OIL-SUNFLOWER", Name: "Sunflower Oil", Category: "Oils",
			Subcategory: "Refined", Unit: "litre", BasePrice: "145",
			Sizes: []core.ProductSizeInput{
				{
					Label: "15 litre tin", Quantity: 8,
					Inputs: core.RawCostInputs{CostPrice: "125", MarkupPercent: "16", TaxPercent: "5", PackQuantity: "15"},
				},
			},
		},
	}
	for _, p := range products {
		if _, err := catalog.SaveProduct(ctx, p); err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.Code, err)
		}
	}

	log.Println("Seeding delivery charges...")
	_, err = discounts.SaveConfig(ctx, core.ScopeDeliveryCharge, "Mumbai", "LocalFleet", []core.RawDiscountSlab{
		{MinAmount: "500", MaxAmount: "1999", DiscountType: "percentage", DiscountValue: "50"},
		{MinAmount: "2000", DiscountType: "fixed", DiscountValue: "80"},
	})
	if err != nil {
		log.Fatalf("Failed to seed delivery charges: %v", err)
	}

	log.Println("Seeding global quantity slabs...")
	globals := []core.RawQuantitySlab{
		{MinQty: "1", MaxQty: "9", UnitPrice: "115"},
		{MinQty: "10", MaxQty: "49", UnitPrice: "105"},
		{MinQty: "50", MaxQty: "999", UnitPrice: "95"},
	}
	for _, g := range globals {
		if _, err := slabs.AddSlab(ctx, "", g); err != nil {
			log.Fatalf("Failed to seed global slab: %v", err)
		}
	}

	log.Println("Seed complete.")
}
