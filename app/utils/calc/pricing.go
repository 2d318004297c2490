// Package calc holds the pure price projections. Cart-side figures are
// display estimates; checkout recomputes them before charging.
package calc

import (
	"github.com/shopspring/decimal"
	"github.com/soundstitch/storefront/app/models"
)

// ClothesUnitPrice is the flat estimate shown for custom garments. The
// garment price the customer is charged is computed at order creation.
var ClothesUnitPrice = decimal.NewFromInt(45)

// ItemUnitPrice returns the unit price for one cart item: the flat
// constant for clothes, the stored price for samples and packs.
func ItemUnitPrice(item models.CartItem) decimal.Decimal {
	switch it := item.(type) {
	case *models.ClothesItem:
		return ClothesUnitPrice
	case *models.SampleItem:
		return it.Price
	case *models.PackItem:
		return it.Price
	default:
		return decimal.Zero
	}
}

// ItemLineTotal is unit price times effective quantity (a missing
// quantity counts as 1).
func ItemLineTotal(item models.CartItem) decimal.Decimal {
	if item == nil {
		return decimal.Zero
	}
	return ItemUnitPrice(item).Mul(decimal.NewFromInt(int64(item.Qty())))
}

// CartSubtotal sums the line totals of all items.
func CartSubtotal(items []models.CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(ItemLineTotal(item))
	}
	return subtotal
}

func GetTaxPercent() decimal.Decimal {
	return decimal.NewFromInt(10)
}

func CalculateTax(baseTotal decimal.Decimal) decimal.Decimal {
	return baseTotal.Mul(GetTaxPercent()).Div(decimal.NewFromInt(100))
}

func CalculateGrandTotal(baseTotal, taxAmount decimal.Decimal) decimal.Decimal {
	return baseTotal.Add(taxAmount)
}
