package scanning

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassify_BuyerScan(t *testing.T) {
	cmd := Classify("BUYER:B1001")

	buyer, ok := cmd.(BuyerScan)
	assert.True(t, ok)
	assert.Equal(t, "B1001", buyer.Barcode)
}

func TestClassify_ItemScan(t *testing.T) {
	cmd := Classify("ITEM:I5001")

	item, ok := cmd.(ItemScan)
	assert.True(t, ok)
	assert.Equal(t, "I5001", item.Barcode)
}

func TestClassify_PriceScan(t *testing.T) {
	cmd := Classify("PRICE:18.50")

	price, ok := cmd.(PriceScan)
	assert.True(t, ok)
	assert.True(t, price.Amount.Equal(decimal.RequireFromString("18.50")))
}

func TestClassify_PriceScan_Zero(t *testing.T) {
	cmd := Classify("PRICE:0")

	price, ok := cmd.(PriceScan)
	assert.True(t, ok)
	assert.True(t, price.Amount.IsZero())
}

func TestClassify_ClearTakesPrecedenceOverBuyerPrefix(t *testing.T) {
	cmd := Classify("BUYER:__CLEAR__")

	_, ok := cmd.(Clear)
	assert.True(t, ok)
}

func TestClassify_InvalidPrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not a number", "PRICE:abc"},
		{"negative", "PRICE:-5"},
		{"empty payload", "PRICE:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Classify(tt.raw).(InvalidPrice)
			assert.True(t, ok)
		})
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "garbage"},
		{"empty", ""},
		{"lowercase prefix", "buyer:B1001"},
		{"no colon", "BUYER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Classify(tt.raw).(Unrecognized)
			assert.True(t, ok, "expected Unrecognized for %q", tt.raw)
		})
	}
}

func TestClassify_EmptyBuyerPayloadIsStillBuyerScan(t *testing.T) {
	// An empty payload after the prefix is a lookup miss, not a parse
	// failure; the engine reports it as an unknown barcode.
	buyer, ok := Classify("BUYER:").(BuyerScan)
	assert.True(t, ok)
	assert.Equal(t, "", buyer.Barcode)
}
