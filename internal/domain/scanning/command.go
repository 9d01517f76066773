package scanning

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Barcode wire formats understood by the scanner. Everything else is
// rejected as unrecognized.
const (
	BuyerPrefix  = "BUYER:"
	ItemPrefix   = "ITEM:"
	PricePrefix  = "PRICE:"
	ClearCommand = "BUYER:__CLEAR__"
)

// Command is a classified barcode scan. Exactly one of the concrete
// types below is produced for every input string.
type Command interface {
	isCommand()
}

// BuyerScan selects the buyer with the given barcode ID
type BuyerScan struct {
	Barcode string
}

// ItemScan selects the item with the given barcode ID
type ItemScan struct {
	Barcode string
}

// PriceScan adds an amount to the current item's accumulated price
type PriceScan struct {
	Amount decimal.Decimal
}

// Clear resets the buyer/item/price selection, keeping the event
type Clear struct{}

// InvalidPrice is a PRICE: scan whose payload did not parse as a
// non-negative decimal
type InvalidPrice struct {
	Raw string
}

// Unrecognized is any scan that matches no known format
type Unrecognized struct {
	Raw string
}

func (BuyerScan) isCommand()    {}
func (ItemScan) isCommand()     {}
func (PriceScan) isCommand()    {}
func (Clear) isCommand()        {}
func (InvalidPrice) isCommand() {}
func (Unrecognized) isCommand() {}

// Classify parses a raw scanned string into a Command. It never fails:
// malformed input degrades to Unrecognized or InvalidPrice. The clear
// literal takes precedence over generic BUYER: handling.
func Classify(raw string) Command {
	raw = strings.TrimSpace(raw)

	switch {
	case raw == ClearCommand:
		return Clear{}

	case strings.HasPrefix(raw, BuyerPrefix):
		return BuyerScan{Barcode: raw[len(BuyerPrefix):]}

	case strings.HasPrefix(raw, ItemPrefix):
		return ItemScan{Barcode: raw[len(ItemPrefix):]}

	case strings.HasPrefix(raw, PricePrefix):
		payload := strings.TrimSpace(raw[len(PricePrefix):])
		amount, err := decimal.NewFromString(payload)
		if err != nil || amount.IsNegative() {
			return InvalidPrice{Raw: payload}
		}
		return PriceScan{Amount: amount}

	default:
		return Unrecognized{Raw: raw}
	}
}
