package tax

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrAmountNotPositive rejects invoices with a zero or negative base.
	ErrAmountNotPositive = errors.New("amount must be greater than zero")

	// ErrInvalidITBISRate rejects ITBIS percentages outside the rate table.
	ErrInvalidITBISRate = errors.New("itbis rate is not a valid DGII rate")

	// ErrInvalidRetentionRate rejects ISR percentages outside the rate table.
	ErrInvalidRetentionRate = errors.New("isr retention rate is not supported")
)

var hundred = decimal.NewFromInt(100)

// Breakdown holds the derived money fields of an invoice, each rounded to
// two decimal places. These values are persisted at creation and never
// silently recomputed later, so historical invoices stay correct if the
// rate tables ever change.
type Breakdown struct {
	ITBISAmount        decimal.Decimal `json:"itbisAmount"`
	ISRRetentionAmount decimal.Decimal `json:"isrRetentionAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
}

// Compute derives the ITBIS, ISR retention and total payable from a base
// amount and its percentage rates:
//
//	itbis = amount * taxRate / 100
//	isr   = amount * isrRate / 100
//	total = amount + itbis - isr
func Compute(amount, taxRate, isrRate decimal.Decimal) (Breakdown, error) {
	if !amount.IsPositive() {
		return Breakdown{}, ErrAmountNotPositive
	}
	if !ValidITBISRate(taxRate) {
		return Breakdown{}, ErrInvalidITBISRate
	}
	if !ValidISRRetentionRate(isrRate) {
		return Breakdown{}, ErrInvalidRetentionRate
	}

	itbis := amount.Mul(taxRate).Div(hundred).Round(2)
	isr := amount.Mul(isrRate).Div(hundred).Round(2)
	total := amount.Add(itbis).Sub(isr).Round(2)

	return Breakdown{
		ITBISAmount:        itbis,
		ISRRetentionAmount: isr,
		TotalAmount:        total,
	}, nil
}

// ITBIS returns the ITBIS portion of a base amount without validating the
// rate. Used when re-expressing already persisted invoices at export time.
func ITBIS(amount, taxRate decimal.Decimal) decimal.Decimal {
	return amount.Mul(taxRate).Div(hundred).Round(2)
}

// Cents re-expresses a 2-decimal currency amount as integer cents using
// round-half-up. The conversion happens only at DGII export time, never at
// storage time.
func Cents(amount decimal.Decimal) int64 {
	return amount.Round(2).Mul(hundred).Round(0).IntPart()
}

// EquivalentDOP is the informational peso value of a foreign-currency total.
// It is a display figure only and never feeds back into TotalAmount.
func EquivalentDOP(total, exchangeRate decimal.Decimal) decimal.Decimal {
	return total.Mul(exchangeRate).Round(2)
}
