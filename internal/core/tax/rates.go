package tax

import "github.com/shopspring/decimal"

// ITBISRates are the ITBIS percentages the DGII admits on a comprobante.
var ITBISRates = []int64{0, 16, 18}

// RetentionRate pairs an ISR retention percentage with its display label.
// The label is informational only; computation never branches on it.
type RetentionRate struct {
	Rate  int64  `json:"rate"`
	Label string `json:"label"`
}

// ISRRetentionRates are the ISR retention percentages the system supports.
var ISRRetentionRates = []RetentionRate{
	{0, "Sin retención"},
	{5, "Honorarios profesionales"},
	{10, "Alquileres y arrendamientos"},
	{15, "Premios"},
	{25, "Pagos al exterior"},
	{27, "Rentas empresariales"},
}

// ValidITBISRate reports whether rate is one of the admitted ITBIS
// percentages.
func ValidITBISRate(rate decimal.Decimal) bool {
	for _, r := range ITBISRates {
		if rate.Equal(decimal.NewFromInt(r)) {
			return true
		}
	}
	return false
}

// ValidISRRetentionRate reports whether rate is one of the supported ISR
// retention percentages.
func ValidISRRetentionRate(rate decimal.Decimal) bool {
	for _, r := range ISRRetentionRates {
		if rate.Equal(decimal.NewFromInt(r.Rate)) {
			return true
		}
	}
	return false
}
