package document

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SecurityCode derives the 8-hex visual code printed inside the e-CF box.
// It is a plain rolling hash over the NCF, the issue date and the total,
// a layout placeholder that mimics the look of a DGII security code. It is
// NOT a cryptographic fiscal signature and must never be presented as one;
// no DGII signing service is involved.
func SecurityCode(ncfCode string, issueDate time.Time, total decimal.Decimal) string {
	seed := ncfCode + issueDate.Format("20060102") + total.StringFixed(2)
	var h uint32
	for _, r := range seed {
		h = h*31 + uint32(r)
	}
	return fmt.Sprintf("%08X", h)
}
