package report

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoData signals an empty result set for the requested period. It is a
// normal outcome, not a failure: the boundary reports "nothing to export"
// and no file is produced, never a header-only file.
var ErrNoData = errors.New("no invoices for the requested period")

// InformanteRNC is the reporting-party RNC field of the 607/608 headers.
const InformanteRNC = "000000000"

// MIMEText is the content type of the generated DGII text files.
const MIMEText = "text/plain;charset=utf-8"

// Period identifies the calendar month a DGII report covers.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod validates and builds a report period.
func NewPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid month %d", month)
	}
	if year < 2000 || year > 2100 {
		return Period{}, fmt.Errorf("invalid year %d", year)
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// String renders the period as YYYYMM, the layout used in headers and
// filenames.
func (p Period) String() string {
	return fmt.Sprintf("%04d%02d", p.Year, int(p.Month))
}

// Bounds returns the half-open interval [start of month, start of next
// month) for date-range queries.
func (p Period) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// File is a generated report ready for the download boundary.
type File struct {
	Name    string
	MIME    string
	Content []byte
}

// CancellationReason is the DGII tipo de anulación code on a 608 line. The
// real catalogue has more codes; damaged pre-printed invoice is the only
// reason this system records today, and the enum leaves room to add others
// without reshaping the formatter.
type CancellationReason string

// ReasonDamagedPreprinted is "deterioro de factura pre-impresa".
const ReasonDamagedPreprinted CancellationReason = "02"
