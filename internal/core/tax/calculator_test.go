package tax

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		taxRate   string
		isrRate   string
		wantITBIS string
		wantISR   string
		wantTotal string
	}{
		{
			name:      "standard 18 percent",
			amount:    "1000.00",
			taxRate:   "18",
			isrRate:   "0",
			wantITBIS: "180.00",
			wantISR:   "0.00",
			wantTotal: "1180.00",
		},
		{
			name:      "reduced 16 percent",
			amount:    "250.00",
			taxRate:   "16",
			isrRate:   "0",
			wantITBIS: "40.00",
			wantISR:   "0.00",
			wantTotal: "290.00",
		},
		{
			name:      "exempt",
			amount:    "500.00",
			taxRate:   "0",
			isrRate:   "0",
			wantITBIS: "0.00",
			wantISR:   "0.00",
			wantTotal: "500.00",
		},
		{
			name:      "professional fees retention",
			amount:    "10000.00",
			taxRate:   "18",
			isrRate:   "10",
			wantITBIS: "1800.00",
			wantISR:   "1000.00",
			wantTotal: "10800.00",
		},
		{
			name:      "sub-cent rounding",
			amount:    "33.33",
			taxRate:   "18",
			isrRate:   "0",
			wantITBIS: "5.99",
			wantISR:   "0.00",
			wantTotal: "39.32",
		},
		{
			name:      "cent fractions",
			amount:    "0.07",
			taxRate:   "18",
			isrRate:   "0",
			wantITBIS: "0.01",
			wantISR:   "0.00",
			wantTotal: "0.08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(dec(tt.amount), dec(tt.taxRate), dec(tt.isrRate))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.ITBISAmount.StringFixed(2) != tt.wantITBIS {
				t.Errorf("itbis: expected %s, got %s", tt.wantITBIS, got.ITBISAmount.StringFixed(2))
			}
			if got.ISRRetentionAmount.StringFixed(2) != tt.wantISR {
				t.Errorf("isr: expected %s, got %s", tt.wantISR, got.ISRRetentionAmount.StringFixed(2))
			}
			if got.TotalAmount.StringFixed(2) != tt.wantTotal {
				t.Errorf("total: expected %s, got %s", tt.wantTotal, got.TotalAmount.StringFixed(2))
			}
		})
	}
}

func TestCompute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		taxRate string
		isrRate string
		wantErr error
	}{
		{"zero amount", "0", "18", "0", ErrAmountNotPositive},
		{"negative amount", "-10.00", "18", "0", ErrAmountNotPositive},
		{"unknown itbis rate", "100.00", "12", "0", ErrInvalidITBISRate},
		{"negative itbis rate", "100.00", "-18", "0", ErrInvalidITBISRate},
		{"unknown isr rate", "100.00", "18", "7", ErrInvalidRetentionRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(dec(tt.amount), dec(tt.taxRate), dec(tt.isrRate))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCents(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"0", 0},
		{"1", 100},
		{"1180.00", 118000},
		{"0.01", 1},
		{"10.005", 1001},
		{"99.994", 9999},
	}

	for _, tt := range tests {
		if got := Cents(dec(tt.amount)); got != tt.want {
			t.Errorf("Cents(%s): expected %d, got %d", tt.amount, tt.want, got)
		}
	}
}

func TestEquivalentDOP(t *testing.T) {
	got := EquivalentDOP(dec("118.00"), dec("58.45"))
	if got.StringFixed(2) != "6897.10" {
		t.Errorf("expected 6897.10, got %s", got.StringFixed(2))
	}
}

func TestValidITBISRate(t *testing.T) {
	for _, rate := range ITBISRates {
		if !ValidITBISRate(decimal.NewFromInt(rate)) {
			t.Errorf("expected rate %d to be valid", rate)
		}
	}
	if ValidITBISRate(dec("18.5")) {
		t.Error("expected 18.5 to be rejected")
	}
}

func TestValidISRRetentionRate(t *testing.T) {
	for _, rate := range ISRRetentionRates {
		if !ValidISRRetentionRate(decimal.NewFromInt(rate.Rate)) {
			t.Errorf("expected rate %d to be valid", rate.Rate)
		}
	}
	if ValidISRRetentionRate(dec("50")) {
		t.Error("expected 50 to be rejected")
	}
}
