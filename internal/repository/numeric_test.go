package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "2.50", "7.5", "999999.99", "0.01"} {
		d := decimal.RequireFromString(s)
		got := NumericToDecimal(DecimalToNumeric(d))
		if !got.Equal(d) {
			t.Errorf("round trip of %s = %s", d, got)
		}
	}
}

func TestNumericToDecimalNull(t *testing.T) {
	if got := NumericToDecimal(pgtype.Numeric{}); !got.Equal(decimal.Zero) {
		t.Errorf("NULL numeric = %s, want 0", got)
	}
}
