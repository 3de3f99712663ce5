package money

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{in: "10", want: 1000},
		{in: "10.5", want: 1050},
		{in: "0.01", want: 1},
		{in: "0", want: 0},
		{in: "19.999", wantErr: ErrPrecision},
		{in: "-1", wantErr: ErrNegative},
		{in: "92233720368547758.07", want: math.MaxInt64},
		{in: "92233720368547758.08", wantErr: ErrOverflow},
		{in: "184467440737095516.17", wantErr: ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToCents(decimal.RequireFromString(tt.in))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected err %v, got %v", tt.wantErr, err)
			}
			if err == nil && got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFromCentsAndLine(t *testing.T) {
	if !FromCents(3000).Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("unexpected FromCents result %s", FromCents(3000))
	}
	if !Line(decimal.RequireFromString("10.00"), 3).Equal(decimal.NewFromInt(30)) {
		t.Fatalf("unexpected line total")
	}
}
