package fare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_OriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"empty allow-list admits everything", nil, "JFK", true},
		{"member is allowed", []string{"BKK", "SIN"}, "BKK", true},
		{"match is case-insensitive", []string{"BKK"}, "bkk", true},
		{"non-member is rejected", []string{"BKK", "SIN"}, "JFK", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{AllowedOrigins: tt.allowed}
			assert.Equal(t, tt.want, p.originAllowed(tt.origin))
		})
	}
}

func TestPolicy_ExceedsCeiling(t *testing.T) {
	tests := []struct {
		name     string
		ceiling  *PriceCeiling
		price    float64
		currency string
		want     bool
	}{
		{"no ceiling configured", nil, 9999, "USD", false},
		{"below ceiling", &PriceCeiling{Amount: 60, Currency: "USD"}, 45, "USD", false},
		{"exactly at ceiling is kept", &PriceCeiling{Amount: 60, Currency: "USD"}, 60, "USD", false},
		{"strictly above ceiling", &PriceCeiling{Amount: 60, Currency: "USD"}, 60.01, "USD", true},
		{"other currency never rejected", &PriceCeiling{Amount: 200, Currency: "USD"}, 500, "EUR", false},
		{"currency match is case-insensitive", &PriceCeiling{Amount: 60, Currency: "usd"}, 75, "USD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{PriceCeiling: tt.ceiling}
			assert.Equal(t, tt.want, p.exceedsCeiling(tt.price, tt.currency))
		})
	}
}
