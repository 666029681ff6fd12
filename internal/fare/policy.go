package fare

import "strings"

// PriceCeiling is the maximum acceptable price within one currency.
type PriceCeiling struct {
	Amount   float64
	Currency string
}

// Policy is the resolved search policy, immutable for the process
// lifetime.
type Policy struct {
	AllowedOrigins     []string
	DestinationPool    []string
	PriceCeiling       *PriceCeiling
	PreferHoldEligible bool
}

// originAllowed gates the whole search before any provider call. An
// empty allow-list admits every origin.
func (p Policy) originAllowed(origin string) bool {
	if len(p.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range p.AllowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// exceedsCeiling reports whether an offer price breaks the configured
// ceiling. The ceiling only applies within its own currency; offers in
// any other currency are never rejected by it. Known limitation: a pool
// quoting mixed currencies is effectively unbounded outside the ceiling
// currency.
func (p Policy) exceedsCeiling(price float64, currency string) bool {
	if p.PriceCeiling == nil {
		return false
	}
	if !strings.EqualFold(currency, p.PriceCeiling.Currency) {
		return false
	}
	return price > p.PriceCeiling.Amount
}
