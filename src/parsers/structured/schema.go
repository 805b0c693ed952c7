// backend/src/parsers/structured/schema.go
package structured

import (
	"math"
	"regexp"

	"github.com/username/dealparse/backend/src/models"
	"github.com/username/dealparse/backend/src/parsers"
)

// scalarMapping renames a raw pattern key to its canonical entity name.
// Date-valued fields pass through the date normalizer on the way out.
type scalarMapping struct {
	raw    string
	out    string
	isDate bool
}

var scalarMappings = []scalarMapping{
	{"party_a", "PartyA", false},
	{"party_b", "PartyB", false},
	{"trade_date", "TradeDate", true},
	{"trade_time", "TradeTime", false},
	{"initial_valuation_date", "InitialValuationDate", true},
	{"effective_date", "EffectiveDate", true},
	{"valuation_date", "ValuationDate", true},
	{"termination_date", "TerminationDate", true},
	{"upfront_payment", "UpfrontPayment", false},
	{"coupon", "Coupon", false},
	{"interest_payments", "InterestPayments", false},
	{"business_day", "BusinessDay", false},
	{"future_price_valuation", "FuturePriceValuation", false},
	{"isda_doc", "ISDADocumentation", false},
}

var agentSplitRe = regexp.MustCompile(`(?i)\s*\band\b\s*`)

// mapToSchema converts the raw field map into the canonical nested
// schema. Nested objects are only emitted when their constituent raw
// fields are present; empty values are dropped so the output never
// carries nulls.
func mapToSchema(raw map[string]any) map[string]any {
	out := make(map[string]any)

	for _, m := range scalarMappings {
		v, ok := raw[m.raw].(string)
		if !ok || v == "" {
			continue
		}
		if m.isDate {
			v = parsers.NormalizeDate(v)
		}
		out[m.out] = v
	}

	if s, ok := raw["notional_amount"].(string); ok && s != "" {
		if mv := parsers.ParseMoney(s); mv != nil {
			out["Notional"] = mv
		}
	}

	// Underlying requires exactly the three captured groups of the
	// underlying pattern: name, ISIN, Reuters ticker.
	if groups, ok := raw["underlying"].([]string); ok && len(groups) == 3 {
		underlying := &models.UnderlyingValue{
			Name:   groups[0],
			ISIN:   groups[1],
			Ticker: groups[2],
		}
		if exchange, ok := raw["exchange"].(string); ok {
			underlying.Exchange = exchange
		}
		out["Underlying"] = underlying
	}

	if s, ok := raw["barrier"].(string); ok && s != "" {
		if value, reference, ok := parsers.ParseBarrier(s); ok {
			out["Barrier"] = &models.BarrierValue{Value: value, Unit: "%", Reference: reference}
		}
	}

	equity := &models.EquityPayments{}
	if s, ok := raw["initial_price"].(string); ok && s != "" {
		equity.InitialPrice = s
	}
	if s, ok := raw["final_price"].(string); ok && s != "" {
		equity.FinalPrice = s
	}
	if equity.InitialPrice != "" || equity.FinalPrice != "" {
		out["EquityPayments"] = equity
	}

	// Multiple calculation agents joined by "and" become an ordered
	// list; a single agent stays scalar.
	if s, ok := raw["calculation_agent"].(string); ok && s != "" {
		agents := agentSplitRe.Split(s, -1)
		cleaned := agents[:0]
		for _, a := range agents {
			if a != "" {
				cleaned = append(cleaned, a)
			}
		}
		if len(cleaned) > 1 {
			out["CalculationAgent"] = cleaned
		} else if len(cleaned) == 1 {
			out["CalculationAgent"] = cleaned[0]
		}
	}

	return out
}

// keyFields is the fixed completeness set the confidence score is
// measured against.
var keyFields = []string{"PartyA", "PartyB", "Notional", "Underlying", "TerminationDate", "TradeDate"}

// ConfidenceScore returns the fraction of key fields present in the
// entity map, rounded to two decimals. Always within [0, 1].
func ConfidenceScore(entities map[string]any) float64 {
	found := 0
	for _, f := range keyFields {
		if _, ok := entities[f]; ok {
			found++
		}
	}
	return math.Round(float64(found)/float64(len(keyFields))*100) / 100
}
