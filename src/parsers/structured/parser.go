// backend/src/parsers/structured/parser.go
package structured

import (
	"regexp"
	"strings"
	"time"

	"github.com/username/dealparse/backend/src/models"
	"github.com/username/dealparse/backend/src/parsers"
)

// fieldPattern binds a raw field name to the compiled pattern for its
// labeled line ("Label : value", "Label | value" or "Label<tab>value").
type fieldPattern struct {
	key string
	re  *regexp.Regexp
}

// newFieldPatterns builds the ordered pattern table. Order matters and
// must not be changed: the table is evaluated top to bottom and, per
// field, the first matching line wins.
func newFieldPatterns() []fieldPattern {
	mk := func(key, expr string) fieldPattern {
		return fieldPattern{key: key, re: regexp.MustCompile(`(?im)` + expr)}
	}
	return []fieldPattern{
		mk("party_a", `^Party A\s*(?::|\||\t)\s*(.+)$`),
		mk("party_b", `^Party B\s*(?::|\||\t)\s*(.+)$`),
		mk("trade_date", `^Trade Date\s*(?::|\||\t)\s*(\d{1,2}\s+\w+\s+\d{4})$`),
		mk("trade_time", `^Trade Time\s*(?::|\||\t)\s*(\d{2}:\d{2}:\d{2})$`),
		mk("initial_valuation_date", `^Initial Valuation Date\s*(?::|\||\t)\s*(\d{1,2}\s+\w+\s+\d{4})$`),
		mk("effective_date", `^Effective Date\s*(?::|\||\t)\s*(\d{1,2}\s+\w+\s+\d{4})$`),
		mk("valuation_date", `^Valuation Date\s*(?::|\||\t)\s*(\d{1,2}\s+\w+\s+\d{4})$`),
		mk("termination_date", `^(?:Termination Date|Maturity)\s*(?::|\||\t)\s*(\d{1,2}\s+\w+\s+\d{4})$`),
		mk("notional_amount", `^Notional Amount\s*\(N\)\s*(?::|\||\t)\s*([A-Z]{3}\s+[\d,.\s]+(?:million|thousand|bn|mm|m|k|b)?(?:\s+\w+)?)$`),
		mk("upfront_payment", `^Upfront Payment\s*(?::|\||\t)\s*(.+)$`),
		mk("underlying", `^Underlying\s*(?::|\||\t)\s*([^(]+)\(ISIN\s+([A-Z0-9]+),\s*Reuters:\s*([A-Z0-9.]+)\)\s*$`),
		mk("exchange", `^Exchange\s*(?::|\||\t)\s*([^\n]+)$`),
		mk("coupon", `^Coupon\s*\(C\)\s*(?::|\||\t)\s*([^\n]+)$`),
		mk("barrier", `^Barrier\s*\(B\)\s*(?::|\||\t)\s*([^\n]+)$`),
		mk("interest_payments", `^Interest Payments(?:\s*(?::|\||\t)\s*([^\n]+))?$`),
		mk("initial_price", `^Initial Price\s*\(Shareini\)\s*(?::|\||\t)\s*([^\n]+)$`),
		mk("final_price", `^Sharefinal\s*(?::|\||\t)\s*([^\n]+)$`),
		mk("business_day", `^Business Day\s*(?::|\||\t)\s*([^\n]+)$`),
		mk("future_price_valuation", `^Future Price Valuation\s*(?::|\||\t)\s*([^\n]+)$`),
		mk("calculation_agent", `^Calculation Agent\s*(?::|\||\t)\s*([^\n]+)$`),
		mk("isda_doc", `^ISDA Documentation\s*(?::|\||\t)\s*([^\n]+)$`),
	}
}

// Parser extracts deal entities from templated term sheets.
type Parser struct {
	patterns []fieldPattern
}

// NewParser creates a structured term-sheet parser with its own pattern
// table, so concurrent callers need no coordination.
func NewParser() *Parser {
	return &Parser{patterns: newFieldPatterns()}
}

// Parse normalizes the document, runs the pattern table and maps the
// raw captures to the canonical schema. It never fails; fields whose
// pattern does not match are omitted from the result.
func (p *Parser) Parse(text string) *models.ExtractionResult {
	normalized := parsers.NormalizeText(text)
	raw := p.extractRaw(normalized)
	entities := mapToSchema(raw)

	return &models.ExtractionResult{
		DocumentType:        "structured_financial_document",
		ExtractionTimestamp: time.Now().Format(time.RFC3339),
		Entities:            entities,
		ConfidenceScore:     ConfidenceScore(entities),
	}
}

// extractRaw applies every pattern against the whole normalized text.
// Multi-group patterns produce an ordered []string of cleaned captures;
// single-group patterns a cleaned string. A label that matched with an
// empty optional value group is stored as "" so the next-line special
// case below can resolve it.
func (p *Parser) extractRaw(text string) map[string]any {
	raw := make(map[string]any)
	for _, fp := range p.patterns {
		m := fp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		groups := m[1:]
		if len(groups) > 1 {
			cleaned := make([]string, len(groups))
			for i, g := range groups {
				cleaned[i] = parsers.CleanValue(g)
			}
			raw[fp.key] = cleaned
			continue
		}
		raw[fp.key] = parsers.CleanValue(groups[0])
	}

	p.resolveInterestPayments(text, raw)
	return raw
}

var interestLabelRe = regexp.MustCompile(`(?i)^Interest Payments`)

// resolveInterestPayments handles the label-alone-on-a-line case: when
// "Interest Payments" carries no inline value, the value is taken from
// the next non-empty line of the document.
func (p *Parser) resolveInterestPayments(text string, raw map[string]any) {
	v, ok := raw["interest_payments"].(string)
	if !ok || v != "" {
		return
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if interestLabelRe.MatchString(line) {
			if i+1 < len(lines) {
				raw["interest_payments"] = parsers.CleanValue(lines[i+1])
			}
			return
		}
	}
}
