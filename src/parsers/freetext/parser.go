// backend/src/parsers/freetext/parser.go
package freetext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/username/dealparse/backend/src/models"
	"github.com/username/dealparse/backend/src/parsers"
)

var (
	isinRe            = regexp.MustCompile(`\b([A-Z]{2}[A-Z0-9]{9}[0-9])\b`)
	notionalPhraseRe  = regexp.MustCompile(`(?i)\b([A-Z]{3})?\s*([0-9]+(?:\.[0-9]+)?)\s*(mio|million|mn|bn|billion)\b`)
	paymentFreqRe     = regexp.MustCompile(`(?i)\b(Quarterly|Monthly|Semi[- ]?annual|Semiannual|Annually|Annual|Bi[- ]?weekly|Weekly)\b`)
	couponSpreadRe    = regexp.MustCompile(`(?i)\b([a-z]{3,5}\s*\+\s*\d+\s*bps)\b`)
	slashDateRe       = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4})\b`)
	tickerFloatRe     = regexp.MustCompile(`\b([A-Z0-9]{3,})\s+FLOAT\b`)
	underlyingLabelRe = regexp.MustCompile(`(?i)Underlying\s*[:\-]\s*([^\n\r]+)`)
	counterpartyRe    = regexp.MustCompile(`\b(BANK\s+[A-Z]+)\b`)
	whitespaceRe      = regexp.MustCompile(`\s+`)
)

// Parser applies heuristic finance rules to unlabeled free text. Each
// rule is independent and best-effort: a rule that does not match simply
// omits its field.
type Parser struct{}

// NewParser creates a free-text rule parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse runs every rule over the raw text and returns the sparse entity
// map. It never fails.
func (p *Parser) Parse(text string) map[string]any {
	entities := make(map[string]any)

	if m := isinRe.FindStringSubmatch(text); m != nil {
		entities["ISIN"] = m[1]
	}

	if m := notionalPhraseRe.FindStringSubmatch(text); m != nil {
		if amount, err := strconv.ParseFloat(m[2], 64); err == nil {
			mv := &models.MoneyValue{Amount: amount, Currency: strings.ToUpper(m[1])}
			switch strings.ToLower(m[3]) {
			case "mio", "million", "mn":
				mv.Unit = "million"
			default:
				mv.Unit = "billion"
			}
			entities["Notional"] = mv
		}
	}

	if m := paymentFreqRe.FindStringSubmatch(text); m != nil {
		entities["PaymentFrequency"] = capitalize(m[1])
	}

	if m := couponSpreadRe.FindStringSubmatch(text); m != nil {
		entities["Coupon/Spread"] = whitespaceRe.ReplaceAllString(m[1], "")
	}

	if m := slashDateRe.FindStringSubmatch(text); m != nil {
		entities["Date"] = parsers.NormalizeDate(m[1])
	}

	// An explicit "TICKER FLOAT" phrase outranks the labeled form.
	if m := tickerFloatRe.FindStringSubmatch(text); m != nil {
		entities["Underlying"] = m[1]
	} else if m := underlyingLabelRe.FindStringSubmatch(text); m != nil {
		entities["Underlying"] = strings.TrimSpace(m[1])
	}

	if m := counterpartyRe.FindStringSubmatch(text); m != nil {
		entities["Counterparty"] = m[1]
	}

	return entities
}

// capitalize normalizes a matched vocabulary word to capitalized form
// ("semi-annual" -> "Semi-annual").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
