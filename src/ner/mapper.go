// backend/src/ner/mapper.go
package ner

import (
	"regexp"
	"strings"

	"github.com/username/dealparse/backend/src/models"
	"github.com/username/dealparse/backend/src/parsers"
)

var tickerFloatRe = regexp.MustCompile(`\b([A-Z0-9]{3,})\s+FLOAT\b`)

// MapToSchema converts raw recognizer spans into the domain schema. The
// mapping rules run in a fixed order:
//
//  1. Counterparty <- the ORG span with the longest surface text
//     (first occurrence wins ties).
//  2. Date <- the first DATE span, date-normalized.
//  3. Notional <- the first MONEY span, money-normalized.
//  4. Underlying <- an explicit "TICKER FLOAT" match in the text, which
//     always overrides the recognizer; otherwise the first MISC/PRODUCT span.
func MapToSchema(spans []models.NEREntity, text string) map[string]any {
	var orgs, dates, money, products []models.NEREntity
	for _, span := range spans {
		switch span.EntityGroup {
		case "ORG":
			orgs = append(orgs, span)
		case "DATE":
			dates = append(dates, span)
		case "MONEY":
			money = append(money, span)
		case "MISC", "PRODUCT":
			products = append(products, span)
		}
	}

	entities := make(map[string]any)

	if len(orgs) > 0 {
		best := orgs[0]
		for _, org := range orgs[1:] {
			// Strictly longer keeps the first occurrence on ties.
			if len(org.Word) > len(best.Word) {
				best = org
			}
		}
		entities["Counterparty"] = strings.TrimSpace(best.Word)
	}

	if len(dates) > 0 {
		entities["Date"] = parsers.NormalizeDate(dates[0].Word)
	}

	if len(money) > 0 {
		if mv := parsers.ParseMoney(money[0].Word); mv != nil {
			entities["Notional"] = mv
		}
	}

	if m := tickerFloatRe.FindStringSubmatch(text); m != nil {
		entities["Underlying"] = m[1]
	} else if len(products) > 0 {
		entities["Underlying"] = products[0].Word
	}

	return entities
}
