// backend/src/parsers/values.go
package parsers

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/username/dealparse/backend/src/models"
)

// dateLayouts is tried in order; the first layout that parses wins.
// M/D comes before D/M, so an ambiguous slash date resolves as US-style.
var dateLayouts = []string{
	"1/2/06",
	"1/2/2006",
	"2/1/2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02",
}

var dayMonthYearRe = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]+)\s+(\d{2,4})`)

// NormalizeDate converts a recognized date string to ISO-8601
// (YYYY-MM-DD). Input that parses under none of the known layouts is
// returned unchanged; an unparseable date is not an error. Two-digit
// years follow time.Parse's pivot exactly: 00-68 resolve to 20xx and
// 69-99 to 19xx.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if dt, err := time.Parse(layout, s); err == nil {
			return dt.Format("2006-01-02")
		}
	}

	// Fallback for "D Month YYYY" shapes with trailing text or a
	// two-digit year, which the strict layouts above reject.
	if m := dayMonthYearRe.FindStringSubmatch(s); m != nil {
		day, month, year := m[1], m[2], m[3]
		if len(year) == 2 {
			// Same pivot as time.Parse so every date shape resolves
			// two-digit years identically.
			if yy, err := strconv.Atoi(year); err == nil && yy >= 69 {
				year = "19" + year
			} else {
				year = "20" + year
			}
		}
		for _, layout := range []string{"2 January 2006", "2 Jan 2006"} {
			if dt, err := time.Parse(layout, day+" "+month+" "+year); err == nil {
				return dt.Format("2006-01-02")
			}
		}
	}
	return s
}

var (
	currencyCodeRe = regexp.MustCompile(`\b([A-Z]{3})\b`)
	numericRe      = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
	scaleWordRe    = regexp.MustCompile(`(?i)\b(thousand|k|million|mio|mn|mm|m|bn|billion|b)\b`)
)

// scaleUnits normalizes the scale vocabulary to its canonical word.
var scaleUnits = map[string]string{
	"thousand": "thousand",
	"k":        "thousand",
	"million":  "million",
	"mio":      "million",
	"mn":       "million",
	"m":        "million",
	"mm":       "million",
	"bn":       "billion",
	"b":        "billion",
	"billion":  "billion",
}

// ParseMoney extracts an optional 3-letter currency code, a numeric
// literal (thousands separators stripped) and an optional scale word
// from a monetary phrase. The amount stays the raw literal; the scale is
// reported in Unit and never multiplied in. Returns nil when no numeric
// literal is present.
func ParseMoney(s string) *models.MoneyValue {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")

	num := numericRe.FindString(cleaned)
	if num == "" {
		return nil
	}
	amount, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return nil
	}

	mv := &models.MoneyValue{Amount: amount}
	if m := currencyCodeRe.FindStringSubmatch(cleaned); m != nil {
		mv.Currency = m[1]
	}
	if m := scaleWordRe.FindStringSubmatch(cleaned); m != nil {
		mv.Unit = scaleUnits[strings.ToLower(m[1])]
	}
	return mv
}

var (
	percentValueRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	percentRefRe   = regexp.MustCompile(`(?i)of\s+([A-Za-z0-9_]+)`)
)

// ParseBarrier extracts a percentage value and, when the phrase contains
// "of <token>", the reference it is measured against. The reference
// capture is single-token only: "70% of Initial Price" yields reference
// "Initial". Returns ok=false when no percentage is present.
func ParseBarrier(s string) (value float64, reference string, ok bool) {
	m := percentValueRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, "", false
	}
	value, _ = strconv.ParseFloat(m[1], 64)
	if r := percentRefRe.FindStringSubmatch(s); r != nil {
		reference = r[1]
	}
	return value, reference, true
}
