package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Entities holds the structured values lifted from free text. A kind that is
// absent from the text is left nil, never an empty slice.
type Entities struct {
	Amounts      []float64 `json:"amounts,omitempty"`
	Dates        []string  `json:"dates,omitempty"`
	PhoneNumbers []string  `json:"phone_numbers,omitempty"`
}

func (e Entities) IsEmpty() bool {
	return len(e.Amounts) == 0 && len(e.Dates) == 0 && len(e.PhoneNumbers) == 0
}

// ToMap renders the entities as a metadata map, one key per present kind.
func (e Entities) ToMap() map[string]interface{} {
	if e.IsEmpty() {
		return nil
	}
	out := map[string]interface{}{}
	if len(e.Amounts) > 0 {
		out["amounts"] = e.Amounts
	}
	if len(e.Dates) > 0 {
		out["dates"] = e.Dates
	}
	if len(e.PhoneNumbers) > 0 {
		out["phone_numbers"] = e.PhoneNumbers
	}
	return out
}

var (
	// A currency marker makes any number an amount, even a small one like
	// "₹500". Without a marker the number needs thousands separators, a
	// two-decimal fraction, or four-plus digits to count as money.
	amountPattern = regexp.MustCompile(`(?:₹|rs\.?\s*|inr\s*)(\d+(?:,\d{2,3})*(?:\.\d{1,2})?)|(\d{1,3}(?:,\d{2,3})+(?:\.\d{2})?|\d+\.\d{2}|\d{4,})`)

	numericDatePattern = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`)

	relativeDateWords = []string{
		"tomorrow", "next week", "next month",
		"कल", "अगले सप्ताह", "अगले महीने",
		"kal", "agle hafte", "parso", "udhan", "repu",
	}

	// Indian mobile numbers: optional +91/91/0 prefix, then 6-9 and nine digits.
	phonePattern = regexp.MustCompile(`(?:\+91|91|0)?[-\s]?([6-9]\d{9})\b`)
)

// ExtractEntities pulls amounts, dates, and phone numbers out of the text.
// Pure function, independent of the detected intent.
func ExtractEntities(text string) Entities {
	var out Entities
	lower := strings.ToLower(text)

	phoneDigits := map[string]bool{}
	for _, m := range phonePattern.FindAllStringSubmatch(text, -1) {
		digits := m[1]
		if !phoneDigits[digits] {
			phoneDigits[digits] = true
			out.PhoneNumbers = append(out.PhoneNumbers, digits)
		}
	}

	// Numeric dates would otherwise be misread as amounts (e.g. "2026").
	amountSource := numericDatePattern.ReplaceAllString(lower, " ")
	for _, m := range amountPattern.FindAllStringSubmatch(amountSource, -1) {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		raw = strings.ReplaceAll(raw, ",", "")
		// A bare 10-digit run starting 6-9 is a phone number, not money.
		if len(raw) == 10 && phoneDigits[raw] {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			out.Amounts = append(out.Amounts, v)
		}
	}

	out.Dates = append(out.Dates, numericDatePattern.FindAllString(text, -1)...)
	for _, w := range relativeDateWords {
		if strings.Contains(lower, w) {
			out.Dates = append(out.Dates, w)
		}
	}

	return out
}
