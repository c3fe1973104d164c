package scraper

import (
	"strconv"
	"strings"

	"youtube-fetcher/domain/model"
)

var viewMultipliers = []struct {
	suffix     string
	multiplier int64
}{
	{"k", 1_000},
	{"m", 1_000_000},
	{"b", 1_000_000_000},
}

// ParseViewCount converts a human-formatted view count into an exact integer.
// "1,234 views" -> 1234, "1.2M views" -> 1200000, "No views" -> 0. Unparsable
// text is an error so a bad record can be dropped without failing the batch.
func ParseViewCount(text string) (int64, error) {
	cleaned := strings.ToLower(text)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " views", "")
	cleaned = strings.ReplaceAll(cleaned, " view", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || cleaned == "no" {
		return 0, nil
	}

	for _, m := range viewMultipliers {
		if strings.HasSuffix(cleaned, m.suffix) {
			numbers := keepDigitsAndDots(strings.TrimSuffix(cleaned, m.suffix))
			value, err := strconv.ParseFloat(numbers, 64)
			if err != nil {
				return 0, &model.ParseError{Msg: "unparsable view count: " + text}
			}
			return int64(value * float64(m.multiplier)), nil
		}
	}

	numbers := keepDigits(cleaned)
	if numbers == "" {
		return 0, &model.ParseError{Msg: "unparsable view count: " + text}
	}
	value, err := strconv.ParseInt(numbers, 10, 64)
	if err != nil {
		return 0, &model.ParseError{Msg: "unparsable view count: " + text}
	}
	return value, nil
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepDigitsAndDots(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
