package scrape

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Field coercions never fail: scraped cells are frequently blank ("--",
// "除外" and friends) and a bad value is a data-quality signal, not a
// reason to abort the row.

func atoiPtr(s string) *int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		if s != "" {
			zap.L().Debug("unparseable int field", zap.String("value", s))
		}
		return nil
	}
	return &n
}

func atofPtr(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if s != "" {
			zap.L().Debug("unparseable float field", zap.String("value", s))
		}
		return nil
	}
	return &f
}

// datePtr parses the YYYY/MM/DD form used on horse history rows.
func datePtr(s string) *time.Time {
	t, err := time.Parse("2006/01/02", strings.TrimSpace(s))
	if err != nil {
		if strings.TrimSpace(s) != "" {
			zap.L().Debug("unparseable date field", zap.String("value", s))
		}
		return nil
	}
	return &t
}

var digitsRe = regexp.MustCompile(`\d+`)

// parseSexAge splits a display string like "牡3" into sex and age.
func parseSexAge(s string) (sex *string, age *int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	r := []rune(s)
	sx := string(r[0])
	sex = &sx
	if m := digitsRe.FindString(s); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			age = &n
		}
	}
	return sex, age
}

var horseWeightRe = regexp.MustCompile(`^(\d+)(?:\(([+-]?\d+)\))?$`)

// parseHorseWeight splits a body-weight display like "482(+4)" into the
// weight and its delta. Unweighed placeholders ("計不", "--") yield nils.
func parseHorseWeight(s string) (weight, diff *int) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "-") == "" {
		return nil, nil
	}
	m := horseWeightRe.FindStringSubmatch(s)
	if m == nil {
		return nil, nil
	}
	if n, err := strconv.Atoi(m[1]); err == nil {
		weight = &n
	}
	if m[2] != "" {
		if n, err := strconv.Atoi(m[2]); err == nil {
			diff = &n
		}
	}
	return weight, diff
}
