package dataset

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"ddlint/internal/dict"
)

// Inference trials run in a fixed order: integer, number, then the
// dictionary-declared date/datetime shape, falling back to string.

var (
	dateYMDRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateMDYRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	dateDMYRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`)
	timeRe    = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// IsInt reports whether the value parses as a base-10 integer.
// Leading/trailing whitespace is tolerated; decimals are not, and
// zero-padded values like "007" stay integers.
func IsInt(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// IsNumber reports whether the value parses as a number.
func IsNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := cast.ToFloat64E(s)
	return err == nil
}

// MatchesValidation reports whether a raw value satisfies the declared
// validation shape. Unknown validations match everything (the engine only
// flags what it can positively classify).
func MatchesValidation(v string, val dict.Validation) bool {
	v = strings.TrimSpace(v)
	switch val {
	case dict.ValidationInteger:
		return IsInt(v)
	case dict.ValidationNumber:
		return IsNumber(v)
	case dict.ValidationDateYMD:
		return dateYMDRe.MatchString(v)
	case dict.ValidationDateMDY:
		return dateMDYRe.MatchString(v)
	case dict.ValidationDateDMY:
		return dateDMYRe.MatchString(v)
	case dict.ValidationDatetimeYMD:
		return matchDatetime(v, dateYMDRe)
	case dict.ValidationDatetimeMDY:
		return matchDatetime(v, dateMDYRe)
	case dict.ValidationDatetimeDMY:
		return matchDatetime(v, dateDMYRe)
	}
	return true
}

func matchDatetime(v string, dateRe *regexp.Regexp) bool {
	datePart, timePart, ok := strings.Cut(v, " ")
	if !ok {
		return false
	}
	return dateRe.MatchString(datePart) && timeRe.MatchString(timePart)
}

// GuessDateFormat classifies a value's apparent date shape, used to name
// the observed format in type-mismatch findings.
func GuessDateFormat(v string) string {
	v = strings.TrimSpace(v)
	switch {
	case dateYMDRe.MatchString(v):
		return "date_ymd"
	case dateMDYRe.MatchString(v):
		return "date_mdy"
	case dateDMYRe.MatchString(v):
		return "date_dmy"
	}
	return "string"
}

// SuccessRatio returns the fraction of values satisfying pred, and the
// failing values in encounter order.
func SuccessRatio(values []string, pred func(string) bool) (float64, []string) {
	if len(values) == 0 {
		return 1, nil
	}
	ok := 0
	var failing []string
	for _, v := range values {
		if pred(v) {
			ok++
		} else {
			failing = append(failing, v)
		}
	}
	return float64(ok) / float64(len(values)), failing
}
