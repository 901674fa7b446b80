package dataset

import (
	"testing"

	"ddlint/internal/dict"
)

func TestIsInt(t *testing.T) {
	for _, v := range []string{"0", "42", "-7", " 12 "} {
		if !IsInt(v) {
			t.Errorf("IsInt(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "4.5", "1e3", "12x", "abc"} {
		if IsInt(v) {
			t.Errorf("IsInt(%q) = true, want false", v)
		}
	}
}

func TestIsNumber(t *testing.T) {
	for _, v := range []string{"0", "4.5", "-0.1", "170.2"} {
		if !IsNumber(v) {
			t.Errorf("IsNumber(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "12x", "n/a"} {
		if IsNumber(v) {
			t.Errorf("IsNumber(%q) = true, want false", v)
		}
	}
}

func TestMatchesValidation_Dates(t *testing.T) {
	cases := []struct {
		v    string
		val  dict.Validation
		want bool
	}{
		{"2024-03-01", dict.ValidationDateYMD, true},
		{"3/1/2024", dict.ValidationDateYMD, false},
		{"3/1/2024", dict.ValidationDateMDY, true},
		{"01-03-2024", dict.ValidationDateDMY, true},
		{"2024-03-01 10:30", dict.ValidationDatetimeYMD, true},
		{"2024-03-01", dict.ValidationDatetimeYMD, false},
		{"anything", dict.ValidationEmail, true}, // unclassified shapes pass
	}
	for _, tc := range cases {
		if got := MatchesValidation(tc.v, tc.val); got != tc.want {
			t.Errorf("MatchesValidation(%q, %q) = %v, want %v", tc.v, tc.val, got, tc.want)
		}
	}
}

func TestGuessDateFormat(t *testing.T) {
	cases := map[string]string{
		"2024-03-01": "date_ymd",
		"3/1/2024":   "date_mdy",
		"1-3-2024":   "date_dmy",
		"hello":      "string",
	}
	for in, want := range cases {
		if got := GuessDateFormat(in); got != want {
			t.Errorf("GuessDateFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSuccessRatio(t *testing.T) {
	ratio, failing := SuccessRatio([]string{"1", "2", "x", "3"}, IsInt)
	if ratio != 0.75 {
		t.Errorf("ratio = %v, want 0.75", ratio)
	}
	if len(failing) != 1 || failing[0] != "x" {
		t.Errorf("failing = %v, want [x]", failing)
	}

	ratio, _ = SuccessRatio(nil, IsInt)
	if ratio != 1 {
		t.Errorf("empty ratio = %v, want 1 (vacuous)", ratio)
	}
}
