package locator_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/karandeol-26/VeriCura/internal/locator"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a an the", nil},
		{"Vitamin-C cures COLDS!", []string{"vitamin", "cures", "colds"}},
		{"Sleep, sleep and SLEEP more", []string{"sleep", "more"}},
		{"covid19 vaccines\t2024", []string{"covid19", "vaccines", "2024"}},
		{"naïve café", nil},
	}
	for _, tc := range cases {
		got := locator.Normalize(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Normalize(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"No medical author/reviewer\nCredible health pages usually list who wrote or reviewed it.",
		"Found: flush toxins, secret remedy",
		"   MIXED case; punctuation... and 123456 numbers   ",
	}
	for _, in := range inputs {
		once := locator.Normalize(in)
		twice := locator.Normalize(strings.Join(once, " "))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Normalize not idempotent for %q: %v then %v", in, once, twice)
		}
	}
}

func TestMatchScore(t *testing.T) {
	t.Parallel()
	words := []string{"flush", "toxins", "secret", "remedy"}
	cases := []struct {
		name string
		text string
		want int
	}{
		{"empty text", "", 0},
		{"no overlap long", "Nothing relevant appears in this paragraph.", 0},
		{"no overlap short", "Hello", -1},
		{"two words long", "This secret recipe claims to flush everything.", 2},
		{"substring counts", "Detoxins and remedyish words are long enough here", 2},
		{"all words short", "flush toxins, secret remedy", 4},
		{"short penalty", "Secret remedy!", 1},
	}
	for _, tc := range cases {
		if got := locator.MatchScore(tc.text, words); got != tc.want {
			t.Errorf("%s: MatchScore(%q) = %d, want %d", tc.name, tc.text, got, tc.want)
		}
	}
}
