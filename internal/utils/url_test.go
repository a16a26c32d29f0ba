package utils_test

import (
	"net/url"
	"testing"

	"github.com/karandeol-26/VeriCura/internal/utils"
)

func TestHostname(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"https://WWW.NIH.gov/health":  "www.nih.gov",
		"http://example.com:8080/a":   "example.com",
		"mayoclinic.org":              "mayoclinic.org",
		"  https://who.int  ":         "who.int",
		"https://例え.テスト/":             "xn--r8jz45g.xn--zckzah",
		"not a url at all":            "not a url at all",
	}
	for in, want := range cases {
		if got := utils.Hostname(in); got != want {
			t.Errorf("Hostname(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHostMatches(t *testing.T) {
	t.Parallel()
	cases := []struct {
		host, domain string
		want         bool
	}{
		{"nih.gov", "nih.gov", true},
		{"www.nih.gov", "nih.gov", true},
		{"pubmed.ncbi.nlm.nih.gov", "nih.gov", true},
		{"fakenih.gov", "nih.gov", false},
		{"nih.gov.evil.com", "nih.gov", false},
		{"WWW.MayoClinic.org", "mayoclinic.org", true},
	}
	for _, tc := range cases {
		if got := utils.HostMatches(tc.host, tc.domain); got != tc.want {
			t.Errorf("HostMatches(%q, %q) = %v, want %v", tc.host, tc.domain, got, tc.want)
		}
	}
}

func TestResolveReference(t *testing.T) {
	t.Parallel()
	base, _ := url.Parse("https://example.com/articles/flu")
	cases := []struct {
		href string
		want string
		ok   bool
	}{
		{"https://www.cdc.gov/flu", "https://www.cdc.gov/flu", true},
		{"/about", "https://example.com/about", true},
		{"vaccines", "https://example.com/articles/vaccines", true},
		{"mailto:editor@example.com", "", false},
		{"javascript:void(0)", "", false},
	}
	for _, tc := range cases {
		got, ok := utils.ResolveReference(base, tc.href)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ResolveReference(%q) = %q, %v; want %q, %v", tc.href, got, ok, tc.want, tc.ok)
		}
	}
}
