package domains_test

import (
	"testing"

	"github.com/karandeol-26/VeriCura/internal/domains"
)

func TestIsAlwaysCredible(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"www.nih.gov":          true,
		"nih.gov":              true,
		"www.mayoclinic.org":   true,
		"health.harvard.edu":   true,
		"www.healthline.com":   false,
		"nih.gov.example.com":  false,
		"notmayoclinic.org":    false,
	}
	for host, want := range cases {
		if got := domains.IsAlwaysCredible(host); got != want {
			t.Errorf("IsAlwaysCredible(%q) = %v, want %v", host, got, want)
		}
	}
}

func TestIsAlwaysCredibleURL(t *testing.T) {
	t.Parallel()
	if !domains.IsAlwaysCredibleURL("https://WWW.CDC.gov/flu/index.html") {
		t.Error("expected cdc.gov page to be always credible")
	}
	if domains.IsAlwaysCredibleURL("https://example.com/?ref=cdc.gov") {
		t.Error("query string must not make a page always credible")
	}
}

func TestIsTrustedSourceHost(t *testing.T) {
	t.Parallel()
	if !domains.IsTrustedSourceHost("pubmed.ncbi.nlm.nih.gov") {
		t.Error("pubmed host should be trusted")
	}
	if !domains.IsTrustedSourceHost("www.FDA.gov") {
		t.Error("fda host should be trusted")
	}
	if domains.IsTrustedSourceHost("www.wellnessblog.com") {
		t.Error("random blog host should not be trusted")
	}
}

func TestCommercialPattern(t *testing.T) {
	t.Parallel()
	text := "buy now! order now and add to cart. subscribe for more. buying is fun"
	got := domains.CommercialPattern.FindAllString(text, -1)
	if len(got) != 4 {
		t.Errorf("expected 4 matches, got %d: %v", len(got), got)
	}
}

func TestIsBadAuthor(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"Your Genes", "genes", "Genetic Factors and diet", "Some Genes"} {
		if !domains.IsBadAuthor(name) {
			t.Errorf("IsBadAuthor(%q) = false, want true", name)
		}
	}
	if domains.IsBadAuthor("Dr. Jane Smith") {
		t.Error("a person name must not be flagged")
	}
}

func TestMatchAll(t *testing.T) {
	t.Parallel()
	got := domains.MatchAll("this detox is a miracle cure", domains.RiskyPhrases)
	if len(got) != 2 || got[0] != "miracle cure" || got[1] != "detox" {
		t.Errorf("unexpected matches: %v", got)
	}
}
