// Package domains holds the static lists that drive the heuristic
// credibility checks: institution and source domains, topic keywords and
// phrase lists. Lookups are case-insensitive substring or host-suffix checks.
package domains

import (
	"regexp"
	"strings"

	"github.com/karandeol-26/VeriCura/internal/model"
	"github.com/karandeol-26/VeriCura/internal/utils"
)

// AlwaysCredible institutions score 95 outright and can never be pushed
// below 95 by deep analysis. Matched as the hostname or any subdomain of it.
var AlwaysCredible = []string{
	"harvard.edu",
	"health.harvard.edu",
	"stanford.edu",
	"mayoclinic.org",
	"nih.gov",
	"medlineplus.gov",
	"cdc.gov",
	"who.int",
	"clevelandclinic.org",
	"hopkinsmedicine.org",
}

// TrustedSources are matched as substrings of outbound link hostnames.
var TrustedSources = []string{
	"nih.gov",
	"cdc.gov",
	"who.int",
	"mayoclinic.org",
	"medlineplus.gov",
	"fda.gov",
	"jamanetwork.com",
	"pubmed.ncbi.nlm.nih.gov",
}

// HealthDomains mark a page as health content by URL alone.
var HealthDomains = []string{
	"nih.gov",
	"cdc.gov",
	"who.int",
	"mayoclinic.org",
	"medlineplus.gov",
	"health.harvard.edu",
	"clevelandclinic.org",
}

// HealthKeywords mark a page as health content by its text.
var HealthKeywords = []string{
	"symptom",
	"treatment",
	"therapy",
	"disease",
	"disorder",
	"nutrition",
	"vitamin",
	"condition",
	"health",
	"medical",
	"clinical",
	"diagnosis",
	"dose",
	"side effect",
	"cdc",
	"nih",
	"mayo clinic",
	"vaccine",
	"mental health",
	"depression",
	"anxiety",
}

// FactorTrusted are the domains shown as "Trusted medical source" in the
// always-present domain factor. Matched as substrings of the page URL.
var FactorTrusted = []string{
	"harvard.edu",
	"health.harvard.edu",
	"nih.gov",
	"cdc.gov",
	"who.int",
	"mayoclinic.org",
	"medlineplus.gov",
}

// RiskyPhrases are sensational or unverified claims.
var RiskyPhrases = []string{
	"miracle cure",
	"detox",
	"flush toxins",
	"cure cancer",
	"reverse diabetes",
	"one weird trick",
	"instantly",
	"secret remedy",
	"ancient remedy",
	"doctors don't want you to know",
}

// AuthorMarkers in the text count as an author or reviewer credit.
var AuthorMarkers = []string{
	"medically reviewed by",
	"reviewed by",
	"written by ",
}

// Disclaimers earn a small bonus when present.
var Disclaimers = []string{
	"consult your doctor",
	"talk to your doctor",
	"not a substitute for professional medical advice",
}

// BadAuthorPhrases are never accepted as author names.
var BadAuthorPhrases = []string{
	"your genes",
	"genes",
	"genetic factors",
}

// CommercialPattern counts shopping-intent phrases. The alternatives are
// matched without a leading word boundary, so "buy " also fires inside
// words such as "ebuy ".
var CommercialPattern = regexp.MustCompile(`buy |order now|add to cart|shop now|subscribe`)

// FallbackEvidence is shown when deep analysis suggests no reading.
var FallbackEvidence = []model.EvidenceLink{
	{Name: "CDC – Health Topics", URL: "https://www.cdc.gov/health-topics.html"},
	{Name: "NIH – Health Information", URL: "https://www.nih.gov/health-information"},
	{Name: "Mayo Clinic – Patient Care & Health Info", URL: "https://www.mayoclinic.org/patient-care-and-health-information"},
}

// IsAlwaysCredible reports whether host is, or is a subdomain of, an
// always-credible institution.
func IsAlwaysCredible(host string) bool {
	for _, d := range AlwaysCredible {
		if utils.HostMatches(host, d) {
			return true
		}
	}
	return false
}

// IsAlwaysCredibleURL is IsAlwaysCredible applied to the host of rawURL.
func IsAlwaysCredibleURL(rawURL string) bool {
	return IsAlwaysCredible(utils.Hostname(rawURL))
}

// IsTrustedSourceHost reports whether a link host contains a trusted
// source domain.
func IsTrustedSourceHost(host string) bool {
	return ContainsAny(strings.ToLower(host), TrustedSources)
}

// IsFactorTrustedURL reports whether the page URL mentions a trusted domain.
func IsFactorTrustedURL(rawURL string) bool {
	return ContainsAny(strings.ToLower(rawURL), FactorTrusted)
}

// ContainsAny reports whether s contains any of the needles.
func ContainsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// MatchAll returns the needles found in s, in list order.
func MatchAll(s string, needles []string) []string {
	var out []string
	for _, n := range needles {
		if strings.Contains(s, n) {
			out = append(out, n)
		}
	}
	return out
}

// IsBadAuthor reports whether name contains a known non-person phrase.
func IsBadAuthor(name string) bool {
	return ContainsAny(strings.ToLower(name), BadAuthorPhrases)
}
