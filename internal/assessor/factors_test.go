package assessor_test

import (
	"testing"

	"github.com/karandeol-26/VeriCura/internal/assessor"
	"github.com/karandeol-26/VeriCura/internal/model"
)

func TestExplainFactors(t *testing.T) {
	t.Parallel()

	r := &model.Report{
		URL: "https://blog.example.com/flu",
		Issues: []model.Issue{
			{ID: model.IssueNoAuthor, Title: "No medical author/reviewer"},
			{Title: "Outdated Guidance"},
			{},
		},
	}
	got := assessor.ExplainFactors(r)
	if len(got) != 4 {
		t.Fatalf("expected 4 factors, got %d", len(got))
	}
	if got[0].ID != string(model.IssueUnrecognizedDomain) || got[0].Positive {
		t.Errorf("first factor = %+v, want negative unrecognized-domain", got[0])
	}
	if got[1].ID != "no-author" {
		t.Errorf("factor[1].ID = %q", got[1].ID)
	}
	if got[2].ID != "outdated-guidance" {
		t.Errorf("factor[2].ID = %q, want title slug", got[2].ID)
	}
	if got[3].ID != "issue-3" {
		t.Errorf("factor[3].ID = %q, want positional placeholder", got[3].ID)
	}
}

func TestExplainFactors_TrustedDomain(t *testing.T) {
	t.Parallel()
	got := assessor.ExplainFactors(&model.Report{URL: "https://www.cdc.gov/flu"})
	if len(got) != 1 || got[0].ID != string(model.IssueTrustedDomain) || !got[0].Positive {
		t.Fatalf("unexpected factors: %+v", got)
	}
}

func TestExplainFactors_Nil(t *testing.T) {
	t.Parallel()
	if got := assessor.ExplainFactors(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
