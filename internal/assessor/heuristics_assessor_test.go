package assessor_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/karandeol-26/VeriCura/internal/assessor"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
)

func newAssessor(t *testing.T) *assessor.HeuristicsAssessor {
	t.Helper()
	cfg := assessor.DefaultConfig()
	a, err := assessor.NewHeuristicsAssessor(&cfg, logging.NopLogger{})
	if err != nil {
		t.Fatalf("NewHeuristicsAssessor returned error: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func issueIDs(r *model.Report) []model.IssueID {
	ids := make([]model.IssueID, 0, len(r.Issues))
	for _, is := range r.Issues {
		ids = append(ids, is.ID)
	}
	return ids
}

func TestNewHeuristicsAssessor_NilArgs(t *testing.T) {
	t.Parallel()
	if _, err := assessor.NewHeuristicsAssessor(nil, logging.NopLogger{}); err == nil {
		t.Error("expected error for nil config")
	}
	cfg := assessor.DefaultConfig()
	if _, err := assessor.NewHeuristicsAssessor(&cfg, nil); err == nil {
		t.Error("expected error for nil logger")
	}
}

func TestClassify_NotHealthContent(t *testing.T) {
	t.Parallel()
	a := newAssessor(t)

	_, err := a.Classify(context.Background(), &model.PageSnapshot{
		Text: "Ten tips for a better sourdough loaf.",
		URL:  "https://bakery.example.com/sourdough",
	})
	if !errors.Is(err, assessor.ErrNotHealthContent) {
		t.Fatalf("expected ErrNotHealthContent, got %v", err)
	}
}

func TestClassify_HealthDomainPassesGateWithoutKeywords(t *testing.T) {
	t.Parallel()
	a := newAssessor(t)

	r, err := a.Classify(context.Background(), &model.PageSnapshot{
		Text: "Opening hours and parking.",
		URL:  "https://www.clevelandclinic.org/visit",
	})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if r == nil {
		t.Fatal("expected a report")
	}
}

func TestClassify_AlwaysCredibleShortCircuit(t *testing.T) {
	t.Parallel()
	a := newAssessor(t)

	r, err := a.Classify(context.Background(), &model.PageSnapshot{
		Text: "This miracle cure will detox you instantly. Buy now, buy more, buy today, shop now!",
		URL:  "https://www.mayoclinic.org/diseases-conditions/flu",
	})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if r.Score != 95 {
		t.Errorf("Score = %d, want 95", r.Score)
	}
	if len(r.Issues) != 0 {
		t.Errorf("expected no issues, got %v", issueIDs(r))
	}
	if r.AIAdjusted {
		t.Error("AIAdjusted must be false after classification")
	}
}

func TestClassify_TrustedLinkAndReviewer(t *testing.T) {
	t.Parallel()
	a := newAssessor(t)

	r, err := a.Classify(context.Background(), &model.PageSnapshot{
		Text:  "Flu symptoms and treatment. Medically reviewed by Dr. Jane Smith.",
		Links: []string{"https://www.nih.gov/flu", "https://shop.example.com/cart"},
		URL:   "https://www.wellness-daily.com/flu",
	})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if r.Score != 78 {
		t.Errorf("Score = %d, want 78", r.Score)
	}
	if len(r.Issues) != 0 {
		t.Errorf("expected no issues, got %v", issueIDs(r))
	}
	if r.Label() != model.LabelNeedsVerification {
		t.Errorf("Label = %q, want %q", r.Label(), model.LabelNeedsVerification)
	}
}

func TestClassify_CommercialNoSourcesNoAuthor(t *testing.T) {
	t.Parallel()
	a := newAssessor(t)

	r, err := a.Classify(context.Background(), &model.PageSnapshot{
		Text: "Vitamin guide. buy vitamin C, buy zinc, buy magnesium.",
		URL:  "https://supplements.example.com/guide",
	})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	want := []model.IssueID{
		model.IssueNoTrustedSources,
		model.IssueNoAuthor,
		model.IssueCommercialBias,
	}
	if got := issueIDs(r); !reflect.DeepEqual(got, want) {
		t.Errorf("issues = %v, want %v", got, want)
	}
	if r.Score != 40 {
		t.Errorf("Score = %d, want 40", r.Score)
	}
}

func TestClassify_Adjustments(t *testing.T) {
	t.Parallel()
	a := newAssessor(t)

	cases := []struct {
		name      string
		snap      model.PageSnapshot
		wantScore int
		wantIDs   []model.IssueID
	}{
		{
			name: "meta author counts as author",
			snap: model.PageSnapshot{
				Text: "Managing anxiety at work.",
				Meta: model.Meta{Author: "Sam Ortiz"},
				URL:  "https://blog.example.com/anxiety",
			},
			wantScore: 58,
			wantIDs:   []model.IssueID{model.IssueNoTrustedSources},
		},
		{
			name: "sensational language lists phrases",
			snap: model.PageSnapshot{
				Text: "This ancient remedy will reverse diabetes, a chronic condition. Written by Kim Park.",
				URL:  "https://blog.example.com/diabetes",
			},
			wantScore: 43,
			wantIDs:   []model.IssueID{model.IssueNoTrustedSources, model.IssueSensational},
		},
		{
			name: "disclaimer bonus",
			snap: model.PageSnapshot{
				Text:  "Depression treatment options. Talk to your doctor before changing a dose. Reviewed by Lee Chan.",
				Links: []string{"https://www.cdc.gov/mentalhealth"},
				URL:   "https://clinic.example.com/depression",
			},
			wantScore: 83,
			wantIDs:   []model.IssueID{},
		},
		{
			name: "two commercial matches do not count",
			snap: model.PageSnapshot{
				Text:  "Nutrition basics. Subscribe to our list or shop now. Written by Ana Ruiz.",
				Links: []string{"https://pubmed.ncbi.nlm.nih.gov/123"},
				URL:   "https://food.example.com/basics",
			},
			wantScore: 78,
			wantIDs:   []model.IssueID{},
		},
		{
			name: "relative and malformed links are ignored",
			snap: model.PageSnapshot{
				Text:  "Vaccine schedule. Written by Ana Ruiz.",
				Links: []string{"/nih.gov/page", "::bad::"},
				URL:   "https://kids.example.com/vaccines",
			},
			wantScore: 58,
			wantIDs:   []model.IssueID{model.IssueNoTrustedSources},
		},
		{
			name: "every penalty applies",
			snap: model.PageSnapshot{
				Text: "Miracle cure! buy buy buy buy buy order now add to cart shop now subscribe health",
				URL:  "https://spam.example.com/",
			},
			wantScore: 25,
			wantIDs: []model.IssueID{
				model.IssueNoTrustedSources,
				model.IssueNoAuthor,
				model.IssueSensational,
				model.IssueCommercialBias,
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, err := a.Classify(context.Background(), &tc.snap)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if r.Score != tc.wantScore {
				t.Errorf("Score = %d, want %d", r.Score, tc.wantScore)
			}
			if got := issueIDs(r); !reflect.DeepEqual(got, tc.wantIDs) {
				t.Errorf("issues = %v, want %v", got, tc.wantIDs)
			}
			if r.Score < 0 || r.Score > 100 {
				t.Errorf("score %d out of range", r.Score)
			}
		})
	}
}

func TestClassify_SensationalDescription(t *testing.T) {
	t.Parallel()
	a := newAssessor(t)

	r, err := a.Classify(context.Background(), &model.PageSnapshot{
		Text: "A secret remedy to flush toxins. Health tips.",
		URL:  "https://blog.example.com/",
	})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	for _, is := range r.Issues {
		if is.ID == model.IssueSensational {
			if is.Description != "Found: flush toxins, secret remedy" {
				t.Errorf("Description = %q", is.Description)
			}
			return
		}
	}
	t.Fatal("expected a sensational-language issue")
}

func TestClassify_AuthorNames(t *testing.T) {
	t.Parallel()
	a := newAssessor(t)

	r, err := a.Classify(context.Background(), &model.PageSnapshot{
		Text: "Heart disease is shaped by Your Genes. Reviewed by Omar Haddad.",
		Meta: model.Meta{Author: "Clinic Editorial Team"},
		URL:  "https://heart.example.com/",
	})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	want := []string{"Clinic Editorial Team", "Omar Haddad"}
	if !reflect.DeepEqual(r.AuthorNames, want) {
		t.Errorf("AuthorNames = %v, want %v", r.AuthorNames, want)
	}
}

func TestClassify_CanceledContext(t *testing.T) {
	t.Parallel()
	a := newAssessor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Classify(ctx, &model.PageSnapshot{Text: "health"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
