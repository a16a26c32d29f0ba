package assessor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karandeol-26/VeriCura/internal/authors"
	"github.com/karandeol-26/VeriCura/internal/domains"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
	"github.com/karandeol-26/VeriCura/internal/utils"
)

// Score adjustments applied on top of BaseScore.
const (
	BaseScore           = 50
	AlwaysCredibleScore = 95

	TrustedSourceBonus  = 20
	AuthorBonus         = 8
	SensationalPenalty  = 15
	CommercialPenalty   = 10
	DisclaimerBonus     = 5
	CommercialThreshold = 2
)

// HeuristicsAssessor scores pages with flat keyword, domain and pattern
// checks. It is stateless and safe for concurrent use.
type HeuristicsAssessor struct {
	cfg    *Config
	logger logging.Logger
}

// NewHeuristicsAssessor constructs a heuristics-based assessor.
func NewHeuristicsAssessor(cfg *Config, logger logging.Logger) (*HeuristicsAssessor, error) {
	if cfg == nil {
		return nil, ErrNilConfig()
	}
	if logger == nil {
		return nil, errors.New("assessor: nil logger; please pass a valid logging.Logger")
	}

	l := logger.With(logging.Field{Key: "component", Value: "heuristics-assessor"})
	l.Debug("heuristics assessor constructed", logging.Field{Key: "scoring_version", Value: cfg.ScoringVersion})

	return &HeuristicsAssessor{
		cfg:    cfg,
		logger: l,
	}, nil
}

// IsHealthContent reports whether the page URL is on a health domain or the
// text mentions a health topic.
func IsHealthContent(text, rawURL string) bool {
	if domains.ContainsAny(strings.ToLower(rawURL), domains.HealthDomains) {
		return true
	}
	return domains.ContainsAny(strings.ToLower(text), domains.HealthKeywords)
}

// Classify scores the snapshot. Pages on always-credible institutions get
// AlwaysCredibleScore with no issues; everything else starts at BaseScore
// and collects independent adjustments, clamped to [0,100].
func (h *HeuristicsAssessor) Classify(ctx context.Context, snap *model.PageSnapshot) (*model.Report, error) {
	if snap == nil {
		return nil, errors.New("assessor: nil snapshot")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !IsHealthContent(snap.Text, snap.URL) {
		h.logger.Info("page is not health content", logging.Field{Key: "url", Value: snap.URL})
		return nil, ErrNotHealthContent
	}

	report := &model.Report{
		ID:             uuid.New().String(),
		URL:            snap.URL,
		Issues:         []model.Issue{},
		AuthorNames:    authors.Extract(snap.Text, snap.Meta),
		ScoringVersion: h.cfg.ScoringVersion,
		CreatedAt:      time.Now().UTC(),
	}

	if domains.IsAlwaysCredibleURL(snap.URL) {
		report.SetScore(AlwaysCredibleScore)
		h.logger.Info("always-credible institution",
			logging.Field{Key: "url", Value: snap.URL},
			logging.Field{Key: "score", Value: report.Score})
		return report, nil
	}

	lower := strings.ToLower(snap.Text)
	score := BaseScore

	if hasTrustedLink(snap.Links) {
		score += TrustedSourceBonus
	} else {
		report.Issues = append(report.Issues, model.Issue{
			ID:          model.IssueNoTrustedSources,
			Title:       "No trusted medical sources found",
			Description: "We didn't detect links to CDC, NIH, WHO, or Mayo Clinic.",
		})
	}

	if strings.TrimSpace(snap.Meta.Author) != "" || domains.ContainsAny(lower, domains.AuthorMarkers) {
		score += AuthorBonus
	} else {
		report.Issues = append(report.Issues, model.Issue{
			ID:          model.IssueNoAuthor,
			Title:       "No medical author/reviewer",
			Description: "Credible health pages usually list who wrote or reviewed it.",
		})
	}

	if risky := domains.MatchAll(lower, domains.RiskyPhrases); len(risky) > 0 {
		score -= SensationalPenalty
		report.Issues = append(report.Issues, model.Issue{
			ID:          model.IssueSensational,
			Title:       "Sensational or unverified language",
			Description: "Found: " + strings.Join(risky, ", "),
		})
	}

	if n := len(domains.CommercialPattern.FindAllStringIndex(lower, -1)); n > CommercialThreshold {
		score -= CommercialPenalty
		report.Issues = append(report.Issues, model.Issue{
			ID:          model.IssueCommercialBias,
			Title:       "Possible commercial bias",
			Description: "This page mixes health advice with product links.",
		})
	}

	if domains.ContainsAny(lower, domains.Disclaimers) {
		score += DisclaimerBonus
	}

	report.SetScore(score)

	h.logger.Info("classified page",
		logging.Field{Key: "url", Value: snap.URL},
		logging.Field{Key: "score", Value: report.Score},
		logging.Field{Key: "issues", Value: len(report.Issues)})

	return report, nil
}

// hasTrustedLink skips links without a parseable host.
func hasTrustedLink(links []string) bool {
	for _, l := range links {
		if !strings.Contains(l, "://") {
			continue
		}
		if domains.IsTrustedSourceHost(utils.Hostname(l)) {
			return true
		}
	}
	return false
}

// Close is a no-op; the assessor holds no resources.
func (h *HeuristicsAssessor) Close() error {
	h.logger.Debug("heuristics-assessor: closed")
	return nil
}

// ErrNilConfig returns a small typed error for missing config.
func ErrNilConfig() error {
	return errors.New("assessor: nil config")
}
