package assessor

import (
	"context"
	"errors"

	"github.com/karandeol-26/VeriCura/internal/model"
)

// ErrNotHealthContent is returned by Classify when the page does not look
// like health or medical content. It is an informational outcome, not a
// failure of the scan.
var ErrNotHealthContent = errors.New("assessor: not health content")

// Assessor is the minimal cross-package contract for scoring a page
// snapshot. The Assessor does NOT perform network I/O.
type Assessor interface {
	// Classify gates the snapshot on health content and scores it.
	// It returns ErrNotHealthContent for non-health pages.
	Classify(ctx context.Context, snap *model.PageSnapshot) (*model.Report, error)

	// Close releases any resources held by the assessor.
	Close() error
}
