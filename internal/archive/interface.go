package archive

import (
	"context"

	"github.com/mangyomi/installer/internal/types"
)

// ExtractorInterface defines payload extraction.
// This allows substituting the extractor in tests.
type ExtractorInterface interface {
	// Extract unpacks archivePath of the given kind into destDir
	Extract(ctx context.Context, archivePath, destDir string, kind types.ArchiveKind) error
}

// Ensure Extractor implements ExtractorInterface
var _ ExtractorInterface = (*Extractor)(nil)
