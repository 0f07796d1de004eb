package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	log "github.com/sirupsen/logrus"

	"github.com/mangyomi/installer/internal/types"
)

// entry is the format-independent view of one archive member
type entry struct {
	name  string
	mode  fs.FileMode
	isDir bool
	open  func() (io.ReadCloser, error)
}

// Extractor unpacks installer payloads
type Extractor struct{}

// NewExtractor creates a new payload extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks archivePath into destDir. Every entry is resolved against
// destDir first; an entry that would escape it aborts the whole extraction.
// Entries already written are left in place and the error is returned.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string, kind types.ArchiveKind) error {
	wrap := func(entryName string, err error) error {
		return &ExtractError{Archive: archivePath, Entry: entryName, Err: err}
	}

	root, err := filepath.Abs(destDir)
	if err != nil {
		return wrap("", fmt.Errorf("resolve destination: %w", err))
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return wrap("", fmt.Errorf("create destination: %w", err))
	}

	var (
		entries []entry
		closer  io.Closer
	)
	switch kind {
	case types.SevenZip:
		entries, closer, err = openSevenZip(archivePath)
	case types.Zip:
		entries, closer, err = openZip(archivePath)
	default:
		err = fmt.Errorf("unsupported archive kind %v", kind)
	}
	if err != nil {
		return wrap("", err)
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			log.Warnf("failed to close archive %s: %v", archivePath, cerr)
		}
	}()

	log.Infof("extracting %d %s entries from %s to %s", len(entries), kind, archivePath, root)

	for _, ent := range entries {
		if err := ctx.Err(); err != nil {
			return wrap("", err)
		}

		target, err := safeJoin(root, ent.name)
		if err != nil {
			return wrap(ent.name, err)
		}

		if ent.isDir {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return wrap(ent.name, err)
			}
			continue
		}

		if err := writeEntry(target, ent); err != nil {
			return wrap(ent.name, err)
		}
	}

	log.Infof("extraction of %s complete", archivePath)
	return nil
}

func openZip(archivePath string) ([]entry, io.Closer, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && r != nil) {
		return nil, nil, fmt.Errorf("open zip: %w", err)
	}
	// insecure names are still listed; safeJoin rejects them per entry

	entries := make([]entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, entry{
			name:  f.Name,
			mode:  f.Mode(),
			isDir: f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/"),
			open:  f.Open,
		})
	}
	return entries, r, nil
}

// openSevenZip lists the 7z members in archive order; reading them in that
// order lets the decoder stream through solid blocks once.
func openSevenZip(archivePath string) ([]entry, io.Closer, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open 7z: %w", err)
	}

	entries := make([]entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, entry{
			name:  f.Name,
			mode:  f.Mode(),
			isDir: f.FileInfo().IsDir(),
			open:  f.Open,
		})
	}
	return entries, r, nil
}

// safeJoin resolves an archive member name under root. Backslashes are
// treated as separators; absolute, drive-qualified and escaping names fail
// with ErrUnsafePath. Inner ".." segments that stay inside root are folded.
func safeJoin(root, name string) (string, error) {
	slashed := strings.ReplaceAll(name, `\`, "/")
	if slashed == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnsafePath)
	}
	if strings.HasPrefix(slashed, "/") || hasDriveLetter(slashed) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}

	cleaned := path.Clean(slashed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}

	target := filepath.Join(root, filepath.FromSlash(cleaned))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

func hasDriveLetter(name string) bool {
	if len(name) < 2 || name[1] != ':' {
		return false
	}
	c := name[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// writeEntry copies one member verbatim. Symlink members are written as
// regular files holding the link text, so no link can point outside root.
func writeEntry(target string, ent entry) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := ent.open()
	if err != nil {
		return fmt.Errorf("open entry: %w", err)
	}
	defer src.Close()

	perm := ent.mode.Perm()
	if perm&0o200 == 0 {
		// keep it owner-writable so a later update can overwrite it
		perm |= 0o600
	}

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return dst.Close()
}
