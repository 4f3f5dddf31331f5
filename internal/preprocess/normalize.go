package preprocess

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"curator/internal/fileutil"
	"curator/internal/services"
)

// Normalizer rewrites messy download filenames: Unicode NFC form, no control
// characters, no leading or trailing spaces or dots. Everything else in the
// name, including browser copy suffixes like " (1)", is left alone.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Name() string { return "normalize" }

func (n *Normalizer) Applies(path string) bool {
	base := filepath.Base(path)
	return cleanName(base) != base
}

func (n *Normalizer) Transform(ctx context.Context, path string) (string, error) {
	dir := filepath.Dir(path)
	cleaned := cleanName(filepath.Base(path))
	if cleaned == "" || cleaned == filepath.Base(path) {
		return path, nil
	}

	target, err := claimRename(dir, cleaned)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "preprocess", "normalize", "Failed to claim normalized filename", err)
	}
	if err := renameOnto(path, target); err != nil {
		return "", services.Wrap(services.ErrTransient, "preprocess", "normalize", "Failed to rename file", err)
	}
	return target, nil
}

// claimRename reserves a free name for cleaned inside dir, suffixing with
// " (N)" when the cleaned name is already taken.
func claimRename(dir, cleaned string) (string, error) {
	ext := filepath.Ext(cleaned)
	stem := strings.TrimSuffix(cleaned, ext)
	const maxAttempts = 100
	for attempt := 0; attempt < maxAttempts; attempt++ {
		name := cleaned
		if attempt > 0 {
			name = fmt.Sprintf("%s (%d)%s", stem, attempt, ext)
		}
		candidate := filepath.Join(dir, name)
		err := fileutil.ClaimPath(candidate)
		if err == nil {
			return candidate, nil
		}
		if !fileutil.IsExist(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("no free name for %q after %d attempts", cleaned, 100)
}

// renameOnto replaces the claimed placeholder at target with src. The
// placeholder is removed when the rename fails so no empty file lingers.
func renameOnto(src, target string) error {
	if err := os.Rename(src, target); err != nil {
		_ = os.Remove(target)
		return err
	}
	return nil
}

func cleanName(base string) string {
	cleaned := norm.NFC.String(base)
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, cleaned)
	cleaned = strings.Trim(cleaned, " .")
	if cleaned == "" {
		return base
	}
	return cleaned
}
