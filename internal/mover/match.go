package mover

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"curator/internal/config"
)

// Matcher picks an existing subfolder of a category root whose name is
// similar enough to a file's stem. When nothing clears the threshold the
// category root itself is used.
type Matcher struct {
	enabled   bool
	threshold float64
	excluded  map[string]struct{}
}

func NewMatcher(cfg config.Matcher) *Matcher {
	excluded := make(map[string]struct{}, len(cfg.ExcludedFolders))
	for _, name := range cfg.ExcludedFolders {
		excluded[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	return &Matcher{
		enabled:   cfg.Enabled,
		threshold: cfg.SimilarityThreshold,
		excluded:  excluded,
	}
}

// Match returns the destination directory for a file named base under root.
// The best-scoring non-excluded subfolder at or above the threshold wins;
// otherwise root is returned unchanged.
func (m *Matcher) Match(root, base string) string {
	if m == nil || !m.enabled {
		return root
	}
	stemTokens := tokenize(strings.TrimSuffix(base, filepath.Ext(base)))
	if len(stemTokens) == 0 {
		return root
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return root
	}

	best := root
	bestScore := m.threshold
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, skip := m.excluded[strings.ToLower(name)]; skip {
			continue
		}
		score := similarity(stemTokens, tokenize(name))
		if score >= bestScore {
			best = filepath.Join(root, name)
			bestScore = score
		}
	}
	return best
}

// tokenize lowercases and splits on every non-alphanumeric rune.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// similarity is the Dice coefficient over token sets: twice the overlap
// divided by the combined set sizes, in [0, 1].
func similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}
	overlap := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			overlap++
		}
	}
	return 2 * float64(overlap) / float64(len(setA)+len(setB))
}
