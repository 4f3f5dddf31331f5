package classify

import (
	"fmt"
	"sort"
	"strings"
)

// Category is the coarse classification that selects a destination root.
type Category string

const (
	CategoryDocuments Category = "Documents"
	CategoryImages    Category = "Images"
	CategoryVideos    Category = "Videos"
	CategoryAudio     Category = "Audio"
	CategoryArchives  Category = "Archives"
	CategoryCode      Category = "Code"
	CategoryOther     Category = "Other"
)

// Categories lists every category in presentation order.
func Categories() []Category {
	return []Category{
		CategoryDocuments,
		CategoryImages,
		CategoryVideos,
		CategoryAudio,
		CategoryArchives,
		CategoryCode,
		CategoryOther,
	}
}

// categoryByLabel is the static type-label to category table. Labels are the
// lowercase format names the detector produces.
var categoryByLabel = map[string]Category{
	"pdf": CategoryDocuments, "doc": CategoryDocuments, "docx": CategoryDocuments,
	"txt": CategoryDocuments, "rtf": CategoryDocuments, "odt": CategoryDocuments,
	"xls": CategoryDocuments, "xlsx": CategoryDocuments, "ppt": CategoryDocuments,
	"pptx": CategoryDocuments, "csv": CategoryDocuments, "epub": CategoryDocuments,

	"png": CategoryImages, "jpeg": CategoryImages, "gif": CategoryImages,
	"bmp": CategoryImages, "svg": CategoryImages, "webp": CategoryImages,
	"ico": CategoryImages, "tiff": CategoryImages, "heic": CategoryImages,

	"mp4": CategoryVideos, "avi": CategoryVideos, "mkv": CategoryVideos,
	"mov": CategoryVideos, "wmv": CategoryVideos, "flv": CategoryVideos,
	"webm": CategoryVideos, "mpeg": CategoryVideos,

	"mp3": CategoryAudio, "wav": CategoryAudio, "flac": CategoryAudio,
	"aac": CategoryAudio, "ogg": CategoryAudio, "m4a": CategoryAudio,
	"wma": CategoryAudio, "opus": CategoryAudio,

	"zip": CategoryArchives, "rar": CategoryArchives, "7z": CategoryArchives,
	"tar": CategoryArchives, "gzip": CategoryArchives, "bzip2": CategoryArchives,
	"xz": CategoryArchives,

	"code": CategoryCode,
}

// Categorize maps a type label to its category. Pure and total: label casing
// is irrelevant and anything unmapped lands in Other.
func Categorize(label string) Category {
	if category, ok := categoryByLabel[strings.ToLower(strings.TrimSpace(label))]; ok {
		return category
	}
	return CategoryOther
}

// ValidateMapping confirms every label a detector can produce resolves to a
// declared category. Run once at startup; a label missing from the table is a
// programming error, not a runtime condition.
func ValidateMapping(labels []string) error {
	var missing []string
	for _, label := range labels {
		if _, ok := categoryByLabel[strings.ToLower(label)]; !ok {
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("type labels missing a category mapping: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Roots binds each category to its destination root directory.
type Roots map[Category]string

// NewRoots builds the category root table from the configured name-to-path
// map. Every category must have a root.
func NewRoots(configured map[string]string) (Roots, error) {
	roots := make(Roots, len(configured))
	for name, path := range configured {
		category := Category(name)
		switch category {
		case CategoryDocuments, CategoryImages, CategoryVideos, CategoryAudio,
			CategoryArchives, CategoryCode, CategoryOther:
		default:
			return nil, fmt.Errorf("unknown category %q in configuration", name)
		}
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("category %q has no destination root", name)
		}
		roots[category] = path
	}
	for _, category := range Categories() {
		if _, ok := roots[category]; !ok {
			return nil, fmt.Errorf("category %q has no destination root", category)
		}
	}
	return roots, nil
}

// Root returns the destination root for a category, falling back to the
// Other root for safety.
func (r Roots) Root(category Category) string {
	if root, ok := r[category]; ok {
		return root
	}
	return r[CategoryOther]
}
