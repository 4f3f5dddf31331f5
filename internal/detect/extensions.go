package detect

// extensionLabels maps a lowercase extension to the label used when no
// signature matched. Labels shared with the signature table keep the two
// detection paths converging on one category later.
var extensionLabels = map[string]string{
	// Documents
	"pdf": "pdf", "doc": "doc", "docx": "docx", "txt": "txt", "rtf": "rtf",
	"odt": "odt", "xls": "xls", "xlsx": "xlsx", "ppt": "ppt", "pptx": "pptx",
	"csv": "csv", "epub": "epub",

	// Images
	"jpg": "jpeg", "jpeg": "jpeg", "png": "png", "gif": "gif", "bmp": "bmp",
	"svg": "svg", "webp": "webp", "ico": "ico", "tiff": "tiff", "tif": "tiff",
	"heic": "heic", "heif": "heic",

	// Videos
	"mp4": "mp4", "avi": "avi", "mkv": "mkv", "mov": "mov", "wmv": "wmv",
	"flv": "flv", "webm": "webm", "m4v": "mp4", "mpg": "mpeg", "mpeg": "mpeg",

	// Audio
	"mp3": "mp3", "wav": "wav", "flac": "flac", "aac": "aac", "ogg": "ogg",
	"m4a": "m4a", "wma": "wma", "opus": "opus",

	// Archives
	"zip": "zip", "rar": "rar", "7z": "7z", "tar": "tar", "gz": "gzip",
	"bz2": "bzip2", "xz": "xz", "tgz": "gzip",

	// Code and markup
	"go": "code", "rs": "code", "py": "code", "js": "code", "ts": "code",
	"java": "code", "c": "code", "cpp": "code", "h": "code", "hpp": "code",
	"cs": "code", "rb": "code", "php": "code", "swift": "code", "kt": "code",
	"scala": "code", "r": "code", "m": "code", "sh": "code", "bash": "code",
	"zsh": "code", "fish": "code", "html": "code", "css": "code",
	"scss": "code", "sass": "code", "json": "code", "xml": "code",
	"yaml": "code", "yml": "code", "toml": "code", "sql": "code",
	"md": "code", "rst": "code", "tex": "code",
}

// ExtensionLabels returns every label the extension table can produce.
func ExtensionLabels() []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, label := range extensionLabels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}
