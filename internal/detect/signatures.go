package detect

import "bytes"

// Signature binds a byte pattern at a fixed offset to a format label. A
// Probe refines container formats whose leading bytes are shared by several
// concrete types; ProbeLabels declares every label the probe can return so
// mapping completeness can be validated without running it.
type Signature struct {
	Label       string
	Offset      int
	Magic       []byte
	Probe       func(prefix []byte) (string, bool)
	ProbeLabels []string
}

// defaultSignatures returns the signature table in priority order. Container
// probes (ftyp, EBML, RIFF, ZIP) come before short or generic patterns so the
// most specific structural match always wins; the MP3 frame-sync pattern is
// last because two bytes match far too easily.
func defaultSignatures() []Signature {
	return []Signature{
		// ISO base media: brand decides between heic, m4a, mov, and mp4.
		{Offset: 4, Magic: []byte("ftyp"), Probe: probeFtyp, ProbeLabels: []string{"heic", "m4a", "mov", "mp4"}},
		// EBML header: matroska or webm doctype string follows shortly.
		{Offset: 0, Magic: []byte{0x1A, 0x45, 0xDF, 0xA3}, Probe: probeEBML, ProbeLabels: []string{"webm", "mkv"}},
		// RIFF container: wav, avi, or webp per the form type at offset 8.
		{Offset: 0, Magic: []byte("RIFF"), Probe: probeRIFF, ProbeLabels: []string{"wav", "avi", "webp"}},
		// ZIP local header: office document entry names distinguish
		// docx/xlsx/pptx from a plain archive.
		{Label: "zip", Offset: 0, Magic: []byte{0x50, 0x4B, 0x03, 0x04}, Probe: probeOfficeZip, ProbeLabels: []string{"docx", "xlsx", "pptx"}},
		{Label: "zip", Offset: 0, Magic: []byte{0x50, 0x4B, 0x05, 0x06}},

		{Label: "png", Offset: 0, Magic: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
		{Label: "jpeg", Offset: 0, Magic: []byte{0xFF, 0xD8, 0xFF}},
		{Label: "gif", Offset: 0, Magic: []byte("GIF87a")},
		{Label: "gif", Offset: 0, Magic: []byte("GIF89a")},
		{Label: "tiff", Offset: 0, Magic: []byte{0x49, 0x49, 0x2A, 0x00}},
		{Label: "tiff", Offset: 0, Magic: []byte{0x4D, 0x4D, 0x00, 0x2A}},
		{Label: "bmp", Offset: 0, Magic: []byte("BM")},

		{Label: "pdf", Offset: 0, Magic: []byte("%PDF")},

		{Label: "rar", Offset: 0, Magic: []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07}},
		{Label: "7z", Offset: 0, Magic: []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}},
		{Label: "gzip", Offset: 0, Magic: []byte{0x1F, 0x8B}},
		{Label: "bzip2", Offset: 0, Magic: []byte("BZh")},
		{Label: "xz", Offset: 0, Magic: []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}},

		{Label: "flac", Offset: 0, Magic: []byte("fLaC")},
		{Label: "ogg", Offset: 0, Magic: []byte("OggS")},
		{Label: "mp3", Offset: 0, Magic: []byte("ID3")},
		{Label: "mp3", Offset: 0, Magic: []byte{0xFF, 0xFB}},
		{Label: "mp3", Offset: 0, Magic: []byte{0xFF, 0xF3}},
	}
}

var heicBrands = [][]byte{
	[]byte("heic"), []byte("heix"), []byte("hevc"), []byte("hevx"),
	[]byte("heif"), []byte("mif1"), []byte("msf1"),
}

func probeFtyp(prefix []byte) (string, bool) {
	if len(prefix) < 12 {
		return "", false
	}
	brand := prefix[8:12]
	for _, b := range heicBrands {
		if bytes.Equal(brand, b) {
			return "heic", true
		}
	}
	switch {
	case bytes.Equal(brand, []byte("M4A ")):
		return "m4a", true
	case bytes.Equal(brand, []byte("qt  ")):
		return "mov", true
	default:
		return "mp4", true
	}
}

func probeEBML(prefix []byte) (string, bool) {
	// The doctype string sits within the first few dozen bytes of the
	// EBML header.
	window := prefix
	if len(window) > 64 {
		window = window[:64]
	}
	if bytes.Contains(window, []byte("webm")) {
		return "webm", true
	}
	if bytes.Contains(window, []byte("matroska")) {
		return "mkv", true
	}
	return "mkv", true
}

func probeRIFF(prefix []byte) (string, bool) {
	if len(prefix) < 12 {
		return "", false
	}
	switch string(prefix[8:12]) {
	case "WAVE":
		return "wav", true
	case "AVI ":
		return "avi", true
	case "WEBP":
		return "webp", true
	default:
		return "", false
	}
}

// probeOfficeZip looks for Office Open XML entry names in the ZIP local
// header region. The first entry of an OOXML file is [Content_Types].xml and
// the part directory (word/, xl/, ppt/) appears within the bounded prefix.
func probeOfficeZip(prefix []byte) (string, bool) {
	if !bytes.Contains(prefix, []byte("[Content_Types].xml")) {
		return "", false
	}
	switch {
	case bytes.Contains(prefix, []byte("word/")):
		return "docx", true
	case bytes.Contains(prefix, []byte("xl/")):
		return "xlsx", true
	case bytes.Contains(prefix, []byte("ppt/")):
		return "pptx", true
	default:
		return "", false
	}
}
