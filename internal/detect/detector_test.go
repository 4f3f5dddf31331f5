package detect

import (
	"os"
	"path/filepath"
	"testing"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}

func writeFixture(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSignatureBeatsExtension(t *testing.T) {
	d := NewDetector()
	// PNG bytes disguised with an archive extension.
	path := writeFixture(t, "image.zip", pngHeader)

	got := d.Detect(path)
	if got.Label != "png" {
		t.Fatalf("expected png, got %q", got.Label)
	}
	if got.Provenance != BySignature {
		t.Fatalf("expected signature provenance, got %s", got.Provenance)
	}
}

func TestExtensionFallback(t *testing.T) {
	d := NewDetector()
	path := writeFixture(t, "notes.txt", []byte("plain text, no magic here"))

	got := d.Detect(path)
	if got.Label != "txt" {
		t.Fatalf("expected txt, got %q", got.Label)
	}
	if got.Provenance != ByExtension {
		t.Fatalf("expected extension provenance, got %s", got.Provenance)
	}
}

func TestZeroByteFileFallsBackToExtension(t *testing.T) {
	d := NewDetector()
	path := writeFixture(t, "empty.pdf", nil)

	got := d.Detect(path)
	if got.Label != "pdf" || got.Provenance != ByExtension {
		t.Fatalf("expected pdf via extension, got %+v", got)
	}
}

func TestUnknownWithoutSignatureOrExtension(t *testing.T) {
	d := NewDetector()
	path := writeFixture(t, "mystery", []byte("no structure at all"))

	got := d.Detect(path)
	if !got.IsUnknown() {
		t.Fatalf("expected unknown, got %+v", got)
	}
}

func TestMissingFileDegradesToExtension(t *testing.T) {
	d := NewDetector()
	got := d.Detect(filepath.Join(t.TempDir(), "gone.mp3"))
	if got.Label != "mp3" || got.Provenance != ByExtension {
		t.Fatalf("expected mp3 via extension, got %+v", got)
	}
}

func TestShortFileSkipsLongerSignatures(t *testing.T) {
	d := NewDetector()
	// Two bytes of a four-byte ZIP magic must not match or panic.
	path := writeFixture(t, "stub.csv", []byte{0x50, 0x4B})

	got := d.Detect(path)
	if got.Label != "csv" || got.Provenance != ByExtension {
		t.Fatalf("expected csv via extension, got %+v", got)
	}
}

func TestOfficeDocumentInsideZip(t *testing.T) {
	d := NewDetector()
	content := append([]byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x00, 0x00}, []byte("[Content_Types].xml ... word/document.xml")...)
	path := writeFixture(t, "report.zip", content)

	got := d.Detect(path)
	if got.Label != "docx" {
		t.Fatalf("expected docx for office zip, got %q", got.Label)
	}
	if got.Provenance != BySignature {
		t.Fatalf("expected signature provenance, got %s", got.Provenance)
	}
}

func TestPlainZipStaysZip(t *testing.T) {
	d := NewDetector()
	content := append([]byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00}, []byte("random-entry.bin")...)
	path := writeFixture(t, "bundle.zip", content)

	got := d.Detect(path)
	if got.Label != "zip" || got.Provenance != BySignature {
		t.Fatalf("expected zip via signature, got %+v", got)
	}
}

func TestFtypBrands(t *testing.T) {
	d := NewDetector()
	cases := []struct {
		brand string
		want  string
	}{
		{"heic", "heic"},
		{"mif1", "heic"},
		{"M4A ", "m4a"},
		{"qt  ", "mov"},
		{"isom", "mp4"},
	}
	for _, tc := range cases {
		content := append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftyp"+tc.brand)...)
		got := d.DetectBytes(content, "clip.bin")
		if got.Label != tc.want {
			t.Fatalf("brand %q: expected %s, got %q", tc.brand, tc.want, got.Label)
		}
	}
}

func TestRIFFFormTypes(t *testing.T) {
	d := NewDetector()
	cases := []struct {
		form string
		want string
	}{
		{"WAVE", "wav"},
		{"AVI ", "avi"},
		{"WEBP", "webp"},
	}
	for _, tc := range cases {
		content := append([]byte("RIFF\x24\x00\x00\x00"), []byte(tc.form)...)
		got := d.DetectBytes(content, "media.bin")
		if got.Label != tc.want {
			t.Fatalf("form %q: expected %s, got %q", tc.form, tc.want, got.Label)
		}
	}
}

func TestEBMLDoctypes(t *testing.T) {
	d := NewDetector()
	mkv := append([]byte{0x1A, 0x45, 0xDF, 0xA3, 0x01}, []byte("matroska")...)
	if got := d.DetectBytes(mkv, "x"); got.Label != "mkv" {
		t.Fatalf("expected mkv, got %q", got.Label)
	}
	webm := append([]byte{0x1A, 0x45, 0xDF, 0xA3, 0x01}, []byte("webm")...)
	if got := d.DetectBytes(webm, "x"); got.Label != "webm" {
		t.Fatalf("expected webm, got %q", got.Label)
	}
}

func TestLabelsCoverProbeResults(t *testing.T) {
	d := NewDetector()
	labels := make(map[string]struct{})
	for _, label := range d.Labels() {
		labels[label] = struct{}{}
	}
	for _, want := range []string{"png", "docx", "heic", "webm", "zip", "mp3"} {
		if _, ok := labels[want]; !ok {
			t.Fatalf("expected label %q in Labels()", want)
		}
	}
}
