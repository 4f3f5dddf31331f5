package detect

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Provenance records how a type was determined.
type Provenance string

const (
	// BySignature means the leading bytes matched a known signature.
	BySignature Provenance = "signature"
	// ByExtension means no signature matched and the extension decided.
	ByExtension Provenance = "extension"
	// Unknown means neither the content nor the extension was recognized.
	Unknown Provenance = "unknown"
)

// Type is the outcome of detection: a lowercase format label plus the
// provenance that produced it.
type Type struct {
	Label      string
	Provenance Provenance
}

// IsUnknown reports whether detection produced no usable label.
func (t Type) IsUnknown() bool {
	return t.Provenance == Unknown || t.Label == ""
}

// maxPrefix bounds how much of the file is read for signature matching. It
// covers the longest magic offset plus the probe window used to find office
// entry names inside a ZIP local header region.
const maxPrefix = 8192

// Detector matches files against an ordered signature table.
type Detector struct {
	signatures []Signature
}

// NewDetector returns a detector loaded with the built-in signature table.
func NewDetector() *Detector {
	return &Detector{signatures: defaultSignatures()}
}

// Detect classifies the file at path. It never fails: any read error degrades
// to extension-based fallback, and an unrecognized extension yields Unknown.
func (d *Detector) Detect(path string) Type {
	prefix, err := readPrefix(path)
	if err == nil && len(prefix) > 0 {
		if label, ok := d.matchSignature(prefix); ok {
			return Type{Label: label, Provenance: BySignature}
		}
	}
	return detectByExtension(path)
}

// DetectBytes classifies raw content, used where the bytes are already in
// hand. Extension fallback uses the provided name.
func (d *Detector) DetectBytes(content []byte, name string) Type {
	if len(content) > maxPrefix {
		content = content[:maxPrefix]
	}
	if label, ok := d.matchSignature(content); ok {
		return Type{Label: label, Provenance: BySignature}
	}
	return detectByExtension(name)
}

// Labels returns every label the signature table can produce, used to verify
// category mapping completeness at startup.
func (d *Detector) Labels() []string {
	seen := make(map[string]struct{})
	var labels []string
	add := func(label string) {
		if label == "" {
			return
		}
		if _, ok := seen[label]; ok {
			return
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	for _, sig := range d.signatures {
		add(sig.Label)
		for _, label := range sig.ProbeLabels {
			add(label)
		}
	}
	return labels
}

func (d *Detector) matchSignature(prefix []byte) (string, bool) {
	for _, sig := range d.signatures {
		// A signature longer than the file simply cannot match.
		if len(prefix) < sig.Offset+len(sig.Magic) {
			continue
		}
		if !bytes.HasPrefix(prefix[sig.Offset:], sig.Magic) {
			continue
		}
		if sig.Probe != nil {
			if label, ok := sig.Probe(prefix); ok {
				return label, true
			}
			if sig.Label == "" {
				continue
			}
		}
		return sig.Label, true
	}
	return "", false
}

func readPrefix(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, maxPrefix)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

func detectByExtension(path string) Type {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return Type{Provenance: Unknown}
	}
	if label, ok := extensionLabels[ext]; ok {
		return Type{Label: label, Provenance: ByExtension}
	}
	return Type{Provenance: Unknown}
}
