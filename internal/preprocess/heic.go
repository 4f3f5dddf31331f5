package preprocess

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"curator/internal/services"
)

var (
	commandContext = exec.CommandContext
	lookPath       = exec.LookPath
)

// HeicConverter converts .heic/.heif images to PNG with whichever external
// tool the platform offers. A missing tool is not an error: the stage simply
// never applies and files pass through untouched.
type HeicConverter struct {
	tool      string
	available bool
}

// NewHeicConverter resolves the conversion tool once. An explicit override
// wins; otherwise sips is used on darwin and magick or convert elsewhere.
func NewHeicConverter(override string) *HeicConverter {
	for _, tool := range candidateTools(override) {
		if _, err := lookPath(tool); err == nil {
			return &HeicConverter{tool: tool, available: true}
		}
	}
	return &HeicConverter{}
}

func candidateTools(override string) []string {
	if override = strings.TrimSpace(override); override != "" {
		return []string{override}
	}
	if runtime.GOOS == "darwin" {
		return []string{"sips"}
	}
	return []string{"magick", "convert"}
}

func (h *HeicConverter) Name() string { return "heic" }

func (h *HeicConverter) Applies(path string) bool {
	if !h.available {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".heic", ".heif":
		return true
	}
	return false
}

// Transform converts path to PNG next to the original, removing the original
// only once the converted file verifiably exists.
func (h *HeicConverter) Transform(ctx context.Context, path string) (string, error) {
	dir := filepath.Dir(path)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	target, err := claimRename(dir, stem+".png")
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "preprocess", "heic", "Failed to claim converted filename", err)
	}

	cmd := commandContext(ctx, h.tool, h.args(path, target)...)
	if output, runErr := cmd.CombinedOutput(); runErr != nil {
		_ = os.Remove(target)
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			runErr = fmt.Errorf("%w: %s", runErr, detail)
		}
		return "", services.Wrap(services.ErrExternalTool, "preprocess", "heic", fmt.Sprintf("%s conversion failed", h.tool), runErr)
	}

	info, err := os.Stat(target)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(target)
		return "", services.Wrap(services.ErrExternalTool, "preprocess", "heic", "Converter produced no output", err)
	}
	if err := os.Remove(path); err != nil {
		return "", services.Wrap(services.ErrTransient, "preprocess", "heic", "Failed to remove original after conversion", err)
	}
	return target, nil
}

func (h *HeicConverter) args(src, dst string) []string {
	if filepath.Base(h.tool) == "sips" {
		return []string{"-s", "format", "png", src, "--out", dst}
	}
	return []string{src, dst}
}

// Available reports whether a conversion tool was found at construction.
func (h *HeicConverter) Available() bool {
	return h.available
}
