// Package export saves a reviewed dictation clip back to disk under a
// timestamped filename, so a clip pulled out of a session inbox can be
// archived without overwriting earlier exports.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/snanayakkara/dictascope/internal/audio"
)

// Clip writes the clip's raw bytes into dir as
// <base>-<timestamp><ext> and returns the written path. The timestamp
// is RFC 3339 with colons replaced so the name is valid on every
// filesystem. Clips with no extension fall back to .webm, the capture
// container dictation recorders typically produce.
func Clip(dir string, clip *audio.Clip, now time.Time) (string, error) {
	if clip == nil || len(clip.Data) == 0 {
		return "", fmt.Errorf("nothing to export")
	}
	if dir == "" {
		dir = "."
	}

	ext := filepath.Ext(clip.Name)
	if ext == "" {
		ext = ".webm"
	}

	stamp := strings.ReplaceAll(now.Format(time.RFC3339), ":", "-")
	path := filepath.Join(dir, fmt.Sprintf("%s-%s%s", clip.Base(), stamp, ext))

	if err := os.WriteFile(path, clip.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to export clip: %w", err)
	}
	return path, nil
}
