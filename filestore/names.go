package filestore

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const (
	maxBaseLen   = 50
	shortUIDLen  = 8
	fallbackBase = "file"
)

// UniqueName builds a collision-free storage name for an uploaded file:
// <base>_<utc timestamp>_<short uuid><ext>. The base is the sanitized original name.
// When the original has no extension, fallbackExt is used.
func UniqueName(original, fallbackExt string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := sanitize(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if ext == "" || sanitize(ext[1:]) != ext[1:] {
		ext = fallbackExt
	}

	if len(base) > maxBaseLen {
		base = base[:maxBaseLen]
	}

	ts := time.Now().UTC().Format("20060102150405")
	uid := uuid.NewString()[:shortUIDLen]

	return fmt.Sprintf("%s_%s_%s%s", base, ts, uid, ext)
}

// sanitize keeps ASCII letters, digits, '-' and '_'.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallbackBase
	}
	return b.String()
}
