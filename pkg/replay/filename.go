package replay

import (
	"fmt"
	"time"
)

// SanitizeLevelName maps a level's display name onto the identifier-safe
// alphabet [A-Za-z0-9_]. Every other rune becomes an underscore; an empty
// name becomes "macro".
func SanitizeLevelName(name string) string {
	if name == "" {
		return "macro"
	}
	out := make([]byte, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, byte(r))
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// Filename builds the suggested artifact filename: the sanitized level name,
// the Unix-epoch seconds of ts, and the codec extension. The timestamp makes
// names unique at second granularity, so exports never silently overwrite.
func Filename(levelName string, ts time.Time, ext string) string {
	return fmt.Sprintf("%s_%d%s", SanitizeLevelName(levelName), ts.Unix(), ext)
}
