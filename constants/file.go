package constants

import "strings"

// AllowedExtensions holds the default allowed file extensions for
// packing slip ingestion. Slips arrive as plain text dumps.
var AllowedExtensions = map[string]struct{}{
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ParseExtList turns a comma-separated extension list ("txt,log") into
// the set shape AllowedExtensions uses. Empty input yields nil.
func ParseExtList(s string) map[string]struct{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	out := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		ext := NormalizeExt(strings.TrimSpace(part))
		if ext != "" {
			out[ext] = struct{}{}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
