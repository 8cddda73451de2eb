package conform

import "strings"

// JoinPath joins the non-empty segments with ".". An empty segment stands for
// an undefined one, so JoinPath("", "name") is "name" and JoinPath() is "".
func JoinPath(segments ...string) string {
	switch len(segments) {
	case 0:
		return ""
	case 2:
		// hot path: parent path + field key
		if segments[0] == "" {
			return segments[1]
		}
		if segments[1] == "" {
			return segments[0]
		}
		return segments[0] + "." + segments[1]
	}
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ".")
}
