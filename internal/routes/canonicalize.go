package routes

import (
	"fmt"
	"strings"
)

// Canonicalize normalizes a request path before it is matched against the
// table.
//
// The following transformations are applied:
//   - a leading slash is added when missing
//   - repeated slashes collapse (/explore//x -> /explore/x)
//   - "." segments are dropped and ".." segments resolved
//   - the trailing slash is removed, except for the root "/"
//   - escapes of unreserved characters are decoded (/%65xplore -> /explore)
//     and the remaining escapes use upper-case hex (%2f -> %2F)
//
// Any query string is discarded. Paths containing a backslash, a NUL byte,
// an invalid percent escape, or a ".." that escapes the root are rejected
// with an error wrapping ErrInvalidPath.
func Canonicalize(input string) (string, error) {
	path, _, _ := strings.Cut(input, "?")
	if path == "" {
		return "/", nil
	}

	if strings.Contains(path, `\`) {
		return "", fmt.Errorf("%w: contains backslash", ErrInvalidPath)
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", fmt.Errorf("%w: contains null byte", ErrInvalidPath)
	}
	if strings.Contains(path, "%") {
		var err error
		if path, err = normalizeEscapes(path); err != nil {
			return "", err
		}
	}

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segments) == 0 {
				return "", fmt.Errorf("%w: escapes root", ErrInvalidPath)
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}

	return "/" + strings.Join(segments, "/"), nil
}

// IsCanonical reports whether path is already in canonical form.
func IsCanonical(path string) bool {
	c, err := Canonicalize(path)
	return err == nil && c == path
}

// normalizeEscapes decodes percent escapes of unreserved characters
// (RFC 3986 section 2.3) and upper-cases the hex digits of the others, so
// equivalent spellings of a path compare equal.
func normalizeEscapes(path string) (string, error) {
	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			b.WriteByte(path[i])
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return "", fmt.Errorf("%w: invalid percent escape at offset %d", ErrInvalidPath, i)
		}
		c := unhex(path[i+1])<<4 | unhex(path[i+2])
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			b.WriteString("%" + strings.ToUpper(path[i+1:i+3]))
		}
		i += 2
	}
	return b.String(), nil
}

func isUnreserved(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
