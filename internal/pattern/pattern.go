// Package pattern matches literal Markdown markers with regular expressions.
//
// Markers such as "**", "## ", "~~" or "`" contain characters that are
// regexp metacharacters, so every marker is escaped before it becomes part
// of a pattern. The documented marker alphabet is
//
//	{ } ( ) / $ # & * .
//
// and the remaining RE2 metacharacters (\ [ ] + ? | ^) are escaped as well.
// New markers must be checked against this list.
package pattern

import (
	"regexp"
	"strings"
	"sync"
)

const metachars = `\{}()/$#&*.[]+?|^`

// Escape returns s with every marker metacharacter backslash-escaped.
func Escape(s string) string {
	if !strings.ContainsAny(s, metachars) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) * 2)
	for _, r := range s {
		if strings.ContainsRune(metachars, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

var cache sync.Map // pattern string -> *regexp.Regexp

func compile(expr string) *regexp.Regexp {
	if re, ok := cache.Load(expr); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(expr)
	cache.Store(expr, re)
	return re
}

func prefixRE(marker string) *regexp.Regexp { return compile(`^` + Escape(marker)) }

func suffixRE(marker string) *regexp.Regexp { return compile(Escape(marker) + `$`) }

// HasPrefix reports whether s starts with the literal marker.
// An empty marker is never present.
func HasPrefix(s, marker string) bool {
	if marker == "" {
		return false
	}
	return prefixRE(marker).MatchString(s)
}

// HasSuffix reports whether s ends with the literal marker.
// An empty marker is never present.
func HasSuffix(s, marker string) bool {
	if marker == "" {
		return false
	}
	return suffixRE(marker).MatchString(s)
}

// TrimPrefix removes one leading occurrence of marker from s.
func TrimPrefix(s, marker string) string {
	if marker == "" {
		return s
	}
	return prefixRE(marker).ReplaceAllLiteralString(s, "")
}

// TrimSuffix removes one trailing occurrence of marker from s.
func TrimSuffix(s, marker string) string {
	if marker == "" {
		return s
	}
	return suffixRE(marker).ReplaceAllLiteralString(s, "")
}
