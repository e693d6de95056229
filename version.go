// Package totonoo is a Markdown editing toolkit: a selection-relative edit
// engine, an action catalog with keyboard chords, a goldmark HTML pipeline
// and a Bubble Tea editor component.
package totonoo

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

var releaseRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)

// Release is a parsed SemVer 2.0.0 string.
type Release struct {
	Major, Minor, Patch int
	Pre                 string
	Build               string
}

// ParseRelease parses v, which must not carry a leading "v".
func ParseRelease(v string) (Release, error) {
	m := releaseRE.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return Release{}, fmt.Errorf("invalid release %q", v)
	}
	for _, part := range []string{m[4], m[5]} {
		if strings.Contains(part, "..") || strings.HasSuffix(part, ".") {
			return Release{}, fmt.Errorf("invalid release %q", v)
		}
	}
	var r Release
	r.Major, _ = strconv.Atoi(m[1])
	r.Minor, _ = strconv.Atoi(m[2])
	r.Patch, _ = strconv.Atoi(m[3])
	r.Pre = strings.TrimPrefix(m[4], "-")
	r.Build = strings.TrimPrefix(m[5], "+")
	return r, nil
}

func (r Release) String() string {
	s := fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Patch)
	if r.Pre != "" {
		s += "-" + r.Pre
	}
	if r.Build != "" {
		s += "+" + r.Build
	}
	return s
}

// Tag is the git tag of r.
func (r Release) Tag() string { return "v" + r.String() }

// Version returns the embedded release without the leading "v".
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// CurrentRelease parses Version.
func CurrentRelease() (Release, error) {
	return ParseRelease(Version())
}
