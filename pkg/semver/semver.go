// SPDX-License-Identifier: Apache-2.0

// Package semver extracts version strings from arbitrary tool output and
// compares them. Tools print versions in wildly different shapes (v18.17.0,
// "npm 9.6.7", "Docker version 24.0.5, build ced0996"), so extraction is
// deliberately loose while comparison is strict semantic versioning.
package semver

import (
	"regexp"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
	"github.com/joomcode/errorx"
)

// RegexSemVer matches a full semantic version per semver.org.
const RegexSemVer = `(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?`

// RegexLooseVersion matches dotted numeric versions with one to three
// components, which covers tools that omit the patch level.
const RegexLooseVersion = `\d+(?:\.\d+){0,2}`

var (
	reSemVer = regexp.MustCompile(RegexSemVer)
	reLoose  = regexp.MustCompile(RegexLooseVersion)
)

// Extract returns the first version-looking token found in s. It prefers a
// full semantic version and falls back to a loose dotted version.
func Extract(s string) (string, error) {
	if m := reSemVer.FindString(s); m != "" {
		return m, nil
	}

	if m := reLoose.FindString(s); m != "" {
		return m, nil
	}

	return "", errorx.IllegalFormat.New("no version found in %q", strings.TrimSpace(s))
}

// Parse parses a version string leniently, tolerating a leading "v" and
// missing minor or patch components.
func Parse(s string) (*masterminds.Version, error) {
	v, err := masterminds.NewVersion(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "invalid version %q", s)
	}

	return v, nil
}

// AtLeast reports whether version satisfies the given minimum.
func AtLeast(version, minimum string) (bool, error) {
	v, err := Parse(version)
	if err != nil {
		return false, err
	}

	m, err := Parse(minimum)
	if err != nil {
		return false, err
	}

	return !v.LessThan(m), nil
}
