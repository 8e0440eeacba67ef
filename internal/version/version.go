// Package version reports the build version of the dsig tools.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set by the linker:
//
//	-ldflags "-X github.com/effective-security/dsig/internal/version.Version=v1.2.3 -X github.com/effective-security/dsig/internal/version.Commit=abcdef"
var (
	Version = "v0.0.0"
	Commit  = ""
)

// Info describes the build
type Info struct {
	Version string
	Commit  string
	Runtime string
}

// Current returns the version of the running binary
func Current() Info {
	return Info{
		Version: strings.TrimPrefix(Version, "v"),
		Commit:  Commit,
		Runtime: runtime.Version(),
	}
}

// String returns the version with the commit, if known
func (v Info) String() string {
	if v.Commit == "" {
		return v.Version
	}
	return fmt.Sprintf("%s (%s)", v.Version, v.Commit)
}
