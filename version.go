package vault

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Maj is the major version number (updated on breaking release)
const Maj = 0
// Min is the minor version number (updated on minor releases)
const Min = 3
// Fix is the patch number (updated on bugfix releases)
const Fix = 0

// Suffix used when not a tagged release (eg. -dev, -alpha, -beta, etc)
const Suffix = ""

// version is private to avoid modifications
var version = fmt.Sprintf("%d.%d.%d%s", Maj, Min, Fix, Suffix)

// GitCommit set by build flags
var GitCommit = ""

// Version is the string to be displayed
func Version() string {
	v := "v" + version
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}

// RunningVersion returns the semantic version of this build. Version upgrade
// operations are compared against it.
func RunningVersion() *semver.Version {
	return semver.MustParse(version)
}
