// Package version reports the release of hashlookup binaries. gitCommit is
// set at link time with -ldflags "-X massnet.org/hashlookup/version.gitCommit=...".
package version

import "fmt"

const (
	AppName = "hashlookup"

	majorVersion uint32 = 0
	minorVersion uint32 = 1
	patchVersion uint32 = 0
)

var (
	gitCommit string
	current   = release{major: majorVersion, minor: minorVersion, patch: patchVersion}
)

type release struct {
	major, minor, patch uint32
}

// format renders "<major>.<minor>.<patch>[+<commit>]", the commit cut to
// eight characters and left out when shorter than that.
func (r release) format(commit string) string {
	s := fmt.Sprintf("%d.%d.%d", r.major, r.minor, r.patch)
	if len(commit) >= 8 {
		s += "+" + commit[:8]
	}
	return s
}

func GetVersion() string {
	return current.format(gitCommit)
}

// UserAgent identifies a hashlookup component in HTTP requests, like
// "hashlookup-cli/0.1.0".
func UserAgent(component string) string {
	return fmt.Sprintf("%s-%s/%s", AppName, component, GetVersion())
}
