package utilities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the release tag or git describe output the binary was built
// from. It is set at link time:
//
//	-ldflags "-X github.com/kaspa-auth/siwk/internal/utilities.Version=v1.2.0"
var Version string

// VersionInfo is the numeric breakdown `siwk version` prints below the raw
// Version string, as "major=1 minor=2 patch=0 rc=3". RC is zero for final
// releases.
type VersionInfo struct {
	Original string
	Major    uint64
	Minor    uint64
	Patch    uint64
	RC       uint64
}

// String renders the canonical form, e.g. 1.2.0 or 1.2.0-rc.3.
func (vi *VersionInfo) String() string {
	s := fmt.Sprintf("%d.%d.%d", vi.Major, vi.Minor, vi.Patch)
	if vi.RC > 0 {
		s += fmt.Sprintf("-rc.%d", vi.RC)
	}
	return s
}

// ParseVersion reads tags like "v1.2.0", "1.2" or "v1.2.0-rc.3-g1a2b3c".
// Missing minor or patch numbers are zero. When it fails, `siwk version`
// prints only the raw string.
func ParseVersion(ver string) (*VersionInfo, error) {
	sv, err := semver.NewVersion(canonicalTag(ver))
	if err != nil {
		return nil, err
	}

	return &VersionInfo{
		Original: ver,
		Major:    sv.Major(),
		Minor:    sv.Minor(),
		Patch:    sv.Patch(),
		RC:       releaseCandidate(sv.Prerelease()),
	}, nil
}

// releaseCandidate returns N for the pre-release labels rc.N, rc-N and rcN,
// ignoring anything after the number, and zero for any other label.
func releaseCandidate(pre string) uint64 {
	rest, ok := strings.CutPrefix(pre, "rc")
	if !ok {
		return 0
	}

	rest = strings.TrimLeft(rest, ".-")
	if end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' }); end >= 0 {
		rest = rest[:end]
	}

	n, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// canonicalTag makes sure ver starts with "v". Some release tags used "rc"
// in its place.
func canonicalTag(ver string) string {
	ver = strings.TrimSpace(ver)

	switch {
	case strings.HasPrefix(ver, "v"):
		return ver
	case strings.HasPrefix(ver, "rc"):
		return "v" + ver[2:]
	default:
		return "v" + ver
	}
}
