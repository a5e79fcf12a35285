package version

import "runtime/debug"

// Version is the archguide release. Override at build time with:
//
//	go build -ldflags "-X github.com/vanderheijden86/archguide/pkg/version.Version=v1.2.3"
var Version = "v0.3.0"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns Version, suffixed with the short VCS revision when the
// binary was built from a checkout ("v0.3.0 (1a2b3c4d, dirty)").
func String() string {
	info, ok := readBuildInfo()
	if !ok {
		return Version
	}
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return Version
	}
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if dirty {
		return Version + " (" + rev + ", dirty)"
	}
	return Version + " (" + rev + ")"
}
