// SPDX-License-Identifier: MIT

// Package build carries metadata embedded at link time:
//
//	go build -ldflags "-X spectra/pkg/build.buildName=spectra \
//	  -X spectra/pkg/build.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ) \
//	  -X spectra/pkg/build.buildCommit=$(git rev-parse --short HEAD) \
//	  -X spectra/pkg/build.buildVersion=0.1.0"
//
// Flags left unset keep development defaults so `go run` works.
package build

// Info describes the running binary.
type Info struct {
	Name        string
	Description string
	Time        string
	Commit      string
	Version     string
}

const (
	defaultName        = "spectra"
	defaultDescription = "Signal playground: DFT, FFT, inverse transforms and frequency removal"
	unknown            = "unknown"
)

// Populated by -ldflags.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildInfo    = newInfo()
)

func newInfo() *Info {
	return &Info{
		Name:        defaultName,
		Description: defaultDescription,
		Time:        unknown,
		Commit:      unknown,
		Version:     "dev",
	}
}

// Initialize copies the ldflags values into the build info and returns the
// names of the flags that were not set and kept their defaults.
func Initialize() (missing []string) {
	set := func(name, value string, dst *string) {
		if value == "" {
			missing = append(missing, name)
			return
		}
		*dst = value
	}

	buildInfo = newInfo()
	set("buildName", buildName, &buildInfo.Name)
	set("buildTime", buildTime, &buildInfo.Time)
	set("buildCommit", buildCommit, &buildInfo.Commit)
	set("buildVersion", buildVersion, &buildInfo.Version)
	return missing
}

// GetBuildFlags returns the current build information.
func GetBuildFlags() *Info {
	return buildInfo
}
