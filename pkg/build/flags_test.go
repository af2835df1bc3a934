// SPDX-License-Identifier: MIT
package build

import (
	"os"
	"reflect"
	"testing"
)

var (
	origName    string
	origTime    string
	origCommit  string
	origVersion string
	origInfo    Info
)

func TestMain(m *testing.M) {
	origName = buildName
	origTime = buildTime
	origCommit = buildCommit
	origVersion = buildVersion
	origInfo = *buildInfo

	exitCode := m.Run()

	buildName = origName
	buildTime = origTime
	buildCommit = origCommit
	buildVersion = origVersion
	*buildInfo = origInfo

	os.Exit(exitCode)
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		buildName   string
		buildTime   string
		buildCommit string
		buildVer    string
		wantMissing []string
		want        Info
	}{
		{
			"All flags set",
			"testapp", "2025-04-13", "abcdef123", "v1.0.0",
			nil,
			Info{"testapp", defaultDescription, "2025-04-13", "abcdef123", "v1.0.0"},
		},
		{
			"Missing BuildName",
			"", "2025-04-13", "abcdef123", "v1.0.0",
			[]string{"buildName"},
			Info{defaultName, defaultDescription, "2025-04-13", "abcdef123", "v1.0.0"},
		},
		{
			"Missing commit and version",
			"testapp", "2025-04-13", "", "",
			[]string{"buildCommit", "buildVersion"},
			Info{"testapp", defaultDescription, "2025-04-13", unknown, "dev"},
		},
		{
			"Nothing set",
			"", "", "", "",
			[]string{"buildName", "buildTime", "buildCommit", "buildVersion"},
			Info{defaultName, defaultDescription, unknown, unknown, "dev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buildName = tt.buildName
			buildTime = tt.buildTime
			buildCommit = tt.buildCommit
			buildVersion = tt.buildVer

			missing := Initialize()
			if !reflect.DeepEqual(missing, tt.wantMissing) {
				t.Errorf("Initialize() missing = %v, want %v", missing, tt.wantMissing)
			}
			if got := *GetBuildFlags(); got != tt.want {
				t.Errorf("GetBuildFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInitializeResetsPreviousValues(t *testing.T) {
	buildName, buildTime, buildCommit, buildVersion = "a", "b", "c", "d"
	Initialize()

	buildName, buildTime, buildCommit, buildVersion = "", "", "", ""
	Initialize()

	if got := GetBuildFlags().Name; got != defaultName {
		t.Errorf("Name = %q after reinitializing without flags, want %q", got, defaultName)
	}
}
