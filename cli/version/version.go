package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	goVersion "github.com/hashicorp/go-version"
)

const (
	unknownVersion  = "<unknown>"
	cliVersionTitle = "tmplfmt"
)

// Get the value of this variables at build time.
// See magefile for more details.
var (
	gitTag       string
	gitCommit    string
	versionLabel string
)

// normalize returns the version tag without the "v" prefix and with the
// pre-release part kept. Tags which are not versions are returned as is.
func normalize(tag string) string {
	parsed, err := goVersion.NewVersion(tag)
	if err != nil {
		return tag
	}
	var segments []string
	for _, num := range parsed.Segments() {
		segments = append(segments, strconv.Itoa(num))
	}
	version := strings.Join(segments, ".")
	if pre := parsed.Prerelease(); pre != "" {
		version += "-" + pre
	}
	return version
}

// GetVersion return string with tmplfmt version info.
func GetVersion(showShort bool, needCommit bool) string {
	version := unknownVersion
	if gitTag != "" {
		version = normalize(gitTag)
		if versionLabel != "" {
			version = fmt.Sprintf("%s/%s", version, versionLabel)
		}
	}

	if showShort || needCommit {
		if needCommit {
			return fmt.Sprintf("%s.%s", version, gitCommit)
		}

		return version
	}

	return fmt.Sprintf(
		"%s version %s, %s/%s. commit: %s",
		cliVersionTitle, version, runtime.GOOS, runtime.GOARCH, gitCommit,
	)
}
