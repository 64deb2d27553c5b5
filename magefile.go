//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	goPackageName = "github.com/jaustinpage/tmplfmt/cli"

	asmflags = "all=-trimpath=${PWD}"
	gcflags  = "all=-trimpath=${PWD}"

	packagePath = "./cli"
)

var (
	ldflags = []string{
		"-X ${PACKAGE}/version.gitTag=${GIT_TAG}",
		"-X ${PACKAGE}/version.gitCommit=${GIT_COMMIT}",
		"-X ${PACKAGE}/version.versionLabel=${VERSION_LABEL}",
	}
	goExecutableName      = "go"
	tmplfmtExecutableName = "tmplfmt"

	Aliases = map[string]any{
		"build": Build.Release,
		"unit":  Unit.Default,
	}
)

func init() {
	var err error

	if specifiedGoExe := os.Getenv("GOEXE"); specifiedGoExe != "" {
		goExecutableName = specifiedGoExe
	}

	if tmplfmtExecutableName, err = filepath.Abs(tmplfmtExecutableName); err != nil {
		panic(err)
	}
}

type optsUpdater func([]string) ([]string, error)

// appendFlags appends flags passed in args.
func appendFlags(flags ...string) optsUpdater {
	return func(args []string) ([]string, error) {
		return append(args, flags...), nil
	}
}

// appendLdFlags appends linker flags.
func appendLdFlags(flags ...string) optsUpdater {
	return func(args []string) ([]string, error) {
		buildLdflags := append(append([]string{}, ldflags...), flags...)
		return append(append(args, "-ldflags"), strings.Join(buildLdflags, " ")), nil
	}
}

// Building tmplfmt executable.
func buildTmplfmt(argUpdaters ...optsUpdater) error {
	args := []string{"build", "-o", tmplfmtExecutableName}
	var err error
	for _, updateArguments := range argUpdaters {
		if args, err = updateArguments(args); err != nil {
			return err
		}
	}
	args = append(args,
		"-asmflags", asmflags,
		"-gcflags", gcflags,
		packagePath)
	err = sh.RunWith(getBuildEnvironment(), goExecutableName, args...)
	if err != nil {
		return fmt.Errorf("Failed to build tmplfmt executable: %s", err)
	}

	return nil
}

type Build mg.Namespace

// Building release tmplfmt executable without debug info.
func (Build) Release() error {
	fmt.Println("Building release tmplfmt...")

	return buildTmplfmt(appendLdFlags("-s", "-w"))
}

// Building debug tmplfmt executable.
func (Build) Debug() error {
	fmt.Println("Building debug tmplfmt...")

	return buildTmplfmt(appendLdFlags())
}

// Building tmplfmt executable with coverage.
func (Build) Coverage() error {
	fmt.Println("Building release tmplfmt with coverage...")

	err := buildTmplfmt(appendFlags("-cover"), appendLdFlags("-s", "-w"))
	if err != nil {
		return err
	}
	fmt.Println(`Set coverage data destination directory (must exist) and run tmplfmt:
	GOCOVERDIR=./<coverage_dest_dir> tmplfmt <opts>`)
	return nil
}

// Run golang linters.
func Lint() error {
	fmt.Println("Running golangci-lint...")

	return sh.RunV("golangci-lint", "run")
}

type Unit mg.Namespace

func runUnitTests(flags []string) error {
	args := []string{"test"}
	if mg.Verbose() {
		args = append(args, "-v")
	}
	args = append(args, "./...")
	args = append(args, flags...)

	return sh.RunV(goExecutableName, args...)
}

// Run unit tests.
func (Unit) Default() error {
	fmt.Println("Running unit tests...")

	return runUnitTests([]string{})
}

// Run unit tests with the race detector.
func (Unit) Race() error {
	fmt.Println("Running unit tests with the race detector...")

	return runUnitTests([]string{"-race"})
}

// Run unit tests with code coverage.
func (Unit) Coverage() error {
	fmt.Println("Running unit tests with code coverage...")

	coverDir := filepath.Join("coverage", "unit")
	if err := os.MkdirAll(coverDir, 0o750); err != nil {
		return err
	}
	return runUnitTests([]string{
		"-coverprofile", filepath.Join(coverDir, "coverage.out"),
	})
}

// Run all tests together.
func Test() {
	mg.SerialDeps(Lint, Unit.Default)
}

// Cleanup directory.
func Clean() {
	sh.Rm(tmplfmtExecutableName)
	sh.Rm("coverage")
}

// getBuildEnvironment return map with build environment variables.
func getBuildEnvironment() map[string]string {
	var err error

	var currentDir string
	var gitTag string
	var gitCommit string

	if currentDir, err = os.Getwd(); err != nil {
		log.Warnf("Failed to get current directory: %s", err)
	}

	if _, err := exec.LookPath("git"); err == nil {
		gitTag, _ = sh.Output("git", "describe", "--tags")
		gitCommit, _ = sh.Output("git", "rev-parse", "--short", "HEAD")
	}

	return map[string]string{
		"PACKAGE":       goPackageName,
		"GIT_TAG":       gitTag,
		"GIT_COMMIT":    gitCommit,
		"VERSION_LABEL": os.Getenv("VERSION_LABEL"),
		"PWD":           currentDir,
		"CGO_ENABLED":   "0",
	}
}
