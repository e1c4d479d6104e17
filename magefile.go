//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary     = "bin/podium"
	versionPkg = "github.com/dkoosis/podium/internal/version"
)

// Default target - build the binary
var Default = Build

// Build builds the podium binary with version information
func Build() error {
	ldflags, err := versionLDFlags()
	if err != nil {
		return err
	}
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binary, "./cmd/podium")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}

// QA runs format, vet, lint and the race-enabled test suite
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Lint.Golangci, Test.Race)
}

type Lint mg.Namespace

// All runs every linter
func (Lint) All() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Lint.Golangci)
}

// Format checks gofmt
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Golangci runs golangci-lint when installed
func (Lint) Golangci() error {
	if err := sh.RunV("golangci-lint", "run", "--timeout=5m", "./..."); err != nil {
		if isCommandNotFound(err) {
			fmt.Println("⚠️  golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
			return nil
		}
		return err
	}
	return nil
}

type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Coverage writes coverage.out and prints the per-function summary
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Race runs the tests with the race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Run builds and starts podium against $PODIUM_URL or the default backend
func Run() error {
	mg.Deps(Build)
	return sh.RunV(binary)
}

func versionLDFlags() (string, error) {
	version := os.Getenv("VERSION")
	if version == "" {
		v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
		if err != nil {
			v = "dev"
		}
		version = v
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	date := time.Now().UTC().Format(time.RFC3339)

	flags := []string{
		fmt.Sprintf("-X %s.Version=%s", versionPkg, version),
		fmt.Sprintf("-X %s.CommitHash=%s", versionPkg, commit),
		fmt.Sprintf("-X %s.BuildDate=%s", versionPkg, date),
	}
	return strings.Join(flags, " "), nil
}

func isCommandNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || strings.Contains(err.Error(), "executable file not found")
}
