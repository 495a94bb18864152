//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/brackettree"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":  Build,
	"t":  Test.Default,
	"l":  Lint.Default,
	"c":  Check,
	"s":  Smoke,
	"bm": Bench.Merge,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	Bench st.Namespace
)

// Build compiles bin/brackettree with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building brackettree...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/brackettree")
}

// Check formats, lints, tests and smoke-tests the binary.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default, Smoke)
}

// Clean removes build artifacts.
func Clean() error {
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Smoke runs inspect, scopes and merge on two adjacent token documents.
// merge must also reject the same documents out of order.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "brackettree-smoke")
	if err != nil {
		return fmt.Errorf("create smoke dir: %w", err)
	}
	defer os.RemoveAll(dir)

	head := filepath.Join(dir, "head.yml")
	tail := filepath.Join(dir, "tail.yml")
	docs := map[string]string{
		head: "source: main.go\ntokens:\n  - text: \"f\"\n  - bracket: \"(\"\n  - text: \"x\"\n  - bracket: \")\"\n",
		tail: "source: main.go\nstart: 4\ntokens:\n  - bracket: \"{\"\n  - bracket: \"}\"\n",
	}
	for path, body := range docs {
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	runs := [][]string{
		{"inspect", "--strict", head},
		{"scopes", "--offset", "2", head},
		{"merge", "--strict", head, tail},
		{"inspect", "--format", "json", "--compact", tail},
	}
	for _, args := range runs {
		fmt.Println("$ brackettree", strings.Join(args, " "))
		if err := sh.RunV(binary, append([]string{"--no-config"}, args...)...); err != nil {
			return fmt.Errorf("brackettree %s: %w", args[0], err)
		}
	}

	var exitErr *exec.ExitError
	err = exec.Command(binary, "--no-config", "merge", tail, head).Run()
	switch {
	case err == nil:
		return errors.New("merge accepted non-contiguous regions")
	case !errors.As(err, &exitErr):
		return fmt.Errorf("run merge: %w", err)
	case exitErr.ExitCode() != 65:
		return fmt.Errorf("merge of non-contiguous regions exited %d, want 65", exitErr.ExitCode())
	}
	fmt.Println("✓ smoke run passed")
	return nil
}

// Default runs all tests with gotestsum, race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails", "./...", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Tree runs only the tree package tests, verbosely.
func (Test) Tree() error {
	return gotestsum("standard-verbose", "./pkg/bracketast/...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Vet runs go vet, including the stavefile.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "-tags", "stave", "./...")
}

// Merge benchmarks tree assembly and merging.
func (Bench) Merge() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=Assemble|Merge", "-benchmem", "./pkg/bracketast/")
}

func gotestsum(format string, args ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := append([]string{"tool", "gotestsum", "-f", format, "--", "-race", "-p", procs, "-parallel", procs}, args...)
	return sh.RunV("go", cmdArgs...)
}

// ldflags injects version, commit and build date into cmd/brackettree.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
