//go:build basic || database

package integration

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

const (
	oldFixture = "core/testdata/old.json"
	newFixture = "core/testdata/new.json"
)

var (
	// sharedDocdiffPath holds the path to a shared docdiff binary built once for all tests.
	sharedDocdiffPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getDocdiffBinary returns the path to the docdiff binary, building it once if needed.
func getDocdiffBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "docdiff-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		docdiffPath := filepath.Join(tempDir, "docdiff")
		buildCmd := exec.Command("go", "build", "-o", docdiffPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build docdiff: %v", err))
		}

		sharedDocdiffPath = docdiffPath
	})

	return sharedDocdiffPath
}

// commandResult is the captured outcome of one docdiff invocation.
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runDocdiff runs docdiff from the project root with an isolated HOME.
func runDocdiff(t *testing.T, home string, args ...string) commandResult {
	t.Helper()
	cmd := exec.Command(getDocdiffBinary(), args...)
	cmd.Dir = "../" // Run from project root
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	res := commandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case err != nil:
		t.Fatalf("failed to run %s: %v", cmd.String(), err)
	}
	if res.ExitCode != 0 {
		t.Logf("Command exited %d: %s\nStderr: %s", res.ExitCode, cmd.String(), res.Stderr)
	}
	return res
}
