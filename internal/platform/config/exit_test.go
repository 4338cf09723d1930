package config_test

import (
	"log"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/louisbranch/facility-bookings/internal/platform/config"
)

// os.Exit cannot be intercepted in-process, so the test re-runs itself.
func TestExitfExitsWithCode1(t *testing.T) {
	if os.Getenv("BOOKINGS_TEST_EXITF_SUBPROCESS") == "1" {
		log.SetPrefix("[BOOKINGS] ")
		config.Exitf("invalid config: %s", "BOOKINGS_DB_DRIVER")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfExitsWithCode1$")
	cmd.Env = append(os.Environ(), "BOOKINGS_TEST_EXITF_SUBPROCESS=1")

	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("exit code = %d, want 1", exitErr.ExitCode())
	}
	want := "[BOOKINGS] invalid config: BOOKINGS_DB_DRIVER"
	if !strings.Contains(string(out), want) {
		t.Fatalf("stderr = %q, want %q", string(out), want)
	}
}
