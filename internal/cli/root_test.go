package cli

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestVersionFlag(t *testing.T) {
	cmd := Root()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if out.String() != version {
		t.Fatalf("version output %q", out.String())
	}
}

func TestServeFailsOnMissingConfig(t *testing.T) {
	cmd := Root()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestRejectsArguments(t *testing.T) {
	cmd := Root()
	cmd.SetArgs([]string{"extra"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for a positional argument")
	}
}
