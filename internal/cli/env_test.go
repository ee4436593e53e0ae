package cli

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvLoaderLoadsRequestedFile(t *testing.T) {
	t.Setenv(EnvFileVar, "")
	t.Setenv("MTRAN_TOKEN", "before")

	path := filepath.Join(t.TempDir(), "mtran.env")
	if err := os.WriteFile(path, []byte("MTRAN_TOKEN=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	loader := AddEnvFlag(fs, ".env", "")
	if err := fs.Parse([]string{"--env", path}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != path {
		t.Fatalf("unexpected loaded path: got %q want %q", loaded, path)
	}
	if got := os.Getenv("MTRAN_TOKEN"); got != "from-file" {
		t.Fatalf("expected file to override env, got %q", got)
	}
}

func TestEnvLoaderReportsMissingFile(t *testing.T) {
	t.Setenv(EnvFileVar, "")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	loader := AddEnvFlag(fs, filepath.Join(t.TempDir(), "missing.env"), "")
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loader.Load(); err == nil {
		t.Fatalf("expected missing env file to fail")
	}
}

func TestEnvLoaderCandidateOrder(t *testing.T) {
	t.Setenv(EnvFileVar, "/etc/mtran.env")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	loader := AddEnvFlag(fs, ".env", "")
	if err := fs.Parse([]string{"--env", filepath.Join("config", "dev.env")}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	candidates := loader.candidates()
	want := []string{"/etc/mtran.env", filepath.Join("config", "dev.env"), "dev.env", ".env"}
	if len(candidates) != len(want) {
		t.Fatalf("unexpected candidate count: got %d want %d (%+v)", len(candidates), len(want), candidates)
	}
	for i, path := range want {
		if candidates[i].path != path {
			t.Fatalf("candidate %d: got %q want %q", i, candidates[i].path, path)
		}
	}
}
