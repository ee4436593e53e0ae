package batchfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseValidJob(t *testing.T) {
	t.Parallel()

	job, err := Parse([]byte(`{"to":"fr","texts":["a","b"]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	req := job.Request()
	if req.From != "auto" || req.To != "fr" {
		t.Fatalf("unexpected languages: %+v", req)
	}
	if strings.Join(req.Texts, ",") != "a,b" {
		t.Fatalf("unexpected texts: %v", req.Texts)
	}
}

func TestParseRejectsInvalidJobs(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":          ``,
		"missing texts":  `{"to":"fr"}`,
		"empty texts":    `{"to":"fr","texts":[]}`,
		"non-string":     `{"to":"fr","texts":["a",1]}`,
		"unknown field":  `{"to":"fr","texts":["a"],"format":"html"}`,
		"blank target":   `{"to":"  ","texts":["a"]}`,
		"trailing value": `{"to":"fr","texts":["a"]} {}`,
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("%s: expected parse to fail", name)
		}
	}
}

func TestLoadReadsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "job.json")
	if err := os.WriteFile(path, []byte(`{"from":"en","to":"de","detect":"","texts":["hello"]}`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	job, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if job.From != "en" || job.To != "de" || len(job.Texts) != 1 {
		t.Fatalf("unexpected job: %+v", job)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}
