package mtran_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/mtran/internal/mtran"
	"horse.fit/mtran/internal/stubserver"
)

func newStub(t *testing.T, opts stubserver.Options) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(stubserver.New(zerolog.Nop(), opts).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPTransportAgainstStubServer(t *testing.T) {
	t.Parallel()

	srv := newStub(t, stubserver.Options{Token: "abc", Version: "1.2.3", Models: []string{"enfr"}})
	client := mtran.NewClient(mtran.NewHTTPTransport(zerolog.Nop()), mtran.WithPolicy(mtran.Policy{PreflightHealthCheck: true}))
	cfg := &mtran.Config{APIURL: srv.URL + "/", Token: "abc"}
	ctx := context.Background()

	if !client.CheckHealth(ctx, cfg) {
		t.Fatalf("expected stub server to be healthy")
	}

	got, err := client.Translate(ctx, cfg, mtran.TranslateRequest{Text: "hello", From: "auto", To: "fr", Detect: "en"})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "[fr] hello" {
		t.Fatalf("unexpected translation: %q", got)
	}

	results, err := client.BatchTranslate(ctx, cfg, mtran.BatchTranslateRequest{Texts: []string{"a", "b"}, From: "en", To: "de"})
	if err != nil {
		t.Fatalf("batch translate: %v", err)
	}
	if strings.Join(results, "|") != "[de] a|[de] b" {
		t.Fatalf("unexpected results: %v", results)
	}

	version, err := client.Version(ctx, cfg)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if version != "1.2.3" {
		t.Fatalf("unexpected version: %q", version)
	}

	models, err := client.Models(ctx, cfg)
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	if len(models) != 1 || models[0].Name != "enfr" {
		t.Fatalf("unexpected models: %+v", models)
	}
}

func TestHTTPTransportSurfacesServerErrors(t *testing.T) {
	t.Parallel()

	srv := newStub(t, stubserver.Options{
		Translate: func(_, _, _ string) (string, error) {
			return "", errors.New("overloaded")
		},
	})
	client := mtran.NewClient(nil)

	_, err := client.Translate(context.Background(), &mtran.Config{APIURL: srv.URL}, mtran.TranslateRequest{Text: "hello", From: "en", To: "fr"})
	var mErr *mtran.Error
	if !errors.As(err, &mErr) {
		t.Fatalf("expected *mtran.Error, got %v", err)
	}
	if mErr.Status != http.StatusInternalServerError || !strings.Contains(mErr.Error(), "overloaded") {
		t.Fatalf("unexpected error: %v", mErr)
	}
}

func TestHTTPTransportRejectsWrongToken(t *testing.T) {
	t.Parallel()

	srv := newStub(t, stubserver.Options{Token: "abc"})
	client := mtran.NewClient(nil)

	_, err := client.Translate(context.Background(), &mtran.Config{APIURL: srv.URL, Token: "Bearer abc"}, mtran.TranslateRequest{Text: "hello", From: "en", To: "fr"})
	if !errors.Is(err, mtran.ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	var mErr *mtran.Error
	if !errors.As(err, &mErr) || mErr.Status != http.StatusUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTPTransportTimesOut(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := mtran.NewClient(nil, mtran.WithTimeouts(100*time.Millisecond, 100*time.Millisecond))
	cfg := &mtran.Config{APIURL: srv.URL}

	_, err := client.Translate(context.Background(), cfg, mtran.TranslateRequest{Text: "hello", From: "en", To: "fr"})
	if !errors.Is(err, mtran.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	var mErr *mtran.Error
	if !errors.As(err, &mErr) || mErr.Status != mtran.StatusTimeout {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.CheckHealth(context.Background(), cfg) {
		t.Fatalf("expected hung server to be unhealthy")
	}
}

func TestHTTPTransportConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client := mtran.NewClient(nil)
	_, err := client.Version(context.Background(), &mtran.Config{APIURL: addr})
	if !errors.Is(err, mtran.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	var mErr *mtran.Error
	if !errors.As(err, &mErr) || mErr.Status != mtran.StatusNetwork {
		t.Fatalf("unexpected error: %v", err)
	}
}
