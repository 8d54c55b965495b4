//go:build integration

package itest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/forPelevin/ytdigest/internal/pipeline"
	"github.com/forPelevin/ytdigest/internal/ports/adapters/openrouter"
	"github.com/forPelevin/ytdigest/internal/types"
)

const captionsJSON3 = `{"events":[
	{"tStartMs":0,"segs":[{"utf8":"Today we compare goroutines and threads."}]},
	{"tStartMs":4000,"segs":[{"utf8":"Goroutines start small and grow their stacks."}]},
	{"tStartMs":9000,"segs":[{"utf8":"Channels connect goroutines without shared memory."}]},
	{"tStartMs":15000,"segs":[{"utf8":"Buffered channels decouple producers from consumers."}]}
]}`

func TestE2E_MockMode(t *testing.T) {
	captions := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fmt") != "json3" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(captionsJSON3))
	}))
	defer captions.Close()

	outDir := filepath.Join(t.TempDir(), "out")
	cfg := pipeline.Config{
		Input:        "https://youtu.be/dQw4w9WgXcQ",
		OutDir:       outDir,
		Formats:      []string{"markdown", "html", "text", "json"},
		TimedtextURL: captions.URL,
		Options: types.Options{
			DetailLevel:       types.DetailBrief,
			GenerateWordCloud: true,
			ShowRawTranscript: true,
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rep, err := pipeline.Run(ctx, cfg)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if len(rep.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(rep.Results))
	}
	res := rep.Results[0]
	if !res.Degraded || res.Source != types.SourceMock {
		t.Fatalf("expected degraded mock result, got source=%s degraded=%v", res.Source, res.Degraded)
	}
	if res.Duration != "0:15" {
		t.Fatalf("duration = %q, want 0:15", res.Duration)
	}
	if res.ProcessingCost == nil || res.ProcessingCost.Tokens != 200 {
		t.Fatalf("unexpected cost: %+v", res.ProcessingCost)
	}
	if len(res.RawTranscript) != 4 {
		t.Fatalf("expected raw transcript copy, got %d segments", len(res.RawTranscript))
	}

	b, err := os.ReadFile(rep.ManifestPath)
	if err != nil {
		t.Fatalf("missing manifest: %v", err)
	}
	var m types.Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(m.Videos) != 1 || len(m.Videos[0].Files) != 4 {
		t.Fatalf("unexpected manifest: %s", string(b))
	}
	for _, name := range m.Videos[0].Files {
		if _, err := os.Stat(filepath.Join(rep.RunDir, name)); err != nil {
			t.Fatalf("missing export %s: %v", name, err)
		}
	}
}

func TestE2E_Live(t *testing.T) {
	if os.Getenv("OPENROUTER_API_KEY") == "" {
		t.Skip("OPENROUTER_API_KEY is required for the live run")
	}

	outDir := filepath.Join(t.TempDir(), "out")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg := pipeline.Config{
		Input:                  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		OutDir:                 outDir,
		Formats:                []string{"json"},
		Options:                types.Options{DetailLevel: types.DetailBrief},
		OpenRouterAPIKey:       os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:        os.Getenv("OPENROUTER_MODEL"),
		OpenRouterBaseURL:      os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterAllowedHosts: openrouter.ParseAllowedHosts(os.Getenv("OPENROUTER_ALLOWED_HOSTS")),
		YouTubeAPIKey:          os.Getenv("YOUTUBE_API_KEY"),
	}
	if cfg.OpenRouterModel == "" {
		cfg.OpenRouterModel = openrouter.DefaultModel
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	rep, err := pipeline.Run(ctx, cfg)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if !strings.HasSuffix(rep.ManifestPath, "manifest.json") {
		t.Fatalf("unexpected manifest path %q", rep.ManifestPath)
	}
	if len(rep.Results) == 1 && rep.Results[0].Degraded {
		t.Logf("live run degraded to demonstration data")
	}
}
