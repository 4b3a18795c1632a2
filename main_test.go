package main

import (
	"testing"

	"CalmBoard/internal/config"
)

func TestListenPort(t *testing.T) {
	tests := []struct {
		addr    string
		want    int
		wantErr bool
	}{
		{":5001", 5001, false},
		{"127.0.0.1:8080", 8080, false},
		{":0", 0, true},
		{"nope", 0, true},
	}
	for _, tt := range tests {
		got, err := listenPort(tt.addr)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("listenPort(%q) = %d, %v; want %d, err=%v", tt.addr, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestResolveEndpoint(t *testing.T) {
	cfg := &config.Config{AnalyzeURL: "ws://board.local/ws/analyze", Discover: true}
	if got := resolveEndpoint(cfg); got != cfg.AnalyzeURL {
		t.Errorf("resolveEndpoint = %q, want configured URL", got)
	}
	cfg = &config.Config{}
	if got := resolveEndpoint(cfg); got != config.DefaultAnalyzeURL {
		t.Errorf("resolveEndpoint = %q, want default", got)
	}
}

func TestRootCommand_Flags(t *testing.T) {
	cfg := &config.Config{Width: 100}
	cmd := newRootCommand(cfg)
	if err := cmd.ParseFlags([]string{"--analyze-url", "http://x/analyze", "--width", "640"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.AnalyzeURL != "http://x/analyze" || cfg.Width != 640 {
		t.Errorf("cfg %+v", cfg)
	}
	serve, _, err := cmd.Find([]string{"serve"})
	if err != nil || serve.Name() != "serve" {
		t.Errorf("serve command missing: %v", err)
	}
}
