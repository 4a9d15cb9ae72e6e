package artshop

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("artshop", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "artshop.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Command != "state" {
		t.Fatalf("expected default command state, got %q", cfg.Command)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("artshop", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "/tmp/game.db", "paintings"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/game.db" {
		t.Fatalf("expected db override, got %q", cfg.DBPath)
	}
	if cfg.Command != "paintings" {
		t.Fatalf("expected paintings command, got %q", cfg.Command)
	}
}

func TestRunStateCommand(t *testing.T) {
	cfg := Config{
		DBPath:  filepath.Join(t.TempDir(), "artshop.db"),
		Command: "state",
	}
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run state: %v", err)
	}
	if !strings.Contains(out.String(), "coins: 50") {
		t.Fatalf("expected starting coins in output, got %q", out.String())
	}
	if !strings.Contains(out.String(), "canvas: Small (400x300)") {
		t.Fatalf("expected canvas line in output, got %q", out.String())
	}
}

func TestRunPaintingsCommandEmpty(t *testing.T) {
	cfg := Config{
		DBPath:  filepath.Join(t.TempDir(), "artshop.db"),
		Command: "paintings",
	}
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run paintings: %v", err)
	}
	if !strings.Contains(out.String(), "no paintings yet") {
		t.Fatalf("expected empty gallery message, got %q", out.String())
	}
}

func TestRunResetCommand(t *testing.T) {
	cfg := Config{
		DBPath:  filepath.Join(t.TempDir(), "artshop.db"),
		Command: "reset",
	}
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run reset: %v", err)
	}
	if !strings.Contains(out.String(), "reset") {
		t.Fatalf("expected reset confirmation, got %q", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	cfg := Config{
		DBPath:  filepath.Join(t.TempDir(), "artshop.db"),
		Command: "paint",
	}
	if err := Run(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
