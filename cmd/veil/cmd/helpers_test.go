package cmd

import (
	"path/filepath"
	"testing"

	"github.com/veildev/veil/internal/config"
	"github.com/veildev/veil/internal/transform"
)

func TestNewTransformerScramble(t *testing.T) {
	cfg := &config.Config{Transformer: "scramble"}
	tr, err := newTransformer(cfg)
	if err != nil {
		t.Fatalf("newTransformer: %v", err)
	}
	if _, ok := tr.(transform.Scramble); !ok {
		t.Errorf("want Scramble, got %T", tr)
	}
}

func TestNewTransformerExec(t *testing.T) {
	cfg := &config.Config{Transformer: "exec", Command: []string{"obf", "--stdin"}}
	tr, err := newTransformer(cfg)
	if err != nil {
		t.Fatalf("newTransformer: %v", err)
	}
	e, ok := tr.(*transform.Exec)
	if !ok {
		t.Fatalf("want *Exec, got %T", tr)
	}
	if e.Command != "obf" || len(e.Args) != 1 || e.Args[0] != "--stdin" {
		t.Errorf("command split wrong: %+v", e)
	}
}

func TestNewTransformerExecWithoutCommand(t *testing.T) {
	cfg := &config.Config{Transformer: "exec"}
	if _, err := newTransformer(cfg); err == nil {
		t.Fatal("expected error for exec without command")
	}
}

func TestNewTransformerUnknown(t *testing.T) {
	cfg := &config.Config{Transformer: "wat"}
	if _, err := newTransformer(cfg); err == nil {
		t.Fatal("expected error for unknown transformer")
	}
}

func TestMetafilePath(t *testing.T) {
	cfg := &config.Config{Metafile: "meta.json"}
	got := metafilePath(cfg, "/proj")
	if got != filepath.Join("/proj", "meta.json") {
		t.Errorf("relative metafile: got %q", got)
	}

	cfg.Metafile = "/abs/meta.json"
	if metafilePath(cfg, "/proj") != "/abs/meta.json" {
		t.Error("absolute metafile should pass through")
	}

	cfg.Metafile = ""
	if metafilePath(cfg, "/proj") != "" {
		t.Error("empty metafile should stay empty")
	}
}
