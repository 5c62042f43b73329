package veil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veildev/veil/internal/build"
	"github.com/veildev/veil/internal/metafile"
)

func setupProject(t *testing.T, cfgYAML string, files map[string]string) string {
	t.Helper()
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "veil.yaml"), []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}
	for rel, content := range files {
		abs := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestNewAndApply(t *testing.T) {
	root := setupProject(t, "version: 1\nmetafile: meta.json\n", map[string]string{
		"dist/app.js":  "function secret() {}\nsecret();\n",
		"dist/app.css": "body {}\n",
		"meta.json":    `{"outputs": {"dist/app.js": {"bytes": 30}, "dist/app.css": {"bytes": 8}}}`,
	})

	client, err := New(Options{ProjectRoot: root})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := client.Apply(context.Background()); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	js, _ := os.ReadFile(filepath.Join(root, "dist/app.js"))
	if strings.Contains(string(js), "secret") {
		t.Error("function name should have been renamed")
	}
	css, _ := os.ReadFile(filepath.Join(root, "dist/app.css"))
	if string(css) != "body {}\n" {
		t.Error("non-matching file must stay byte-identical")
	}
}

func TestApplyMissingMetafileIsSoft(t *testing.T) {
	root := setupProject(t, "version: 1\nmetafile: meta.json\n", map[string]string{
		"dist/app.js": "function keep() {}\n",
	})

	client, err := New(Options{ProjectRoot: root})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := client.Apply(context.Background()); err != nil {
		t.Fatalf("Apply with missing metafile should not error: %v", err)
	}

	js, _ := os.ReadFile(filepath.Join(root, "dist/app.js"))
	if string(js) != "function keep() {}\n" {
		t.Error("outputs must pass through unmodified")
	}
}

func TestApplyMalformedMetafileErrors(t *testing.T) {
	root := setupProject(t, "version: 1\nmetafile: meta.json\n", map[string]string{
		"meta.json": `{"outputs": `,
	})

	client, err := New(Options{ProjectRoot: root})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := client.Apply(context.Background()); err == nil {
		t.Fatal("expected error for malformed metafile")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	root := setupProject(t, "version: 7\n", nil)

	if _, err := New(Options{ProjectRoot: root}); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestRegisterRunsHookOnLifecycleEnd(t *testing.T) {
	root := setupProject(t, "version: 1\nmetafile: meta.json\n", map[string]string{
		"dist/app.js": "function hidden() {}\nhidden();\n",
	})

	client, err := New(Options{ProjectRoot: root})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	lc := &recordingLifecycle{}
	client.Register(lc)
	if len(lc.fns) != 1 {
		t.Fatalf("want 1 registered callback, got %d", len(lc.fns))
	}

	res := &build.Result{Metafile: &metafile.Metafile{Outputs: map[string]metafile.Output{
		"dist/app.js": {},
	}}}
	if err := lc.fns[0](context.Background(), res); err != nil {
		t.Fatalf("callback: %v", err)
	}

	js, _ := os.ReadFile(filepath.Join(root, "dist/app.js"))
	if strings.Contains(string(js), "hidden") {
		t.Error("registered hook should have transformed the output")
	}
}

type recordingLifecycle struct {
	fns []build.EndFunc
}

func (r *recordingLifecycle) OnEnd(fn build.EndFunc) {
	r.fns = append(r.fns, fn)
}
