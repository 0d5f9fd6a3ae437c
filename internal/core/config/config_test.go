package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	v1 "github.com/kepler-works/ephem/api/v1"
)

// writeConfig drops a config file into a temp dir and returns its path.
// HOME is pointed at the same dir so no global config leaks in.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "ephem.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
version: "1"
project:
  name: mars-study
kernels:
  - name: de440
    path: /data/de440.bin
    default: true
  - name: de421
    path: /data/de421.bin
query:
  frame: IAU_MARS
  observer: SSB
  correction: none
  samples: 42
export:
  dir: /tmp/exports
  format: json
cache:
  enabled: false
  max_entries: 8
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Project.Name != "mars-study" {
		t.Errorf("project name = %q", cfg.Project.Name)
	}
	if len(cfg.Kernels) != 2 || cfg.Kernels[0].Name != "de440" || !cfg.Kernels[0].Default {
		t.Errorf("kernels = %+v", cfg.Kernels)
	}
	if cfg.Query.Frame != "IAU_MARS" || cfg.Query.Observer != "SSB" ||
		cfg.Query.Correction != "none" || cfg.Query.Samples != 42 {
		t.Errorf("query = %+v", cfg.Query)
	}
	if cfg.Export.Dir != "/tmp/exports" || cfg.Export.Format != "json" {
		t.Errorf("export = %+v", cfg.Export)
	}
	if cfg.Cache.Enabled || cfg.Cache.MaxEntries != 8 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
version: "1"
project:
  name: bare
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Query.Frame != "J2000" || cfg.Query.Observer != "EARTH" ||
		cfg.Query.Correction != "lt+s" || cfg.Query.Samples != 500 {
		t.Errorf("query defaults = %+v", cfg.Query)
	}
	if !cfg.Cache.Enabled || cfg.Cache.MaxEntries != 64 {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Export.Format != "csv" {
		t.Errorf("export format default = %q", cfg.Export.Format)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level default = %q", cfg.Log.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "duplicate kernel",
			yaml: "kernels:\n  - {name: a, path: /x}\n  - {name: a, path: /y}\n",
			want: "duplicate kernel",
		},
		{
			name: "two defaults",
			yaml: "kernels:\n  - {name: a, path: /x, default: true}\n  - {name: b, path: /y, default: true}\n",
			want: "one kernel may be marked default",
		},
		{
			name: "missing path",
			yaml: "kernels:\n  - {name: a}\n",
			want: "path is required",
		},
		{
			name: "bad samples",
			yaml: "query:\n  samples: 0\n",
			want: "query.samples",
		},
		{
			name: "bad export format",
			yaml: "export:\n  format: xml\n",
			want: "export.format",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeConfig(t, c.yaml)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("error = %v, want substring %q", err, c.want)
			}
		})
	}
}

func TestLoadExpandsKernelPaths(t *testing.T) {
	t.Setenv("KERNEL_ROOT", "/srv/kernels")
	path := writeConfig(t, `
kernels:
  - name: de440
    path: ${KERNEL_ROOT}/de440.bin
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Kernels[0].Path; got != "/srv/kernels/de440.bin" {
		t.Errorf("kernel path = %q, want env expanded", got)
	}
}

func TestKernelByName(t *testing.T) {
	cfg := &Config{Kernels: []v1.KernelSpec{
		{Name: "de421", Path: "/a"},
		{Name: "de440", Path: "/b"},
	}}

	if got := cfg.KernelByName("de440"); got == nil || got.Path != "/b" {
		t.Errorf("KernelByName(de440) = %+v", got)
	}
	if got := cfg.KernelByName("de999"); got != nil {
		t.Errorf("KernelByName(de999) = %+v, want nil", got)
	}
}

func TestDefaultKernel(t *testing.T) {
	none := &Config{}
	if got := none.DefaultKernel(); got != nil {
		t.Errorf("empty config default = %+v, want nil", got)
	}

	first := &Config{Kernels: []v1.KernelSpec{{Name: "a", Path: "/a"}, {Name: "b", Path: "/b"}}}
	if got := first.DefaultKernel(); got == nil || got.Name != "a" {
		t.Errorf("fallback default = %+v, want first kernel", got)
	}

	marked := &Config{Kernels: []v1.KernelSpec{
		{Name: "a", Path: "/a"},
		{Name: "b", Path: "/b", Default: true},
	}}
	if got := marked.DefaultKernel(); got == nil || got.Name != "b" {
		t.Errorf("marked default = %+v, want b", got)
	}
}
