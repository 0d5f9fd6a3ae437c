package verify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	v1 "github.com/kepler-works/ephem/api/v1"
)

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := CheckFile(filepath.Join(dir, "missing.bin")); err == nil {
		t.Error("missing file should fail")
	}

	if _, err := CheckFile(dir); err == nil {
		t.Error("directory should fail")
	}

	tiny := filepath.Join(dir, "tiny.bin")
	if err := os.WriteFile(tiny, []byte("DE"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CheckFile(tiny); err == nil {
		t.Error("undersized file should fail")
	}

	big := filepath.Join(dir, "big.bin")
	if err := os.WriteFile(big, make([]byte, 3*minKernelSize), 0o644); err != nil {
		t.Fatal(err)
	}
	detail, err := CheckFile(big)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if !strings.Contains(detail, "MiB") {
		t.Errorf("detail = %q, want size summary", detail)
	}
}

func TestCheckCoverage(t *testing.T) {
	good := v1.KernelMeta{StartJD: 2287184.5, EndJD: 2688976.5, StepDays: 32}
	detail, err := CheckCoverage(good)
	if err != nil {
		t.Fatalf("CheckCoverage: %v", err)
	}
	if !strings.Contains(detail, "JD") {
		t.Errorf("detail = %q, want JD window", detail)
	}

	inverted := v1.KernelMeta{StartJD: 2688976.5, EndJD: 2287184.5, StepDays: 32}
	if _, err := CheckCoverage(inverted); err == nil {
		t.Error("inverted window should fail")
	}

	zeroStep := v1.KernelMeta{StartJD: 2287184.5, EndJD: 2688976.5}
	if _, err := CheckCoverage(zeroStep); err == nil {
		t.Error("zero step should fail")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    v1.KernelStatus
	}{
		{
			name: "all pass",
			results: []Result{
				{Name: "file", Passed: true},
				{Name: "header", Passed: true},
				{Name: "coverage", Passed: true},
				{Name: "probe", Passed: true},
			},
			want: v1.KernelOK,
		},
		{
			name:    "file missing",
			results: []Result{{Name: "file", Passed: false}},
			want:    v1.KernelMissing,
		},
		{
			name: "bad header",
			results: []Result{
				{Name: "file", Passed: true},
				{Name: "header", Passed: false},
			},
			want: v1.KernelCorrupt,
		},
		{
			name: "probe failure",
			results: []Result{
				{Name: "file", Passed: true},
				{Name: "header", Passed: true},
				{Name: "coverage", Passed: true},
				{Name: "probe", Passed: false},
			},
			want: v1.KernelCorrupt,
		},
		{
			name: "no results",
			want: v1.KernelUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.results); got != tt.want {
				t.Errorf("Status = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailed(t *testing.T) {
	results := []Result{
		{Name: "file", Passed: true},
		{Name: "header", Passed: false, Detail: "bad magic"},
		{Name: "coverage", Passed: false},
	}
	r, ok := Failed(results)
	if !ok {
		t.Fatal("Failed should report the failure")
	}
	if r.Name != "header" {
		t.Errorf("first failure = %q, want header", r.Name)
	}

	if _, ok := Failed([]Result{{Name: "file", Passed: true}}); ok {
		t.Error("Failed on all-pass suite should report none")
	}
}
