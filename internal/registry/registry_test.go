package registry

import (
	"path/filepath"
	"testing"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/core/state"
	"github.com/kepler-works/ephem/pkg/errs"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	db, err := state.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("state.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestAddAndGet(t *testing.T) {
	r := newTestRegistry(t)

	spec := v1.KernelSpec{Name: "de430", Path: "/data/de430.bin"}
	if err := r.Add(spec); err != nil {
		t.Fatalf("Add: %v", err)
	}

	rec, err := r.Get("de430")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Spec.Path != "/data/de430.bin" {
		t.Errorf("path = %q, want /data/de430.bin", rec.Spec.Path)
	}
	if rec.Status != v1.KernelUnknown {
		t.Errorf("status = %q, want %q before first check", rec.Status, v1.KernelUnknown)
	}
	if rec.AddedAt.IsZero() {
		t.Error("added_at not stamped")
	}
}

func TestAddDuplicate(t *testing.T) {
	r := newTestRegistry(t)

	spec := v1.KernelSpec{Name: "de430", Path: "/data/de430.bin"}
	if err := r.Add(spec); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := r.Add(spec)
	if err == nil {
		t.Fatal("duplicate Add should fail")
	}
	if !errs.IsCode(err, errs.ErrKernelExists) {
		t.Errorf("error code = %v, want %s", err, errs.ErrKernelExists)
	}
}

func TestGetUnregistered(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Get("ghost")
	if err == nil {
		t.Fatal("Get on unregistered kernel should fail")
	}
	if !errs.IsCode(err, errs.ErrKernelNotFound) {
		t.Errorf("error code = %v, want %s", err, errs.ErrKernelNotFound)
	}
}

func TestRemove(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.Add(v1.KernelSpec{Name: "de430", Path: "/data/de430.bin"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Remove("de430"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := r.Get("de430"); !errs.IsCode(err, errs.ErrKernelNotFound) {
		t.Errorf("Get after Remove = %v, want %s", err, errs.ErrKernelNotFound)
	}
	if err := r.Remove("de430"); !errs.IsCode(err, errs.ErrKernelNotFound) {
		t.Errorf("second Remove = %v, want %s", err, errs.ErrKernelNotFound)
	}
}

func TestDefaultSelection(t *testing.T) {
	r := newTestRegistry(t)

	// No kernels: no default.
	if _, err := r.Default(); err == nil {
		t.Fatal("Default on empty registry should fail")
	}

	// Single kernel is the implicit default.
	if err := r.Add(v1.KernelSpec{Name: "de430", Path: "/data/de430.bin"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	rec, err := r.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if rec.Spec.Name != "de430" {
		t.Errorf("default = %q, want de430", rec.Spec.Name)
	}

	// Two kernels, neither marked: ambiguous.
	if err := r.Add(v1.KernelSpec{Name: "de440", Path: "/data/de440.bin"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Default(); err == nil {
		t.Fatal("Default with two unmarked kernels should fail")
	}

	// Explicit default wins.
	if err := r.SetDefault("de440"); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	rec, err = r.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if rec.Spec.Name != "de440" {
		t.Errorf("default = %q, want de440", rec.Spec.Name)
	}
}

func TestSetDefaultClearsPrevious(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.Add(v1.KernelSpec{Name: "de430", Path: "/a", Default: true}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(v1.KernelSpec{Name: "de440", Path: "/b"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.SetDefault("de440"); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}

	old, err := r.Get("de430")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if old.Spec.Default {
		t.Error("previous default not cleared")
	}
	recs, err := r.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	defaults := 0
	for _, rec := range recs {
		if rec.Spec.Default {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("default count = %d, want 1", defaults)
	}
}

func TestAddWithDefaultClearsPrevious(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.Add(v1.KernelSpec{Name: "de430", Path: "/a", Default: true}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(v1.KernelSpec{Name: "de440", Path: "/b", Default: true}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	old, err := r.Get("de430")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if old.Spec.Default {
		t.Error("previous default not cleared by Add")
	}
}

func TestMarkOKAndBroken(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.Add(v1.KernelSpec{Name: "de430", Path: "/a"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	meta := &v1.KernelMeta{Name: "DE430", StartJD: 2287184.5, EndJD: 2688976.5}
	if err := r.MarkOK("de430", meta); err != nil {
		t.Fatalf("MarkOK: %v", err)
	}
	rec, err := r.Get("de430")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != v1.KernelOK {
		t.Errorf("status = %q, want %q", rec.Status, v1.KernelOK)
	}
	if rec.Meta == nil || rec.Meta.Name != "DE430" {
		t.Errorf("meta = %+v, want DE430", rec.Meta)
	}

	if err := r.MarkBroken("de430", v1.KernelMissing, "no such file"); err != nil {
		t.Fatalf("MarkBroken: %v", err)
	}
	rec, err = r.Get("de430")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != v1.KernelMissing {
		t.Errorf("status = %q, want %q", rec.Status, v1.KernelMissing)
	}
	if rec.CheckError != "no such file" {
		t.Errorf("check_error = %q, want %q", rec.CheckError, "no such file")
	}
	// Header metadata from the last good check is retained.
	if rec.Meta == nil {
		t.Error("meta dropped by MarkBroken")
	}
}
