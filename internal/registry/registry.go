// Package registry: kernel registry — CRUD operations backed by BoltDB via the state package.
package registry

import (
	"time"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/core/state"
	"github.com/kepler-works/ephem/pkg/errs"
)

// Registry wraps state.DB for kernel-specific operations.
type Registry struct {
	db *state.DB
}

// New constructs a Registry.
func New(db *state.DB) *Registry {
	return &Registry{db: db}
}

// Add registers a new kernel. Returns an error if the name is already taken.
func (r *Registry) Add(spec v1.KernelSpec) error {
	const op = "registry.add"
	existing, err := r.db.GetKernel(spec.Name)
	if err != nil {
		return errs.Wrap(err, errs.ErrStateRead, op)
	}
	if existing != nil {
		return errs.Newf(errs.ErrKernelExists, op, "kernel %q already registered", spec.Name).
			WithResource(spec.Name).
			WithAdvice("Run 'ephem kernels rm " + spec.Name + "' first, or pick another name.")
	}
	rec := v1.KernelRecord{
		Spec:    spec,
		Status:  v1.KernelUnknown,
		AddedAt: time.Now().UTC(),
	}
	if spec.Default {
		if err := r.clearDefault(); err != nil {
			return err
		}
	}
	return r.db.PutKernel(rec)
}

// Remove deletes a kernel from the registry.
func (r *Registry) Remove(name string) error {
	const op = "registry.remove"
	existing, err := r.db.GetKernel(name)
	if err != nil {
		return errs.Wrap(err, errs.ErrStateRead, op)
	}
	if existing == nil {
		return errs.Newf(errs.ErrKernelNotFound, op, "kernel %q not found", name).WithResource(name)
	}
	return r.db.DeleteKernel(name)
}

// Get returns the KernelRecord for name, or an error if not registered.
func (r *Registry) Get(name string) (v1.KernelRecord, error) {
	const op = "registry.get"
	rec, err := r.db.GetKernel(name)
	if err != nil {
		return v1.KernelRecord{}, errs.Wrap(err, errs.ErrStateRead, op)
	}
	if rec == nil {
		return v1.KernelRecord{}, errs.Newf(errs.ErrKernelNotFound, op, "kernel %q not registered", name).
			WithResource(name).
			WithAdvice("Run 'ephem kernels ls' to see registered kernels.")
	}
	return *rec, nil
}

// List returns all registered kernels.
func (r *Registry) List() ([]v1.KernelRecord, error) {
	return r.db.ListKernels()
}

// Default returns the kernel marked default. With exactly one kernel
// registered, that kernel is the implicit default.
func (r *Registry) Default() (v1.KernelRecord, error) {
	const op = "registry.default"
	recs, err := r.db.ListKernels()
	if err != nil {
		return v1.KernelRecord{}, errs.Wrap(err, errs.ErrStateRead, op)
	}
	for _, rec := range recs {
		if rec.Spec.Default {
			return rec, nil
		}
	}
	if len(recs) == 1 {
		return recs[0], nil
	}
	return v1.KernelRecord{}, errs.New(errs.ErrKernelNotFound, op, nil).
		WithAdvice("No default kernel. Run 'ephem kernels default <name>' or pass --kernel.")
}

// SetDefault marks the named kernel as the default, clearing any previous one.
func (r *Registry) SetDefault(name string) error {
	rec, err := r.Get(name)
	if err != nil {
		return err
	}
	if err := r.clearDefault(); err != nil {
		return err
	}
	rec.Spec.Default = true
	return r.db.PutKernel(rec)
}

// MarkOK records a successful check, attaching the freshly read header metadata.
func (r *Registry) MarkOK(name string, meta *v1.KernelMeta) error {
	rec, err := r.Get(name)
	if err != nil {
		return err
	}
	rec.Status = v1.KernelOK
	rec.LastChecked = time.Now().UTC()
	rec.CheckError = ""
	rec.Meta = meta
	return r.db.PutKernel(rec)
}

// MarkBroken records a failed check with the given status and message.
func (r *Registry) MarkBroken(name string, status v1.KernelStatus, msg string) error {
	return r.db.UpdateKernelStatus(name, status, msg)
}

func (r *Registry) clearDefault() error {
	recs, err := r.db.ListKernels()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if rec.Spec.Default {
			rec.Spec.Default = false
			if err := r.db.PutKernel(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
