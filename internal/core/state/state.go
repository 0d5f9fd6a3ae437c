// Package state manages ephem's persistent state using BoltDB.
// All writes are transactional; reads use read-only transactions to minimise contention.
package state

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	v1 "github.com/kepler-works/ephem/api/v1"
)

// Bucket names
var (
	bucketKernels      = []byte("kernels")
	bucketTrajectories = []byte("trajectories")
	bucketExports      = []byte("exports")
)

// DB wraps a BoltDB instance with typed accessor methods.
type DB struct {
	bolt *bbolt.DB
}

// Open opens (or creates) the state database at the given path.
func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state db %q: %w", path, err)
	}

	// Ensure all buckets exist
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketKernels, bucketTrajectories, bucketExports} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %q: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}

	return &DB{bolt: db}, nil
}

// Close closes the underlying BoltDB file.
func (db *DB) Close() error {
	return db.bolt.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Kernel operations
// ─────────────────────────────────────────────────────────────────────────────

// PutKernel upserts a KernelRecord.
func (db *DB) PutKernel(rec v1.KernelRecord) error {
	return db.putJSON(bucketKernels, rec.Spec.Name, rec)
}

// GetKernel retrieves a KernelRecord by name. Returns nil, nil if not found.
func (db *DB) GetKernel(name string) (*v1.KernelRecord, error) {
	var rec v1.KernelRecord
	found, err := db.getJSON(bucketKernels, name, &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}

// DeleteKernel removes a kernel record.
func (db *DB) DeleteKernel(name string) error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketKernels).Delete([]byte(name))
	})
}

// ListKernels returns all registered kernels.
func (db *DB) ListKernels() ([]v1.KernelRecord, error) {
	var recs []v1.KernelRecord
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketKernels).ForEach(func(k, v []byte) error {
			var rec v1.KernelRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal kernel %q: %w", k, err)
			}
			recs = append(recs, rec)
			return nil
		})
	})
	return recs, err
}

// UpdateKernelStatus updates only the status, last_checked, and check_error fields.
func (db *DB) UpdateKernelStatus(name string, status v1.KernelStatus, checkErr string) error {
	rec, err := db.GetKernel(name)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("kernel %q not found", name)
	}
	rec.Status = status
	rec.LastChecked = time.Now().UTC()
	rec.CheckError = checkErr
	return db.PutKernel(*rec)
}

// ─────────────────────────────────────────────────────────────────────────────
// Trajectory cache operations
// ─────────────────────────────────────────────────────────────────────────────

// TrajectoryKey derives the deterministic cache key for a windowed query
// against a given kernel. Epochs are keyed at microsecond precision.
func TrajectoryKey(kernel string, req v1.TrajectoryRequest) string {
	return fmt.Sprintf("%s|%s|%s|%s|%.6f|%.6f|%d|%s",
		kernel, req.Target, req.Observer, req.Frame,
		req.From, req.To, req.Samples, req.Correction)
}

// PutTrajectory caches a computed trajectory under its query key.
func (db *DB) PutTrajectory(key string, traj v1.Trajectory) error {
	return db.putJSON(bucketTrajectories, key, traj)
}

// GetTrajectory retrieves a cached trajectory. Returns nil, nil on a cache miss.
func (db *DB) GetTrajectory(key string) (*v1.Trajectory, error) {
	var traj v1.Trajectory
	found, err := db.getJSON(bucketTrajectories, key, &traj)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &traj, nil
}

// PruneTrajectories evicts the oldest cached trajectories until at most max
// entries remain. Returns the number of entries removed.
func (db *DB) PruneTrajectories(max int) (int, error) {
	if max < 0 {
		max = 0
	}
	type entry struct {
		key string
		at  time.Time
	}
	var entries []entry
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTrajectories).ForEach(func(k, v []byte) error {
			var digest struct {
				GeneratedAt time.Time `json:"generated_at"`
			}
			if err := json.Unmarshal(v, &digest); err != nil {
				return fmt.Errorf("unmarshal trajectory %q: %w", k, err)
			}
			entries = append(entries, entry{key: string(k), at: digest.GeneratedAt})
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	if len(entries) <= max {
		return 0, nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].at.Before(entries[j].at) })
	victims := entries[:len(entries)-max]
	err = db.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTrajectories)
		for _, e := range victims {
			if err := b.Delete([]byte(e.key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(victims), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Export history
// ─────────────────────────────────────────────────────────────────────────────

// PutExport appends an export record to the history.
func (db *DB) PutExport(rec v1.ExportRecord) error {
	return db.putJSON(bucketExports, rec.ID, rec)
}

// ListExports returns all export records for a given target body.
// Pass empty string to return all exports.
func (db *DB) ListExports(target string) ([]v1.ExportRecord, error) {
	var recs []v1.ExportRecord
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketExports).ForEach(func(k, v []byte) error {
			var r v1.ExportRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			if target == "" || r.Target == target {
				recs = append(recs, r)
			}
			return nil
		})
	})
	return recs, err
}

// ─────────────────────────────────────────────────────────────────────────────
// Generic helpers
// ─────────────────────────────────────────────────────────────────────────────

func (db *DB) putJSON(bucket []byte, key string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (db *DB) getJSON(bucket []byte, key string, out any) (bool, error) {
	var found bool
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucket).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, out)
	})
	return found, err
}
