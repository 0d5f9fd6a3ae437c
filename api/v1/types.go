// Package v1 defines the public data types shared across all ephem layers.
package v1

import (
	"time"

	"github.com/kepler-works/ephem/pkg/vec3"
)

// ─────────────────────────────────────────────────────────────────────────────
// Enumerations
// ─────────────────────────────────────────────────────────────────────────────

// Correction selects the aberration correction applied to a state query.
type Correction string

const (
	// CorrectionNone returns the uncorrected geometric state.
	CorrectionNone Correction = "none"
	// CorrectionLT corrects for one-way light travel time.
	CorrectionLT Correction = "lt"
	// CorrectionLTS corrects for light time and stellar aberration.
	CorrectionLTS Correction = "lt+s"
)

// KernelStatus represents the last known condition of a registered kernel.
type KernelStatus string

const (
	KernelOK      KernelStatus = "ok"
	KernelMissing KernelStatus = "missing"
	KernelCorrupt KernelStatus = "corrupt"
	KernelUnknown KernelStatus = "unknown"
)

// ExportFormat selects the on-disk representation of an exported trajectory.
type ExportFormat string

const (
	// FormatCSV writes an X,Y,Z position table with a header row.
	FormatCSV ExportFormat = "csv"
	// FormatTable writes fixed-point epoch/position/velocity rows.
	FormatTable ExportFormat = "table"
	// FormatJSON writes the full trajectory document.
	FormatJSON ExportFormat = "json"
)

// ─────────────────────────────────────────────────────────────────────────────
// Specification types (derived from ephem.yaml)
// ─────────────────────────────────────────────────────────────────────────────

// KernelSpec is the declarative definition of an ephemeris kernel from ephem.yaml.
type KernelSpec struct {
	Name    string `yaml:"name"    mapstructure:"name"`
	Path    string `yaml:"path"    mapstructure:"path"`
	Default bool   `yaml:"default" mapstructure:"default"`
}

// QueryDefaults holds the fallback query parameters from ephem.yaml.
type QueryDefaults struct {
	Frame      string `yaml:"frame"      mapstructure:"frame"`
	Observer   string `yaml:"observer"   mapstructure:"observer"`
	Correction string `yaml:"correction" mapstructure:"correction"`
	Samples    int    `yaml:"samples"    mapstructure:"samples"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Trajectory value types
// ─────────────────────────────────────────────────────────────────────────────

// Sample is one point of a trajectory: an epoch paired with the body's
// Cartesian state at that instant.
type Sample struct {
	Epoch    float64   `json:"epoch"`    // TDB seconds past J2000
	Position vec3.Vec3 `json:"position"` // km
	Velocity vec3.Vec3 `json:"velocity"` // km/s
}

// StateVector is a Sample augmented with query metadata.
type StateVector struct {
	Sample
	LightTime float64 `json:"light_time"` // one-way light time, seconds
}

// TrajectoryRequest identifies a windowed relative-state query.
type TrajectoryRequest struct {
	Target     string     `json:"target"`
	Observer   string     `json:"observer"`
	Frame      string     `json:"frame"`
	From       float64    `json:"from"` // ET
	To         float64    `json:"to"`   // ET
	Samples    int        `json:"samples"`
	Correction Correction `json:"correction"`
}

// Trajectory is a computed (and cacheable) windowed query result.
type Trajectory struct {
	Request     TrajectoryRequest `json:"request"`
	Kernel      string            `json:"kernel"`
	Samples     []Sample          `json:"samples"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Runtime state types (persisted in BoltDB)
// ─────────────────────────────────────────────────────────────────────────────

// KernelMeta is the header metadata read from a DE kernel file.
type KernelMeta struct {
	Name           string  `json:"name"`             // ephemeris designation, e.g. DE430
	StartJD        float64 `json:"start_jd"`         // coverage start, Julian Ephemeris Date
	EndJD          float64 `json:"end_jd"`           // coverage end, Julian Ephemeris Date
	StepDays       float64 `json:"step_days"`        // record granule length
	AUKm           float64 `json:"au_km"`            // kilometres per astronomical unit
	EarthMoonRatio float64 `json:"earth_moon_ratio"` // Earth/Moon mass ratio
	Constants      int     `json:"constants"`        // header constant count
}

// KernelRecord is the persisted runtime record for a registered kernel.
type KernelRecord struct {
	Spec        KernelSpec   `json:"spec"`
	Status      KernelStatus `json:"status"`
	AddedAt     time.Time    `json:"added_at"`
	LastChecked time.Time    `json:"last_checked"`
	Meta        *KernelMeta  `json:"meta,omitempty"`
	CheckError  string       `json:"check_error,omitempty"`
}

// ExportRecord is an immutable audit record of a trajectory export.
type ExportRecord struct {
	ID        string       `json:"id"`
	Path      string       `json:"path"`
	Format    ExportFormat `json:"format"`
	Target    string       `json:"target"`
	Observer  string       `json:"observer"`
	Samples   int          `json:"samples"`
	Bytes     int64        `json:"bytes"`
	CreatedAt time.Time    `json:"created_at"`
}
