package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/vedantwpatil/Mouse-Distance/internal/storage"
	"github.com/vedantwpatil/Mouse-Distance/internal/tracking"
	"github.com/vedantwpatil/Mouse-Distance/internal/units"
)

// Pointer source kinds
const (
	SourceHook = "hook"
	SourcePoll = "poll"
)

// DistanceFunc is called with the total and the latest delta, both in the
// configured unit.
type DistanceFunc func(total, delta float64) error

type Config struct {
	Tracking struct {
		RememberAcrossSessions bool
		DistanceUnit           units.Unit
		// OnDistanceChanged is optional; nil means no callback.
		OnDistanceChanged DistanceFunc
	}
	Storage struct {
		Path      string
		Namespace string
	}
	Source struct {
		Kind         string
		PollInterval time.Duration
	}
}

// NewConfig returns a fresh set of defaults. Every call builds a new value so
// trackers never share a defaults object.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.Tracking.RememberAcrossSessions = false
	cfg.Tracking.DistanceUnit = units.Millimeter
	cfg.Storage.Path = "mouse-tracker.db"
	cfg.Storage.Namespace = storage.DefaultNamespace
	cfg.Source.Kind = SourceHook
	cfg.Source.PollInterval = tracking.DefaultPollInterval
	return cfg
}

// Overrides holds user supplied settings. A nil field keeps the default.
type Overrides struct {
	RememberUser  *bool   `json:"remember_user,omitempty"`
	DistanceUnits *string `json:"distance_units,omitempty"`
	StorePath     *string `json:"store_path,omitempty"`
	Namespace     *string `json:"namespace,omitempty"`
	Source        *string `json:"source,omitempty"`
	PollInterval  *string `json:"poll_interval,omitempty"` // duration string like "16ms"
}

var knownKeys = map[string]bool{
	"remember_user":  true,
	"distance_units": true,
	"store_path":     true,
	"namespace":      true,
	"source":         true,
	"poll_interval":  true,
}

const maxFileSize = 1 * 1024 * 1024 // 1MB

// LoadOverrides reads overrides from a JSON file. Unrecognized keys are
// accepted and returned so the caller can warn about them.
func LoadOverrides(path string) (*Overrides, []string, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, nil, errors.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to stat config file")
	}
	if fileInfo.Size() > maxFileSize {
		return nil, nil, errors.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read config file")
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes JSON overrides and lists any keys it did not recognize.
func ParseOverrides(data []byte) (*Overrides, []string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse config JSON")
	}

	o := &Overrides{}
	if err := json.Unmarshal(data, o); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse config JSON")
	}

	var unknown []string
	for key := range raw {
		if !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return o, unknown, nil
}

// Merge returns a copy of c with every field present in o applied on top.
// c itself is never modified.
func (c Config) Merge(o Overrides) (Config, error) {
	merged := c
	if o.RememberUser != nil {
		merged.Tracking.RememberAcrossSessions = *o.RememberUser
	}
	if o.DistanceUnits != nil {
		unit, err := units.ParseUnit(*o.DistanceUnits)
		if err != nil {
			return c, err
		}
		merged.Tracking.DistanceUnit = unit
	}
	if o.StorePath != nil {
		merged.Storage.Path = *o.StorePath
	}
	if o.Namespace != nil {
		merged.Storage.Namespace = *o.Namespace
	}
	if o.Source != nil {
		merged.Source.Kind = *o.Source
	}
	if o.PollInterval != nil {
		d, err := time.ParseDuration(*o.PollInterval)
		if err != nil {
			return c, errors.Wrapf(err, "invalid poll_interval %q", *o.PollInterval)
		}
		merged.Source.PollInterval = d
	}
	return merged, merged.Validate()
}

// Validate checks the settings that cannot be fixed up silently.
func (c Config) Validate() error {
	if !units.IsValid(c.Tracking.DistanceUnit) {
		return &units.InvalidUnitError{Unit: string(c.Tracking.DistanceUnit)}
	}
	switch c.Source.Kind {
	case SourceHook, SourcePoll:
	default:
		return errors.Errorf("unknown pointer source %q (valid: %s, %s)", c.Source.Kind, SourceHook, SourcePoll)
	}
	if c.Source.PollInterval <= 0 {
		return errors.Errorf("poll interval must be positive, got %v", c.Source.PollInterval)
	}
	// Stored keys are always prefixed with the namespace.
	if strings.TrimSpace(c.Storage.Namespace) == "" {
		return errors.New("storage namespace must not be empty")
	}
	return nil
}
