package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation matching the TOML tables, e.g. "convert.source_dir".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns "" if the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 if the key is missing or not an integer.
	GetInt(key string) int

	// GetFloat returns 0 if the key is missing or not numeric.
	// Integer values are widened.
	GetFloat(key string) float64

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// Configuration keys understood by propjson.
const (
	KeySourceDir       = "convert.source_dir"
	KeyOutputDir       = "convert.output_dir"
	KeyEventsPerSecond = "watch.events_per_second"
	KeyBurst           = "watch.burst"
)
