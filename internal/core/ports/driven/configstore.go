package driven

// ConfigStore holds roster configuration as flat dotted keys such as
// "store.backend" and "store.path". Values are strings or booleans.
type ConfigStore interface {
	// Get retrieves a value and reports whether the key is set.
	Get(key string) (any, bool)

	// GetString returns the string at key, or "" when it is unset or not a string.
	GetString(key string) string

	// GetBool returns the boolean at key, or false when it is unset or not a boolean.
	GetBool(key string) bool

	// SetAll stores every entry of values and persists them in a single
	// write. On error none of the entries are applied.
	SetAll(values map[string]any) error

	// Load re-reads the configuration from its backing storage.
	Load() error

	// Path returns the location of the backing storage.
	Path() string
}
