package types

import (
	"errors"
	"time"
)

// Supported container backends.
const (
	BackendWorkbook = "workbook"
	BackendSQLite   = "sqlite"
)

// DefaultCacheTTL is how long a successful load is served from memory.
const DefaultCacheTTL = 10 * time.Minute

// Config holds backend selection and parameters for opening a RecordStore.
type Config struct {
	Backend  string        `mapstructure:"backend" yaml:"backend"`
	DataFile string        `mapstructure:"data_file" yaml:"data_file,omitempty"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	Log      LogConfig     `mapstructure:"log" yaml:"log"`
	Users    []UserConfig  `mapstructure:"users" yaml:"users,omitempty"`
}

// LogConfig configures the process logger. An empty File logs to stderr.
type LogConfig struct {
	Level     string `mapstructure:"level" yaml:"level"`
	File      string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSizeMB int    `mapstructure:"max_size_mb" yaml:"max_size_mb,omitempty"`
	MaxFiles  int    `mapstructure:"max_files" yaml:"max_files,omitempty"`
}

// UserConfig is one credential entry. Exactly one of Password and
// PasswordHash (bcrypt) should be set. Children lists the child ids a
// parent may see.
type UserConfig struct {
	Username     string  `mapstructure:"username" yaml:"username" validate:"required"`
	Password     string  `mapstructure:"password" yaml:"password,omitempty" validate:"required_without=PasswordHash"`
	PasswordHash string  `mapstructure:"password_hash" yaml:"password_hash,omitempty"`
	Role         Role    `mapstructure:"role" yaml:"role" validate:"required,oneof=teacher parent"`
	Children     []int64 `mapstructure:"children" yaml:"children,omitempty"`
}

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrDataFileEmpty   = errors.New("data file must not be empty")
	ErrCacheTTLInvalid = errors.New("cache ttl must not be negative")
	ErrInvalidUser     = errors.New("invalid user entry")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendWorkbook: true,
	BackendSQLite:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. User entries are checked by the credential
// provider that consumes them.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.DataFile == "" {
		return ErrDataFileEmpty
	}
	if c.CacheTTL < 0 {
		return ErrCacheTTLInvalid
	}
	return nil
}
