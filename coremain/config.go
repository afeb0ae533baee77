package coremain

import (
	"time"

	"github.com/pmkol/dlist/mlog"
)

type Config struct {
	Log    mlog.LogConfig `yaml:"log"`
	Script ScriptConfig   `yaml:"script"`
	API    APIConfig      `yaml:"api"`
	Store  StoreConfig    `yaml:"store"`
}

type ScriptConfig struct {
	// File is the script to run. The positional argument of the run
	// command takes precedence.
	File string `yaml:"file"`

	// Watch re-runs the script whenever File changes.
	Watch bool `yaml:"watch"`

	// Debounce delays a re-run until File has been quiet for this long.
	// Default is 200ms.
	Debounce time.Duration `yaml:"debounce"`
}

type APIConfig struct {
	HTTP          string        `yaml:"http"`
	MaxConns      int           `yaml:"max_conns"`
	ProxyProtocol bool          `yaml:"proxy_protocol"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

// StoreConfig saves the lists to redis after every successful run.
type StoreConfig struct {
	Redis   string        `yaml:"redis"` // e.g. redis://localhost:6379/0
	Key     string        `yaml:"key"`
	TTL     time.Duration `yaml:"ttl"`
	Timeout time.Duration `yaml:"timeout"`
}

const defaultDebounce = 200 * time.Millisecond
