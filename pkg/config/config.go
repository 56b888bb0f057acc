// Package config loads molgraph settings from a YAML file.
//
// A settings file is optional. Without one, [Default] applies: the built-in
// element table, reference parser behaviour, a file cache under the user
// cache directory and the API on :8080.
//
//	elements:
//	  path: ./elements.toml
//	parse:
//	  ring_bonds_consume_valence: true
//	cache:
//	  backend: redis
//	redis:
//	  addr: localhost:6379
//
// Any failure to read or decode the file is a CONFIG_LOAD error.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/molgraph/pkg/elements"
	"github.com/matzehuels/molgraph/pkg/errors"
	"github.com/matzehuels/molgraph/pkg/smiles"
)

// EnvPath names the environment variable consulted when no --config flag is
// given.
const EnvPath = "MOLGRAPH_CONFIG"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the root of the settings file.
type Config struct {
	Elements ElementsConfig `yaml:"elements"`
	Parse    smiles.Options `yaml:"parse"`
	Log      LogConfig      `yaml:"log"`
	Cache    CacheConfig    `yaml:"cache"`
	Redis    RedisConfig    `yaml:"redis"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Server   ServerConfig   `yaml:"server"`
	Render   RenderConfig   `yaml:"render"`
}

// ElementsConfig selects the element table. An empty path means the built-in
// organic subset.
type ElementsConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type CacheConfig struct {
	Backend string        `yaml:"backend"`
	Dir     string        `yaml:"dir"` // file backend; empty means the XDG cache dir
	TTL     time.Duration `yaml:"ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// MongoConfig enables the molecule store when URI is set.
type MongoConfig struct {
	URI        string        `yaml:"uri"`
	Database   string        `yaml:"database"`
	Collection string        `yaml:"collection"`
	Timeout    time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

type RenderConfig struct {
	Hydrogens bool   `yaml:"hydrogens"`
	Layout    string `yaml:"layout"` // graphviz engine: neato, dot, circo...
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		Cache: CacheConfig{Backend: CacheFile, TTL: 7 * 24 * time.Hour},
		Redis: RedisConfig{Prefix: "molgraph:"},
		Mongo: MongoConfig{
			Database:   "molgraph",
			Collection: "molecules",
			Timeout:    5 * time.Second,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 64 << 10,
		},
		Render: RenderConfig{Hydrogens: true, Layout: "neato"},
	}
}

// Resolve returns the settings path to use: the explicit flag value if set,
// otherwise $MOLGRAPH_CONFIG. An empty result means no file.
func Resolve(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvPath)
}

// Load reads settings from path on top of [Default]. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "read settings %s", path)
	}
	cfg, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "settings %s", path)
	}
	return cfg, nil
}

// Read decodes YAML settings from r on top of [Default] and validates them.
// Unknown keys are rejected.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "decode yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields and required settings for the selected
// backends.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.New(errors.ErrCodeConfigLoad, "log.level: %v", err)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeConfigLoad, "redis.addr is required for the redis cache backend")
		}
	default:
		return errors.New(errors.ErrCodeConfigLoad, "cache.backend: unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeConfigLoad, "cache.ttl must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeConfigLoad, "server.max_body_bytes must be positive")
	}
	return nil
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ElementTable loads the configured element table, or the built-in default.
func (c *Config) ElementTable() (*elements.Table, error) {
	if c.Elements.Path == "" {
		return elements.Default(), nil
	}
	return elements.Load(c.Elements.Path)
}

// StoreEnabled reports whether a MongoDB store is configured.
func (c *Config) StoreEnabled() bool {
	return c.Mongo.URI != ""
}

// String renders the effective settings as YAML with secrets masked.
func (c *Config) String() string {
	masked := *c
	if masked.Redis.Password != "" {
		masked.Redis.Password = "***"
	}
	if masked.Mongo.URI != "" {
		masked.Mongo.URI = maskURI(masked.Mongo.URI)
	}
	out, err := yaml.Marshal(&masked)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(out)
}

// maskURI hides the userinfo of a connection string.
func maskURI(uri string) string {
	scheme := strings.Index(uri, "://")
	at := strings.LastIndexByte(uri, '@')
	if scheme < 0 || at < scheme {
		return uri
	}
	return uri[:scheme+3] + "***" + uri[at:]
}
