package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/vlist/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vlist.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "10s"

	// DefaultNamespace prefixes every metric name.
	DefaultNamespace = "vlist"

	// DefaultTracerName is the OpenTelemetry instrumentation scope.
	DefaultTracerName = "github.com/vango-dev/vlist"

	// DefaultSnapshotDir is where snapshots are written when no bucket is set.
	DefaultSnapshotDir = "snapshots"
)

// Config represents the complete vlist.json configuration.
type Config struct {
	// Server configures the HTTP and WebSocket transport.
	Server ServerConfig `json:"server"`

	// Log configures structured logging.
	Log LogConfig `json:"log"`

	// Metrics configures Prometheus instrumentation.
	Metrics MetricsConfig `json:"metrics"`

	// Tracing configures OpenTelemetry spans.
	Tracing TracingConfig `json:"tracing"`

	// Snapshots configures where rendered HTML is stored.
	Snapshots SnapshotConfig `json:"snapshots"`

	// configPath is where the config was loaded from (not serialized).
	configPath string
}

// ServerConfig holds listener settings.
type ServerConfig struct {
	Host            string `json:"host,omitempty"`
	Port            int    `json:"port,omitempty"`
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	TracerName string `json:"tracerName,omitempty"`
}

// SnapshotConfig selects the snapshot store. At most one of S3 and Redis may
// be configured; without either, snapshots go to the local directory.
type SnapshotConfig struct {
	Dir   string      `json:"dir,omitempty"`
	S3    S3Config    `json:"s3,omitempty"`
	Redis RedisConfig `json:"redis,omitempty"`
}

// S3Config holds the S3 snapshot store settings.
type S3Config struct {
	Bucket    string `json:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty"`
}

// RedisConfig holds the Redis snapshot store settings.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty"`
	Prefix   string `json:"prefix,omitempty"`

	// TTL expires snapshots after the given duration. Empty keeps them.
	TTL string `json:"ttl,omitempty"`
}

// New creates a configuration with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		Snapshots: SnapshotConfig{
			Dir: DefaultSnapshotDir,
		},
	}
}

// Load reads vlist.json from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Fields missing
// from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No vlist.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'vlist serve' without --config to use the defaults, or create vlist.json")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		ce := errors.New("E120").
			WithDetail("Failed to parse vlist.json: " + err.Error()).
			WithSuggestion("Check that vlist.json is valid JSON")
		var syntax *json.SyntaxError
		if stderrors.As(err, &syntax) {
			line, col := position(data, syntax.Offset)
			ce.WithLocation(path, line, col)
		}
		return nil, ce
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for fields set to empty strings.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Snapshots.Dir == "" {
		c.Snapshots.Dir = DefaultSnapshotDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E121").
			WithDetail("Port must be between 1 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if d, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil || d <= 0 {
		return errors.New("E121").
			WithDetail("shutdownTimeout must be a positive duration, got " + strconv.Quote(c.Server.ShutdownTimeout))
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return errors.New("E122").
			WithSuggestion(`Use "debug", "info", "warn" or "error"`)
	}
	if c.Snapshots.S3.Bucket != "" && c.Snapshots.S3.Region == "" {
		return errors.New("E123").
			WithSuggestion(`Set snapshots.s3.region, for example "us-east-1"`)
	}
	if c.UsesS3() && c.UsesRedis() {
		return errors.New("E123").
			WithDetail("Both snapshots.s3.bucket and snapshots.redis.addr are set").
			WithSuggestion("Remove one of the two stores")
	}
	if ttl := c.Snapshots.Redis.TTL; ttl != "" {
		if d, err := time.ParseDuration(ttl); err != nil || d < 0 {
			return errors.New("E123").
				WithDetail("snapshots.redis.ttl must be a duration, got " + strconv.Quote(ttl))
		}
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ShutdownTimeout returns the parsed shutdown timeout, falling back to the
// default when the configured value is invalid.
func (c *Config) ShutdownTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Server.ShutdownTimeout); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}

// LogLevel returns the configured slog level, or info when unknown.
func (c *Config) LogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.Log.Level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// UsesS3 reports whether snapshots go to S3.
func (c *Config) UsesS3() bool {
	return c.Snapshots.S3.Bucket != ""
}

// UsesRedis reports whether snapshots go to Redis.
func (c *Config) UsesRedis() bool {
	return c.Snapshots.Redis.Addr != ""
}

// RedisTTL returns the parsed snapshot TTL, zero when unset or invalid.
func (c *Config) RedisTTL() time.Duration {
	d, err := time.ParseDuration(c.Snapshots.Redis.TTL)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// SnapshotDir returns the snapshot directory, resolved against the config
// file's directory when relative.
func (c *Config) SnapshotDir() string {
	if filepath.IsAbs(c.Snapshots.Dir) || c.configPath == "" {
		return c.Snapshots.Dir
	}
	return filepath.Join(c.Dir(), c.Snapshots.Dir)
}
