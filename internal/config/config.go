package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

type Config struct {
	Env        string `yaml:"env"`
	HTTPServer `yaml:"http_server"`
	Postgres   `yaml:"postgres"`
	Log        `yaml:"log"`
	Probe      `yaml:"probe"`
	Scheduler  `yaml:"scheduler"`
	Invite     `yaml:"invite"`
	RateLimit  `yaml:"rate_limit"`
}

type HTTPServer struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   time.Minute,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type Postgres struct {
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	DB              string        `yaml:"db"`
	SSLMode         string        `yaml:"sslmode"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnectAttempts int           `yaml:"connect_attempts"`
	ConnectBackoff  time.Duration `yaml:"connect_backoff"`
	MigrationsPath  string        `yaml:"migrations_path"`
}

var defaultPostgres = Postgres{
	Host:            "localhost",
	Port:            5432,
	SSLMode:         "disable",
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
	ConnectAttempts: 5,
	ConnectBackoff:  2 * time.Second,
	MigrationsPath:  "file://migrations",
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

type Log struct {
	Level   string `yaml:"level"`
	JSON    bool   `yaml:"json"`
	Concise bool   `yaml:"concise"`
}

var defaultLog = Log{
	Level:   "info",
	Concise: true,
}

// SlogLevel parses the configured level, falling back to info.
func (l *Log) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Probe configures the health checks of routers.
type Probe struct {
	// Timeout bounds every single probe. It is required.
	Timeout time.Duration `yaml:"timeout"`
	// BatchTimeout bounds a whole check pass. Zero disables the batch deadline.
	BatchTimeout time.Duration `yaml:"batch_timeout"`
	Concurrency  int           `yaml:"concurrency"`
	MaxRedirects int           `yaml:"max_redirects"`
	Method       string        `yaml:"method"`
	UserAgent    string        `yaml:"user_agent"`
}

var defaultProbe = Probe{
	Timeout:      5 * time.Second,
	BatchTimeout: 30 * time.Second,
	Concurrency:  16,
	MaxRedirects: 3,
	Method:       "HEAD",
	UserAgent:    "router-monitor/1.0",
}

type Scheduler struct {
	Enabled bool   `yaml:"enabled"`
	Spec    string `yaml:"spec"`
}

var defaultScheduler = Scheduler{
	Spec: "@every 5m",
}

type Invite struct {
	CodeLength   int   `yaml:"code_length"`
	RewardPoints int64 `yaml:"reward_points"`
}

var defaultInvite = Invite{
	CodeLength:   8,
	RewardPoints: 10,
}

// RateLimit throttles the endpoints that trigger probing.
type RateLimit struct {
	CheckEvery time.Duration `yaml:"check_every"`
	Burst      int           `yaml:"burst"`
}

var defaultRateLimit = RateLimit{
	CheckEvery: 10 * time.Second,
	Burst:      3,
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}

	return &cfg, nil
}

// Validate reports every invalid setting of the config.
func (c *Config) Validate() error {
	var errs []error

	if c.Probe.Timeout <= 0 {
		errs = append(errs, errors.New("probe.timeout must be positive"))
	}
	if c.Probe.BatchTimeout < 0 {
		errs = append(errs, errors.New("probe.batch_timeout must not be negative"))
	}
	if c.Probe.Concurrency <= 0 {
		errs = append(errs, errors.New("probe.concurrency must be positive"))
	}
	if c.Probe.MaxRedirects < 0 {
		errs = append(errs, errors.New("probe.max_redirects must not be negative"))
	}
	if c.Probe.Method != "HEAD" && c.Probe.Method != "GET" {
		errs = append(errs, fmt.Errorf("probe.method %q is not supported", c.Probe.Method))
	}
	if c.Scheduler.Enabled {
		if c.Scheduler.Spec == "" {
			errs = append(errs, errors.New("scheduler.spec is required when the scheduler is enabled"))
		} else if _, err := cron.ParseStandard(c.Scheduler.Spec); err != nil {
			errs = append(errs, fmt.Errorf("scheduler.spec %q is invalid: %w", c.Scheduler.Spec, err))
		}
	}
	if c.Invite.CodeLength <= 0 {
		errs = append(errs, errors.New("invite.code_length must be positive"))
	}
	if c.Invite.RewardPoints < 0 {
		errs = append(errs, errors.New("invite.reward_points must not be negative"))
	}
	if c.RateLimit.CheckEvery < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit values must not be negative"))
	}

	return errors.Join(errs...)
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.HTTPServer = defaultHTTPServer
	cfg.Postgres = defaultPostgres
	cfg.Log = defaultLog
	cfg.Probe = defaultProbe
	cfg.Scheduler = defaultScheduler
	cfg.Invite = defaultInvite
	cfg.RateLimit = defaultRateLimit
}
