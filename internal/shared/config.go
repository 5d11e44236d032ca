package shared

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv         string        `envconfig:"APP_ENV" default:"prod"`
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr    string        `envconfig:"METRICS_ADDR"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`

	MySQLDSN    string `envconfig:"MYSQL_DSN" default:"root:root@tcp(localhost:3306)/hotels?charset=utf8mb4"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"false"`

	// empty RedisAddr disables the cache
	RedisAddr string        `envconfig:"REDIS_ADDR"`
	RedisPass string        `envconfig:"REDIS_PASSWORD"`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"60s"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"0s"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"0"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`

	Policy PolicyConfig
	Status StatusConfig
	Seed   SeedConfig
}

type PolicyConfig struct {
	EnforceList          bool `envconfig:"ENFORCE_LIST_POLICY" default:"true"`
	EnforceDetail        bool `envconfig:"ENFORCE_DETAIL_POLICY" default:"false"`
	RequireHotelIncluded bool `envconfig:"REQUIRE_HOTEL_INCLUDED" default:"false"`
}

// StatusConfig holds the HTTP codes for outcomes whose mapping is kept
// configurable for client compatibility.
type StatusConfig struct {
	NoEligibility int `envconfig:"NO_ELIGIBILITY_STATUS" default:"204"`
	ListFailure   int `envconfig:"LIST_FAILURE_STATUS" default:"204"`
	DetailFailure int `envconfig:"DETAIL_FAILURE_STATUS" default:"404"`
}

type SeedConfig struct {
	Hotels  int    `envconfig:"SEED_HOTELS" default:"3"`
	Rooms   int    `envconfig:"SEED_ROOMS" default:"2"`
	Workers int    `envconfig:"SEED_WORKERS" default:"4"`
	Email   string `envconfig:"SEED_EMAIL" default:"guest@example.com"`
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, errors.Wrap(err, "process env config")
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	for name, code := range map[string]int{
		"NO_ELIGIBILITY_STATUS": c.Status.NoEligibility,
		"LIST_FAILURE_STATUS":   c.Status.ListFailure,
		"DETAIL_FAILURE_STATUS": c.Status.DetailFailure,
	} {
		if code < 200 || code > 599 {
			return errors.Newf("%s: %d is not an HTTP status", name, code)
		}
	}
	if c.RateLimitRPS < 0 {
		return errors.Newf("RATE_LIMIT_RPS must not be negative, got %v", c.RateLimitRPS)
	}
	return nil
}

// NewTestConfig returns the defaults used by handler and end-to-end tests.
func NewTestConfig() Config {
	return Config{
		AppEnv:         "test",
		HTTPAddr:       ":0",
		RequestTimeout: 5 * time.Second,
		CacheTTL:       0,
		JWTSecret:      "test-secret",
		RateLimitBurst: 20,
		Policy:         PolicyConfig{EnforceList: true},
		Status:         StatusConfig{NoEligibility: 204, ListFailure: 204, DetailFailure: 404},
		Seed:           SeedConfig{Hotels: 1, Rooms: 2, Workers: 1, Email: "guest@example.com"},
	}
}
