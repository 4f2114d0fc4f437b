package cfg

import (
	"cmp"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage
	DBPath       string `long:"db-path" env:"DB_PATH" default:"./realty-desk.db" description:"Path to the SQLite database file"`
	FeedsDir     string `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing feed configuration files"`
	ScenariosDir string `long:"scenarios-dir" env:"SCENARIOS_DIR" default:"./scenarios" description:"Directory containing example investment scenarios"`

	// HTTP server
	Port         string  `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl      string  `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://desk.example.com)"`
	APIAccessKey string  `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	RateLimit    float64 `long:"rate-limit" env:"RATE_LIMIT" default:"5" description:"Calculator requests per second allowed per client IP (0 disables)"`
	RateBurst    int     `long:"rate-burst" env:"RATE_BURST" default:"20" description:"Burst size for the per-IP rate limiter"`

	// Background processing
	WorkerCount       int `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for feed processing"`
	SchedulerInterval int `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`

	// Presentation
	Locale         string `long:"locale" env:"LOCALE" default:"en-US" description:"Locale used for formatted numbers (BCP 47)"`
	CurrencySymbol string `long:"currency-symbol" env:"CURRENCY_SYMBOL" default:"$" description:"Currency symbol for formatted amounts"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Realty Desk/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load parses command line flags and environment variables. It returns
// nil, nil when help was requested.
func Load() (*Cfg, error) {
	cfg, err := parse(os.Args[1:])
	if err != nil || cfg == nil {
		return cfg, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", raw.WorkerCount)
	}
	if raw.SchedulerInterval < 1 {
		return nil, fmt.Errorf("scheduler interval must be at least 1 second, got %d", raw.SchedulerInterval)
	}
	if raw.RateLimit < 0 || raw.RateBurst < 0 {
		return nil, fmt.Errorf("rate limit and burst must be non-negative")
	}

	return &Cfg{
		DBPath:            raw.DBPath,
		FeedsDir:          raw.FeedsDir,
		ScenariosDir:      raw.ScenariosDir,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		APIAccessKey:      raw.APIAccessKey,
		RateLimit:         raw.RateLimit,
		RateBurst:         raw.RateBurst,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		Locale:            raw.Locale,
		CurrencySymbol:    raw.CurrencySymbol,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
