package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.)
// - default: Values common across all environments (timezone, business hours, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	Restaurant RestaurantConfig
	Metrics    MetricsConfig
}

type ServerConfig struct {
	Port              string        `envconfig:"PORT" required:"true"`
	ReadHeaderTimeout time.Duration `envconfig:"SERVER_READ_HEADER_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// RestaurantConfig describes the single dining room: its tables, their size
// and when it takes bookings. Hours are local to TimeZone; a closing hour of 24
// means local midnight.
type RestaurantConfig struct {
	MinTable            int           `envconfig:"MIN_TABLE" default:"1"`
	MaxTable            int           `envconfig:"MAX_TABLE" default:"5"`
	SeatsPerTable       int           `envconfig:"SEATS_PER_TABLE" default:"4"`
	TimeZone            string        `envconfig:"APP_TIMEZONE" default:"Europe/Rome"`
	OpeningHour         int           `envconfig:"LOCAL_OPENING_HOUR" default:"19"`
	ClosingHour         int           `envconfig:"LOCAL_CLOSING_HOUR" default:"24"`
	ReservationDuration time.Duration `envconfig:"RESERVATION_DURATION" default:"1h"`
}

type MetricsConfig struct {
	Enabled   bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path      string `envconfig:"METRICS_PATH" default:"/metrics"`
	Namespace string `envconfig:"METRICS_NAMESPACE" default:"table_booking"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c RestaurantConfig) Validate() error {
	if c.MinTable < 1 {
		return fmt.Errorf("MIN_TABLE must be at least 1, got %d", c.MinTable)
	}
	if c.MaxTable < c.MinTable {
		return fmt.Errorf("MAX_TABLE (%d) must not be lower than MIN_TABLE (%d)", c.MaxTable, c.MinTable)
	}
	if c.SeatsPerTable < 1 {
		return fmt.Errorf("SEATS_PER_TABLE must be at least 1, got %d", c.SeatsPerTable)
	}
	if c.OpeningHour < 0 || c.OpeningHour > 23 {
		return fmt.Errorf("LOCAL_OPENING_HOUR must be within 0..23, got %d", c.OpeningHour)
	}
	if c.ClosingHour < 1 || c.ClosingHour > 24 {
		return fmt.Errorf("LOCAL_CLOSING_HOUR must be within 1..24, got %d", c.ClosingHour)
	}
	if c.ReservationDuration <= 0 {
		return fmt.Errorf("RESERVATION_DURATION must be positive, got %s", c.ReservationDuration)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("APP_TIMEZONE %q is not a valid IANA zone: %w", c.TimeZone, err)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Restaurant.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid restaurant config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:              "8889",
			ReadHeaderTimeout: time.Second,
			ShutdownTimeout:   time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Restaurant: RestaurantConfig{
			MinTable:            1,
			MaxTable:            5,
			SeatsPerTable:       4,
			TimeZone:            "UTC",
			OpeningHour:         19,
			ClosingHour:         24,
			ReservationDuration: time.Hour,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "table_booking_test",
		},
	}
}
