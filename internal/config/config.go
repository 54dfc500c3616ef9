package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort string

	DBDriver      string
	DBAutoMigrate bool
	SQLitePath    string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr    string
	RedisDB      int
	EventsStream string

	IdempTTLSecs int

	JWTSecret string
	JWTTTL    time.Duration

	LogLevel string

	// InterestRates overrides the built-in per-project rate table, e.g. "corn=10,cattle=9.5".
	InterestRates     string
	DefaultEffortRate decimal.Decimal

	// malformed values seen by Load, reported by Validate
	parseErrs []error
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func (c *Config) getint(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.parseErrs = append(c.parseErrs, fmt.Errorf("invalid %s %q: want an integer", k, v))
		return d
	}
	return n
}

func (c *Config) getbool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		c.parseErrs = append(c.parseErrs, fmt.Errorf("invalid %s %q: want true or false", k, v))
		return d
	}
	return b
}

// Load reads an optional .env file, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{}
	c.AppPort = getenv("APP_PORT", "8080")
	c.DBDriver = strings.ToLower(getenv("DB_DRIVER", DriverMySQL))
	c.DBAutoMigrate = c.getbool("DB_AUTO_MIGRATE", true)
	c.SQLitePath = getenv("SQLITE_PATH", "agrocredito.db")

	c.MySQLHost = getenv("MYSQL_HOST", "mysql")
	c.MySQLPort = getenv("MYSQL_PORT", "3306")
	c.MySQLDB = getenv("MYSQL_DB", "agrocredito")
	c.MySQLUser = getenv("MYSQL_USER", "agrocredito")
	c.MySQLPass = getenv("MYSQL_PASS", "agrocredito")

	c.RedisAddr = getenv("REDIS_ADDR", "redis:6379")
	c.RedisDB = c.getint("REDIS_DB", 0)
	c.EventsStream = getenv("EVENTS_STREAM", "agrocredito:events")
	c.IdempTTLSecs = c.getint("IDEMPOTENCY_TTL_SECONDS", 300)

	c.JWTSecret = os.Getenv("JWT_SECRET")
	c.JWTTTL = time.Duration(c.getint("JWT_TTL_HOURS", 24)) * time.Hour

	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.InterestRates = os.Getenv("INTEREST_RATES")

	raw := getenv("DEFAULT_EFFORT_RATE", "40")
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		c.parseErrs = append(c.parseErrs, fmt.Errorf("invalid DEFAULT_EFFORT_RATE %q: want a decimal", raw))
	}
	c.DefaultEffortRate = rate
	return c
}

func (c *Config) Validate() error {
	if len(c.parseErrs) > 0 {
		return errors.Join(c.parseErrs...)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.RedisAddr == "" {
		return errors.New("missing REDIS_ADDR")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL_HOURS must be positive")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	if !c.DefaultEffortRate.IsPositive() || c.DefaultEffortRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("DEFAULT_EFFORT_RATE must be in (0, 100], got %s", c.DefaultEffortRate)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
