package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	HTTPPort     int
	OptionsFile  string
	LogFile      string
	ResultsFile  string
	DatabaseURL  string
	DatabaseType string
	AdminID      string
	MaxVoters    int
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	// A missing .env is fine; real env vars always win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Listen port")
	fs.IntVar(&cfg.HTTPPort, "http", -1, "Status API port (0 disables)")

	// Files
	fs.StringVar(&cfg.OptionsFile, "options", "", "Options file, one name per line")
	fs.StringVar(&cfg.LogFile, "log", "", "Append-only event log")
	fs.StringVar(&cfg.ResultsFile, "results", "", "Final report file")

	// Snapshot store
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	fs.StringVar(&cfg.AdminID, "admin", "", "Reserved administrator voter id")
	fs.IntVar(&cfg.MaxVoters, "max-voters", 0, "Voter table capacity")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Also accept a bare positional port: `quickly-vote 5000`
	if cfg.Port == 0 && fs.NArg() > 0 {
		port, err := strconv.Atoi(fs.Arg(0))
		if err != nil {
			return Config{}, fmt.Errorf("invalid port argument %q", fs.Arg(0))
		}
		cfg.Port = port
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := intEnv("PORT")
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.Port == 0 {
		return Config{}, errors.New("listen port required (use -p, a positional argument or PORT env)")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	if cfg.HTTPPort < 0 {
		port, err := intEnv("HTTP_PORT")
		if err != nil {
			return Config{}, err
		}
		cfg.HTTPPort = port
	}
	if cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("invalid http port %d", cfg.HTTPPort)
	}

	cfg.OptionsFile = stringOr(cfg.OptionsFile, "OPTIONS_FILE", "opcoes.txt")
	cfg.LogFile = stringOr(cfg.LogFile, "LOG_FILE", "logs/eleicao.log")
	cfg.ResultsFile = stringOr(cfg.ResultsFile, "RESULTS_FILE", "logs/resultado_final.txt")
	cfg.AdminID = stringOr(cfg.AdminID, "ADMIN_ID", "ADMIN")

	cfg.DatabaseType = stringOr(cfg.DatabaseType, "DATABASE_TYPE", "sqlite")
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:logs/election.db"
	}

	if cfg.MaxVoters == 0 {
		n, err := intEnv("MAX_VOTERS")
		if err != nil {
			return Config{}, err
		}
		cfg.MaxVoters = n
	}
	if cfg.MaxVoters < 0 {
		return Config{}, errors.New("max voters must be positive")
	}
	if cfg.MaxVoters == 0 {
		cfg.MaxVoters = 1000
	}

	return cfg, nil
}

func stringOr(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func intEnv(name string) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", name)
	}
	return n, nil
}
