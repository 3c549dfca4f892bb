package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             int
	ElectionDataDir  string
	BallotDefinition string
	MockMode         bool
	MockDataDir      string
	Verbosity        int
	Address          string
	OpTimeout        time.Duration
}

// Backend demo defaults, matching the spring-demo deployment.
const (
	DefaultPort        = 8112
	DefaultVerbosity   = 3
	DefaultAddress     = "123, Main Street, Concord, Massachusetts"
	DefaultMockDataDir = "mock-data"
	DefaultOpTimeout   = 30 * time.Second
)

// ParseFlags validates flags and fills in configuration defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("vtp-web-api", flag.ContinueOnError)

	// Network and backing-store config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.ElectionDataDir, "e", "", "ElectionData root directory (guid workspaces live here)")
	fs.StringVar(&cfg.BallotDefinition, "b", "", "Blank ballot definition JSON used to seed new workspaces")

	// Mock mode - serve static fixtures, never touch the backing store
	fs.BoolVar(&cfg.MockMode, "mock", false, "Serve static mock data instead of live ElectionData")
	fs.StringVar(&cfg.MockDataDir, "mock-data", "", "Directory holding the mock fixtures")

	// Delegated-operation knobs
	fs.IntVar(&cfg.Verbosity, "v", 0, "Backend operation verbosity")
	fs.StringVar(&cfg.Address, "address", "", "Default ballot address")
	fs.DurationVar(&cfg.OpTimeout, "op-timeout", 0, "Per-operation timeout")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if !cfg.MockMode {
		cfg.MockMode = os.Getenv("VTP_MOCK_MODE") == "true"
	}

	if cfg.ElectionDataDir == "" {
		cfg.ElectionDataDir = os.Getenv("ELECTION_DATA_DIR")
	}
	if cfg.BallotDefinition == "" {
		cfg.BallotDefinition = os.Getenv("BALLOT_DEFINITION")
	}

	if cfg.MockDataDir == "" {
		cfg.MockDataDir = os.Getenv("MOCK_DATA_DIR")
	}
	if cfg.MockDataDir == "" {
		cfg.MockDataDir = DefaultMockDataDir
	}

	if cfg.Verbosity == 0 {
		if vStr := os.Getenv("VTP_VERBOSITY"); vStr != "" {
			v, err := strconv.Atoi(vStr)
			if err != nil {
				return Config{}, errors.New("invalid VTP_VERBOSITY env variable")
			}
			cfg.Verbosity = v
		} else {
			cfg.Verbosity = DefaultVerbosity
		}
	}

	if cfg.Address == "" {
		cfg.Address = os.Getenv("VTP_ADDRESS")
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}

	if cfg.OpTimeout == 0 {
		if tStr := os.Getenv("VTP_OP_TIMEOUT"); tStr != "" {
			d, err := time.ParseDuration(tStr)
			if err != nil {
				return Config{}, errors.New("invalid VTP_OP_TIMEOUT env variable")
			}
			cfg.OpTimeout = d
		} else {
			cfg.OpTimeout = DefaultOpTimeout
		}
	}

	// Live mode needs a real backing store to run against
	if !cfg.MockMode {
		if cfg.ElectionDataDir == "" {
			return Config{}, errors.New("ElectionData directory required (use -e or ELECTION_DATA_DIR env)")
		}
		if cfg.BallotDefinition == "" {
			return Config{}, errors.New("ballot definition required (use -b or BALLOT_DEFINITION env)")
		}
	}

	return cfg, nil
}
