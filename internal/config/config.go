// Package config provides types for handling configuration parameters.
package config

import (
	"flag"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config handles server-related constants and parameters.
type Config struct {
	ServerAddress   string  `env:"SERVER_ADDRESS" json:"server_address"`
	GRPCAddress     string  `env:"GRPC_ADDRESS" json:"grpc_address"`
	BaseURL         string  `env:"BASE_URL" json:"base_url"`
	EnableHTTPS     bool    `env:"ENABLE_HTTPS" json:"enable_https"`
	FileStoragePath string  `env:"FILE_STORAGE_PATH" json:"file_storage_path"`
	DatabaseDSN     string  `env:"DATABASE_DSN" json:"database_dsn"`
	UserKey         string  `env:"USER_KEY" json:"-"`
	TrustedSubnet   string  `env:"TRUSTED_SUBNET" json:"trusted_subnet"`
	MarnetPath      string  `env:"MARNET_PATH" json:"marnet_path"`
	SpeedKnots      float64 `env:"SPEED_KNOTS" json:"speed_knots"`
}

// NewDefaultConfiguration sets up a configuration object with default parameters.
func NewDefaultConfiguration() *Config {
	return &Config{
		ServerAddress:   ":8000",
		GRPCAddress:     ":8001",
		BaseURL:         "http://localhost:8000",
		EnableHTTPS:     false,
		FileStoragePath: "storage/infile/route_storage.json",
		DatabaseDSN:     "",
		UserKey:         "jds__63h3_7ds",
		TrustedSubnet:   "",
		MarnetPath:      "",
		SpeedKnots:      24.0,
	}
}

// Parse parses command line arguments and environment variables. Environment
// variables take precedence over a JSON configuration file, explicitly set flags
// take precedence over both.
func (c *Config) Parse() error {
	a := flag.String("a", c.ServerAddress, "Server address")
	g := flag.String("g", c.GRPCAddress, "GRPC server address")
	b := flag.String("b", c.BaseURL, "Base URL")
	s := flag.Bool("s", c.EnableHTTPS, "Enable HTTPS")
	f := flag.String("f", c.FileStoragePath, "File storage path")
	d := flag.String("d", c.DatabaseDSN, "PSQL DSN")
	t := flag.String("t", c.TrustedSubnet, "Trusted subnet in CIDR notation")
	m := flag.String("m", c.MarnetPath, "Maritime network GeoJSON path")
	v := flag.Float64("v", c.SpeedKnots, "Vessel cruising speed in knots")
	configPath := flag.String("c", os.Getenv("CONFIG"), "Configuration file path")
	flag.Parse()
	setFlags := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) {
		setFlags[fl.Name] = true
	})
	return c.assignValues(*a, *g, *b, *s, *f, *d, *t, *m, *v, *configPath, setFlags)
}

// assignValues composes the final configuration from a JSON file, environment
// variables and explicitly set flags, in that order of precedence.
func (c *Config) assignValues(a, g, b string, s bool, f, d, t, m string, v float64, configPath string, setFlags map[string]bool) error {
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, c); err != nil {
			return err
		}
	}
	if err := cleanenv.ReadEnv(c); err != nil {
		return err
	}
	if setFlags["a"] {
		c.ServerAddress = a
	}
	if setFlags["g"] {
		c.GRPCAddress = g
	}
	if setFlags["b"] {
		c.BaseURL = b
	}
	if setFlags["s"] {
		c.EnableHTTPS = s
	}
	if setFlags["f"] {
		c.FileStoragePath = f
	}
	if setFlags["d"] {
		c.DatabaseDSN = d
	}
	if setFlags["t"] {
		c.TrustedSubnet = t
	}
	if setFlags["m"] {
		c.MarnetPath = m
	}
	if setFlags["v"] {
		c.SpeedKnots = v
	}
	return nil
}
