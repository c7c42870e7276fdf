package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const FileName = "tutorcast.yaml"

type Config struct {
	RootPath       string        `yaml:"-"`
	ContentDir     string        `yaml:"content_dir"`
	DocumentDir    string        `yaml:"document_dir"`
	AssetRoot      string        `yaml:"asset_root"`
	DataDir        string        `yaml:"data_dir"`
	DBPath         string        `yaml:"db_path"`
	SessionBackend string        `yaml:"session_backend"`
	RedisAddr      string        `yaml:"redis_addr"`
	RedisTTL       time.Duration `yaml:"redis_ttl"`
	ProbeTimeout   time.Duration `yaml:"probe_timeout"`
	RestBoundary   float64       `yaml:"rest_boundary_seconds"`
	LogMode        string        `yaml:"log_mode"`
	HTTPAddr       string        `yaml:"http_addr"`
	PlayerCommand  []string      `yaml:"player_command"`
}

// New builds the default layout under rootPath and overlays rootPath/tutorcast.yaml when present.
func New(rootPath string) (Config, error) {
	if rootPath == "" {
		return Config{}, fmt.Errorf("root path is required")
	}
	dataDir := filepath.Join(rootPath, ".tutorcast")
	cfg := Config{
		RootPath:       rootPath,
		ContentDir:     filepath.Join(rootPath, "worksheets"),
		DocumentDir:    filepath.Join(rootPath, "documents"),
		AssetRoot:      filepath.Join(rootPath, "media"),
		DataDir:        dataDir,
		DBPath:         filepath.Join(dataDir, "tutorcast.db"),
		SessionBackend: "file",
		RedisTTL:       12 * time.Hour,
		ProbeTimeout:   3 * time.Second,
		RestBoundary:   10,
		LogMode:        "dev",
		HTTPAddr:       ":8080",
		PlayerCommand:  []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	}
	if err := cfg.overlay(filepath.Join(rootPath, FileName)); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) overlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	c.ContentDir = c.resolve(c.ContentDir)
	c.DocumentDir = c.resolve(c.DocumentDir)
	c.DataDir = c.resolve(c.DataDir)
	c.DBPath = c.resolve(c.DBPath)
	if !isURL(c.AssetRoot) {
		c.AssetRoot = c.resolve(c.AssetRoot)
	}
	return nil
}

func (c Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.RootPath, path)
}

func (c Config) Validate() error {
	switch c.SessionBackend {
	case "memory", "file", "sqlite":
	case "redis":
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("redis session backend requires redis_addr")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}
	if c.RestBoundary <= 0 {
		return fmt.Errorf("rest boundary must be positive")
	}
	return nil
}

// AssetIsRemote reports whether media assets are served over HTTP.
func (c Config) AssetIsRemote() bool {
	return isURL(c.AssetRoot)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
