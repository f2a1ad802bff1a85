package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/ctchan-dev/ctchan/internal/domain"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpPort              int            `yaml:"http_port"`
	Pg                    Pg             `yaml:"pg"`
	ThreadsPerPage        int            `yaml:"threads_per_page"`
	PreviewReplies        int            `yaml:"preview_replies"` // number of last replies shown under a listing row
	MaxImageBytes         int64          `yaml:"max_image_bytes"`
	AllowedImageMimeTypes []string       `yaml:"allowed_image_mime_types"`
	MediaDir              string         `yaml:"media_dir"`
	MediaBaseUrl          string         `yaml:"media_base_url"`
	SessionTTLMinutes     int            `yaml:"session_ttl_minutes"` // poster-id session lifetime
	AdminTokenTTLMinutes  int            `yaml:"admin_token_ttl_minutes"`
	SecureCookies         bool           `yaml:"secure_cookies"`
	LogLevel              string         `yaml:"log_level"`
	LogJSON               bool           `yaml:"log_json"`
	Boards                []domain.Board `yaml:"boards"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey            string `yaml:"jwt_key"`
	AdminPasswordHash string `yaml:"admin_password_hash"` // bcrypt
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.ThreadsPerPage <= 0 {
		c.Public.ThreadsPerPage = 15
	}
	if c.Public.PreviewReplies <= 0 {
		c.Public.PreviewReplies = 3
	}
	if c.Public.MaxImageBytes <= 0 {
		c.Public.MaxImageBytes = 4 << 20
	}
	if len(c.Public.AllowedImageMimeTypes) == 0 {
		c.Public.AllowedImageMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}
	if c.Public.SessionTTLMinutes <= 0 {
		c.Public.SessionTTLMinutes = 12 * 60
	}
	if c.Public.AdminTokenTTLMinutes <= 0 {
		c.Public.AdminTokenTTLMinutes = 60
	}
	if c.Public.HttpPort == 0 {
		c.Public.HttpPort = 8080
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
}

func (p Public) SessionTTL() time.Duration {
	return time.Duration(p.SessionTTLMinutes) * time.Minute
}

func (p Public) AdminTokenTTL() time.Duration {
	return time.Duration(p.AdminTokenTTLMinutes) * time.Minute
}
