package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host           string   `yaml:"host"`
		Port           int      `yaml:"port"`
		Env            string   `yaml:"env"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	// SiteAccess is the site-wide password gate in front of the public
	// listing. The password and cookie lifetime are injected here rather
	// than read from ambient globals so middleware stays testable.
	SiteAccess struct {
		Enabled       bool   `yaml:"enabled"`
		Password      string `yaml:"password"`
		CookieMaxAge  int    `yaml:"cookie_max_age"`
		SecureCookies bool   `yaml:"secure_cookies"`
	} `yaml:"site_access"`

	Storage struct {
		Type      string `yaml:"type"`       // local, cloudflare_r2
		BasePath  string `yaml:"base_path"`  // For local storage
		BaseURL   string `yaml:"base_url"`   // Public URL base; also the managed-blob marker
		Bucket    string `yaml:"bucket"`     // For R2
		AccessKey string `yaml:"access_key"` // For R2
		SecretKey string `yaml:"secret_key"` // For R2
		Endpoint  string `yaml:"endpoint"`   // For R2 or custom S3
	} `yaml:"storage"`

	Upload struct {
		MaxAudioSize      int64    `yaml:"max_audio_size"`
		MaxImageSize      int64    `yaml:"max_image_size"`
		AllowedAudioTypes []string `yaml:"allowed_audio_types"`
		AllowedImageTypes []string `yaml:"allowed_image_types"`
		DefaultCoverPath  string   `yaml:"default_cover_path"`
	} `yaml:"upload"`

	Seed struct {
		AdminUsername  string `yaml:"admin_username"`
		AdminPassword  string `yaml:"admin_password"`
		SampleEpisodes bool   `yaml:"sample_episodes"`
	} `yaml:"seed"`
}

var AppConfig *Config

// LoadConfig populates AppConfig. When DATABASE_URL is set in the
// environment the whole config is assembled from env vars (test and
// container deployments); otherwise config.yaml is loaded.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTLHours = 24 * 7

	cfg.SiteAccess.Enabled = os.Getenv("SITE_PASSWORD") != ""
	cfg.SiteAccess.Password = os.Getenv("SITE_PASSWORD")

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/files"

	cfg.Seed.AdminUsername = os.Getenv("FIRST_ADMIN_USERNAME")
	cfg.Seed.AdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 24 * 7
	}
	if cfg.SiteAccess.CookieMaxAge == 0 {
		cfg.SiteAccess.CookieMaxAge = 60 * 60 * 24 * 30
	}
	if cfg.Upload.MaxAudioSize == 0 {
		cfg.Upload.MaxAudioSize = 200 * 1024 * 1024
	}
	if cfg.Upload.MaxImageSize == 0 {
		cfg.Upload.MaxImageSize = 10 * 1024 * 1024
	}
	if len(cfg.Upload.AllowedAudioTypes) == 0 {
		cfg.Upload.AllowedAudioTypes = []string{"audio/mpeg", "audio/wav", "audio/mp4"}
	}
	if len(cfg.Upload.AllowedImageTypes) == 0 {
		cfg.Upload.AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}
	}
	if cfg.Upload.DefaultCoverPath == "" {
		cfg.Upload.DefaultCoverPath = "/default-cover.png"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
