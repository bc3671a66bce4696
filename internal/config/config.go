package config

import (
	"flag"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN    string `env:"DATABASE_URI"`
	AuthSecret     string `env:"AUTH_SECRET"`
	SiteURL        string `env:"SITE_URL"` // публичный абсолютный URL этого инстанса
	AppVersion     string `env:"APP_VERSION"`
	UserUpperLimit int    `env:"USER_UPPER_LIMIT"` // 0 — без ограничения
	Installed      bool   `env:"INSTALLED" envDefault:"true"`

	// File storage settings
	FileUploadType string `env:"FILE_UPLOAD_TYPE"` // "local" | "aws"
	LocalFileDir   string `env:"LOCAL_FILE_DIR"`
	ArchiveDir     string `env:"ARCHIVE_DIR"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"S3_REGION"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.SiteURL, "site-url", cfg.SiteURL, "public absolute URL of this instance")
	flag.StringVar(&cfg.AppVersion, "app-version", cfg.AppVersion, "instance version reported during transfer negotiation")
	flag.IntVar(&cfg.UserUpperLimit, "user-upper-limit", cfg.UserUpperLimit, "maximum number of users (0 = unbounded)")
	flag.BoolVar(&cfg.Installed, "installed", cfg.Installed, "instance has completed initial setup")
	flag.StringVar(&cfg.FileUploadType, "file-upload-type", cfg.FileUploadType, "attachment storage backend: local or aws")
	flag.StringVar(&cfg.LocalFileDir, "local-file-dir", cfg.LocalFileDir, "directory for local attachment storage")
	flag.StringVar(&cfg.ArchiveDir, "archive-dir", cfg.ArchiveDir, "directory for export/import archives")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the WikiGo server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.AppVersion == "" {
		cfg.AppVersion = "1.0.0"
	}
	if cfg.FileUploadType == "" {
		cfg.FileUploadType = "local"
	}
	if cfg.LocalFileDir == "" {
		cfg.LocalFileDir = filepath.Join("data", "files")
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = filepath.Join("data", "archives")
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	// SiteURL по умолчанию совпадает с адресом, на котором слушаем
	if cfg.SiteURL == "" {
		cfg.SiteURL = cfg.ServerURL
	}

	return cfg
}
