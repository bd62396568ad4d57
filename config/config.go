package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Flutterwave FlutterwaveConfig
	Resend      ResendConfig
	Twilio      TwilioConfig
	Cloudinary  CloudinaryConfig
	Firebase    FirebaseConfig
	App         AppConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// FlutterwaveConfig carries the gateway credentials plus the two redirect
// destinations the payment callback resolves to.
type FlutterwaveConfig struct {
	BaseURL        string
	SecretKey      string
	SuccessURL     string
	FailureURL     string
	Currency       string
	CurrencySymbol string
}

type ResendConfig struct {
	APIKey string
	From   string
}

type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	WhatsAppFrom string
	WhatsAppTo   string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type FirebaseConfig struct {
	ServiceAccountPath string
}

type AppConfig struct {
	BrandName       string
	BackendBaseURL  string
	FrontendBaseURL string
	ResetPath       string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8080"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  getdur("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getdur("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "root:@tcp(localhost:3306)/cartroyal?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getint("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getint("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getdur("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			AccessSecret:  getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getenv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  getdur("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getdur("JWT_REFRESH_EXPIRY", 168*time.Hour),
			Issuer:        getenv("JWT_ISSUER", "cartroyal"),
		},
		Flutterwave: FlutterwaveConfig{
			BaseURL:        getenv("FLUTTERWAVE_BASE_URL", "https://api.flutterwave.com"),
			SecretKey:      os.Getenv("FLUTTERWAVE_SECRET_KEY"),
			SuccessURL:     getenv("FLUTTERWAVE_SUCCESS_REDIRECT_URL", "https://all-star-communications.com/success"),
			FailureURL:     getenv("FLUTTERWAVE_FAILED_REDIRECT_URL", "https://all-star-communications.com/failed"),
			Currency:       getenv("FLUTTERWAVE_CURRENCY", "NGN"),
			CurrencySymbol: getenv("FLUTTERWAVE_CURRENCY_SYMBOL", "₦"),
		},
		Resend: ResendConfig{
			APIKey: os.Getenv("RESEND_API_KEY"),
			From:   getenv("RESEND_FROM", "Cart Royal <onboarding@resend.dev>"),
		},
		Twilio: TwilioConfig{
			AccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
			WhatsAppFrom: os.Getenv("TWILIO_WHATSAPP_FROM"),
			WhatsAppTo:   getenv("TWILIO_WHATSAPP_TO", os.Getenv("ADMIN_PHONE_NUMBER")),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		},
		App: AppConfig{
			BrandName:       getenv("BRAND_NAME", "Cart Royal"),
			BackendBaseURL:  getenv("BACKEND_BASE_URL", "http://localhost:8080"),
			FrontendBaseURL: getenv("FRONTEND_BASE_URL", "https://all-star-communications.com"),
			ResetPath:       getenv("FRONTEND_RESET_PATH", "/reset"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
