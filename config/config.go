package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	Port     string
	AppEnv   string
	LogLevel string

	MongoURI     string
	DatabaseName string

	JWTSecret      string
	GoogleClientID string

	GeminiAPIKey     string
	GeminiModel      string
	GenerateURL      string
	GeneratedTextCap int

	AWSRegion     string
	AWSBucketName string

	BrowserFallback bool

	CanvasWidth  float64
	CanvasHeight float64
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	Port = envOrDefault("PORT", "8080")
	AppEnv = envOrDefault("APP_ENV", "production")
	LogLevel = envOrDefault("LOG_LEVEL", "info")

	// Empty keeps history and profiles in process memory
	MongoURI = os.Getenv("MONGO_URI")
	DatabaseName = envOrDefault("MONGO_DATABASE", "closet")

	JWTSecret = os.Getenv("JWT_SECRET")
	GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	GeminiModel = envOrDefault("GEMINI_MODEL", "gemini-1.5-flash")
	// Empty means generate in-process through Gemini
	GenerateURL = os.Getenv("GENERATE_URL")
	GeneratedTextCap = envInt("GENERATED_TEXT_CAP", 500)

	AWSRegion = envOrDefault("AWS_REGION", "us-east-1")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	BrowserFallback = envBool("IMPORT_BROWSER_FALLBACK", false)

	CanvasWidth = envFloat("CANVAS_WIDTH", 0)
	CanvasHeight = envFloat("CANVAS_HEIGHT", 0)
}

// IsDev reports whether the service runs with development defaults.
func IsDev() bool {
	return AppEnv == "development"
}

// DatabaseEnabled reports whether MongoDB is configured
func DatabaseEnabled() bool {
	return MongoURI != ""
}

// StorageEnabled reports whether image uploads to S3 are configured.
func StorageEnabled() bool {
	return AWSBucketName != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
