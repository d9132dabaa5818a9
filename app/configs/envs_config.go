package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	APP_ENV  string
	Port     string
	LogLevel string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string

	SupabaseURL   string
	SupabaseKey   string
	StorageBucket string

	AppAuthKey string
	AppEncKey  string
	CSRFKey    string

	AuthMode          string
	AdminEmail        string
	AdminPasswordHash string
}

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	AuthModeSupabase = "supabase"
	AuthModeLocal    = "local"

	DefaultStorageBucket = "product-media"
)

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		APP_ENV:           getEnv("APP_ENV", "development"),
		Port:              getEnv("APP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBDriver:          getEnv("DB_DRIVER", DriverPostgres),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		SupabaseURL:       os.Getenv("SUPABASE_URL"),
		SupabaseKey:       os.Getenv("SUPABASE_KEY"),
		StorageBucket:     getEnv("STORAGE_BUCKET", DefaultStorageBucket),
		AppAuthKey:        os.Getenv("APP_AUTH_KEY"),
		AppEncKey:         os.Getenv("APP_ENC_KEY"),
		CSRFKey:           os.Getenv("CSRF_KEY"),
		AuthMode:          getEnv("AUTH_MODE", AuthModeSupabase),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

}

func (e ENV) IsDevelopment() bool {
	return e.APP_ENV == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
