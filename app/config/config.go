package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB *sql.DB

	// FormsConfigPath is the JSON file holding the registered survey sources.
	FormsConfigPath string
	// ServiceAccountPath is the Google service account credentials file used
	// by the sheets client.
	ServiceAccountPath string

	Port            string
	SchedulerEnable bool
}

var AppConfig *Config

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (if present) and environment variables into AppConfig
// without opening a database connection. InitDB completes the setup.
func Load() *Config {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	AppConfig = &Config{
		FormsConfigPath:    getenv("FORMS_CONFIG_PATH", "forms_config.json"),
		ServiceAccountPath: getenv("GOOGLE_SERVICE_ACCOUNT", "service_account.json"),
		Port:               getenv("PORT", "8080"),
		SchedulerEnable:    getenv("SYNC_SCHEDULER", "") == "true",
	}
	return AppConfig
}

// InitDB opens the PostgreSQL connection pool and verifies it.
func InitDB() {
	if AppConfig == nil {
		Load()
	}

	host := getenv("DB_HOST", "127.0.0.1")
	user := getenv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := getenv("DB_NAME", "leadership360")
	sslmode := getenv("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(getenv("DB_PORT", "5432"))
	if err != nil {
		log.Fatal("Invalid DB_PORT:", err)
	}

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s connect_timeout=10",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig.DB = db
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
