package configs

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	MongoURI            string
	DBName              string
	AuditExportInterval time.Duration
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "LibraryManagementApp"
	}

	var exportSeconds int
	fmt.Sscanf(os.Getenv("AUDIT_EXPORT_INTERVAL_SECONDS"), "%d", &exportSeconds)
	if exportSeconds <= 0 {
		exportSeconds = 30
	}

	return Config{
		Port:                port,
		MongoURI:            os.Getenv("MONGO_URI"),
		DBName:              dbName,
		AuditExportInterval: time.Duration(exportSeconds) * time.Second,
	}
}
