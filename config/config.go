package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AWSRegion   string
	SESSource   string
	SMSSenderID string
	S3Bucket    string
	CDNBaseURL  string

	AssessorURL string
	JWTSecret   string

	// Producer cadences (local time, hours).
	RoutineCheckHour    int
	MorningReminderHour int
	EveningReminderHour int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	return &Config{
		Port:       getEnv("PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "healthsync"),
		DBPort:     getEnv("DB_PORT", "5432"),

		AWSRegion:   getEnv("AWS_REGION", "ap-south-1"),
		SESSource:   os.Getenv("SES_EMAIL"),
		SMSSenderID: os.Getenv("SMS_SENDER_ID"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		CDNBaseURL:  os.Getenv("CLOUDFRONT_URL"),

		AssessorURL: os.Getenv("ASSESSOR_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		RoutineCheckHour:    getEnvInt("ROUTINE_CHECK_HOUR", 9),
		MorningReminderHour: getEnvInt("MORNING_REMINDER_HOUR", 8),
		EveningReminderHour: getEnvInt("EVENING_REMINDER_HOUR", 20),
	}
}

func InitDB(cfg *Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Alert{},
		&models.MedicationSchedule{},
		&models.AdherenceEntry{},
		&models.ReminderLog{},
		&models.DailyMonitoringEntry{},
		&models.SymptomReport{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	return db
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
