package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/julio-sa/DieTI/models"
)

type Config struct {
	DB           DBConfig
	HTTPPort     string
	JWTSecret    string
	SESEmail     string
	AWSRegion    string
	RolloverCron string
	CORSOrigins  []string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func Load(log *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system env")
	}

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		},
		HTTPPort:     envOr("PORT", "8080"),
		JWTSecret:    getEnv("JWT_SECRET", log),
		SESEmail:     os.Getenv("SES_EMAIL"),
		AWSRegion:    os.Getenv("AWS_REGION"),
		RolloverCron: envOr("ROLLOVER_CRON", "5 0 * * *"),
		CORSOrigins: []string{
			"http://localhost:4200",
			"https://dieti-backend.onrender.com",
			"https://dieti.vercel.app",
		},
	}
}

// ConnectDB opens the Postgres connection and migrates the schema. The
// returned handle is the only one in the process; everything downstream
// receives it through constructors.
func ConnectDB(cfg *Config, log *zap.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port, cfg.DB.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed", zap.Error(err))
	}
	return db
}

// Migrate is separate so tests can run it against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Recipe{},
		&models.FoodLog{},
		&models.HistoricalFoodLog{},
		&models.DailyIntake{},
		&models.HistoricalIntake{},
	)
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Required environment variable not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func envOr(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return fallback
}
