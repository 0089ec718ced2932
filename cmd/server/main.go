package main

import (
	"log"

	"cslab.kr/securityhub/internal/config"
	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/server"
	"cslab.kr/securityhub/pkg/database"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(database.Options{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedDemoAccounts(db); err != nil {
			log.Fatalf("failed to seed demo accounts: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	} else {
		log.Println("REDIS_ADDR not set; rate limiting and live notifications are disabled")
	}

	srv := server.NewServer(cfg, db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.TosConsent{},
		&entity.Post{},
		&entity.PostComment{},
		&entity.News{},
		&entity.NewsComment{},
		&entity.Notification{},
		&entity.ScanRecord{},
		&entity.ExpertProfile{},
		&entity.UserSettings{},
		&entity.UserStatistics{},
		&entity.UserCredits{},
		&entity.MessageThread{},
		&entity.Message{},
	)
}

// seedDemoAccounts creates the fixed demo user and demo expert so a fresh
// development database is immediately usable.
func seedDemoAccounts(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	expertField := "피싱 분석"
	accounts := []entity.User{
		{
			Email:         "user@example.com",
			Nickname:      "데모사용자",
			Password:      string(hashed),
			AccountStatus: entity.AccountStatusActive,
		},
		{
			Email:         "expert@example.com",
			Nickname:      "데모전문가",
			Password:      string(hashed),
			IsExpert:      true,
			ExpertField:   &expertField,
			AccountStatus: entity.AccountStatusActive,
		},
	}

	for _, account := range accounts {
		var count int64
		if err := db.Model(&entity.User{}).
			Where("email = ?", account.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&account).Error; err != nil {
			return err
		}
		log.Printf("seeded demo account %s", account.Email)
	}

	return nil
}
