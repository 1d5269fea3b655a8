package main

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"aihub/models"
)

var db *gorm.DB

func initDB() {
	if cfg.DBDSN == "" {
		logger.Fatal("DB_DSN is not set; this service requires a Postgres DSN")
	}
	var err error
	db, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect postgres database", zap.Error(err))
	}
	if cfg.DBAutoMigrate {
		// Migrate models individually so a failure on one doesn't block others
		for _, m := range []any{
			&models.AdminConfig{},
			&models.TwitterThreshold{},
			&models.TwitterPost{},
			&models.Practice{},
			&models.GalleryImage{},
			&models.BlogPost{},
		} {
			if err := db.AutoMigrate(m); err != nil {
				logger.Warn("migration warning", zap.Error(err))
			}
		}
	}
	seedDB()
}

// seedDB ensures the default threshold configuration row exists. The
// credential record is deliberately NOT seeded; it is created lazily on the
// first successful login against the configured default password.
func seedDB() {
	var cnt int64
	db.Model(&models.TwitterThreshold{}).Where("id = ?", models.ThresholdID).Count(&cnt)
	if cnt == 0 {
		t := defaultThresholds()
		if err := db.Create(t).Error; err != nil {
			logger.Warn("failed to seed default thresholds", zap.Error(err))
		} else {
			logger.Info("seeded default scrape thresholds",
				zap.Int("min_likes", t.MinLikes),
				zap.Int("min_retweets", t.MinRetweets),
				zap.Int("min_replies", t.MinReplies))
		}
	}
}
