package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aihub/pkg/twitterapi"
)

var (
	cfg      Config
	logger   *zap.Logger
	store    Store
	twClient tweetSource
)

func main() {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger = newLogger(cfg.Release)
	defer func() { _ = logger.Sync() }()

	jwtSecret = []byte(cfg.JWTSecret)

	// Lightweight migrate command: `./aihub migrate` runs AutoMigrate and
	// seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		logger.Info("migration and seeding completed")
		return
	}

	initDB()
	store = newGormStore(db)
	twClient = twitterapi.New(cfg.TwitterAPIBase, cfg.RapidAPIKey)

	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	setupRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(release bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if release {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	return l
}
