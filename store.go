package main

import (
	"errors"

	"aihub/models"

	"gorm.io/gorm"
)

// Store is the persistence surface the auth gate and the ingestion pipeline
// run against. Production backs it with gorm/Postgres; tests substitute an
// in-memory fake.
type Store interface {
	AdminConfig() (*models.AdminConfig, error) // nil, nil when no record exists
	CreateAdminConfig(cfg *models.AdminConfig) error
	SetSessionToken(token string) error

	Thresholds() (*models.TwitterThreshold, error) // nil, nil when no row exists
	SaveThresholds(t *models.TwitterThreshold) error

	TweetExists(tweetID string) (bool, error)
	CreateTwitterPost(p *models.TwitterPost) error
	PublishedPosts() ([]models.TwitterPost, error)
	DeleteTwitterPost(id string) error
}

type gormStore struct {
	db *gorm.DB
}

func newGormStore(db *gorm.DB) *gormStore {
	return &gormStore{db: db}
}

func (s *gormStore) AdminConfig() (*models.AdminConfig, error) {
	var cfg models.AdminConfig
	err := s.db.Where("id = ?", models.AdminConfigID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *gormStore) CreateAdminConfig(cfg *models.AdminConfig) error {
	cfg.ID = models.AdminConfigID
	return s.db.Create(cfg).Error
}

func (s *gormStore) SetSessionToken(token string) error {
	return s.db.Model(&models.AdminConfig{}).
		Where("id = ?", models.AdminConfigID).
		Update("session_token", token).Error
}

func (s *gormStore) Thresholds() (*models.TwitterThreshold, error) {
	var t models.TwitterThreshold
	err := s.db.Where("id = ?", models.ThresholdID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *gormStore) SaveThresholds(t *models.TwitterThreshold) error {
	t.ID = models.ThresholdID
	return s.db.Save(t).Error
}

func (s *gormStore) TweetExists(tweetID string) (bool, error) {
	var cnt int64
	err := s.db.Model(&models.TwitterPost{}).Where("tweet_id = ?", tweetID).Count(&cnt).Error
	return cnt > 0, err
}

func (s *gormStore) CreateTwitterPost(p *models.TwitterPost) error {
	return s.db.Create(p).Error
}

func (s *gormStore) PublishedPosts() ([]models.TwitterPost, error) {
	var posts []models.TwitterPost
	err := s.db.Where("is_published = ?", true).Order("posted_at desc").Find(&posts).Error
	return posts, err
}

func (s *gormStore) DeleteTwitterPost(id string) error {
	return s.db.Where("id = ?", id).Delete(&models.TwitterPost{}).Error
}
