package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/dongeng-kita/dongeng_api/model"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.db.AutoMigrate(&model.User{}, &model.Story{}); err != nil {
		return err
	}

	// 1. Seed users first (stories need an owner)
	userSeeder := NewUserSeeder(s.db)
	if err := userSeeder.SeedUsers(); err != nil {
		log.Printf("User seeding failed: %v", err)
		return err
	}

	// 2. Seed story sessions for the demo user
	storySeeder := NewStorySeeder(s.db)
	if err := storySeeder.SeedStories(); err != nil {
		log.Printf("Story seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedUsersOnly() error {
	if err := s.db.AutoMigrate(&model.User{}); err != nil {
		return err
	}
	userSeeder := NewUserSeeder(s.db)
	return userSeeder.SeedUsers()
}

func (s *MainSeeder) SeedStoriesOnly() error {
	if err := s.db.AutoMigrate(&model.Story{}); err != nil {
		return err
	}
	storySeeder := NewStorySeeder(s.db)
	return storySeeder.SeedStories()
}
