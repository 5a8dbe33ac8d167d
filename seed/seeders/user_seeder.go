package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dongeng-kita/dongeng_api/model"
)

// DemoUserEmail is the owner of all seeded story sessions.
const DemoUserEmail = "demo@dongengkita.id"

// UserSeeder handles seeding demo accounts
type UserSeeder struct {
	db *gorm.DB
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

// SeedUsers creates the demo parent account if it does not exist yet.
func (s *UserSeeder) SeedUsers() error {
	var existing model.User
	if err := s.db.Where("email = ?", DemoUserEmail).First(&existing).Error; err == nil {
		log.Println("Demo user already exists, skipping user seeding")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Demo123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	user := model.User{
		ID:             id.String(),
		Email:          DemoUserEmail,
		Username:       "demo_parent",
		Password:       string(hashedPassword),
		ChildBirthYear: time.Now().Year() - 7,
		LastLogin:      time.Now(),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.db.Create(&user).Error; err != nil {
		log.Printf("Error creating demo user: %v", err)
		return err
	}

	log.Printf("Created demo user: %s (password: Demo123!)", user.Email)
	return nil
}
