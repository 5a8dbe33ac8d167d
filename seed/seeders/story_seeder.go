package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dongeng-kita/dongeng_api/model"
	"github.com/dongeng-kita/dongeng_api/shared"
)

// StorySeeder handles seeding sample story sessions
type StorySeeder struct {
	db *gorm.DB
}

func NewStorySeeder(db *gorm.DB) *StorySeeder {
	return &StorySeeder{db: db}
}

type storyTemplate struct {
	title    string
	themes   []string
	status   string
	scenes   int
	outcomes []string
	daysAgo  int
	seconds  int
}

// Seeded sessions span several weeks so every dashboard view has data.
var storyTemplates = []storyTemplate{
	{
		title:    "Celengan Si Kecil",
		themes:   []string{"menabung", "kesabaran"},
		status:   shared.StatusInProgress,
		scenes:   8,
		outcomes: []string{"baik", "baik", "buruk"},
		daysAgo:  1,
	},
	{
		title:    "Kancil dan Kebun Pak Tani",
		themes:   []string{"kejujuran"},
		status:   shared.StatusFinished,
		scenes:   6,
		outcomes: []string{"baik", "baik", "baik", "buruk", "baik", "baik"},
		daysAgo:  4,
		seconds:  540,
	},
	{
		title:    "Petualangan di Hutan Bambu",
		themes:   []string{"keberanian", "tolong-menolong"},
		status:   shared.StatusFinished,
		scenes:   7,
		outcomes: []string{"buruk", "baik", "baik", "baik", "buruk", "baik", "baik"},
		daysAgo:  9,
		seconds:  720,
	},
	{
		title:    "Burung Pipit yang Jujur",
		themes:   []string{"kejujuran", "kesabaran"},
		status:   shared.StatusFinished,
		scenes:   5,
		outcomes: []string{"baik", "buruk", "buruk", "baik", "buruk"},
		daysAgo:  16,
		seconds:  480,
	},
	{
		title:    "Menabung untuk Sepeda Baru",
		themes:   []string{"menabung"},
		status:   shared.StatusFinished,
		scenes:   6,
		outcomes: []string{"baik", "baik", "baik", "baik", "baik", "baik"},
		daysAgo:  35,
		seconds:  600,
	},
	{
		title:    "Rahasia Taman Belakang",
		themes:   []string{"keberanian"},
		status:   shared.StatusNotStarted,
		scenes:   6,
		outcomes: nil,
		daysAgo:  0,
	},
}

// SeedStories creates sample story sessions for the demo user.
func (s *StorySeeder) SeedStories() error {
	var owner model.User
	if err := s.db.Where("email = ?", DemoUserEmail).First(&owner).Error; err != nil {
		log.Println("Demo user not found, run user seeding first")
		return err
	}

	var count int64
	if err := s.db.Model(&model.Story{}).Where("user_id = ?", owner.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Demo user already has %d stories, skipping story seeding", count)
		return nil
	}

	for _, tpl := range storyTemplates {
		story, err := buildStory(owner.ID, tpl)
		if err != nil {
			return err
		}
		if err := s.db.Create(story).Error; err != nil {
			log.Printf("Error creating story %q: %v", tpl.title, err)
			return err
		}
		log.Printf("Created story: %s", tpl.title)
	}

	return nil
}

func buildStory(userID string, tpl storyTemplate) (*model.Story, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	createdAt := time.Now().AddDate(0, 0, -tpl.daysAgo)
	choices := make(model.ChoiceList, 0, len(tpl.outcomes))
	for i, outcome := range tpl.outcomes {
		chosenAt := createdAt.Add(time.Duration(i+1) * time.Minute)
		choices = append(choices, model.Choice{
			Scene:    i + 1,
			Outcome:  outcome,
			ChosenAt: &chosenAt,
		})
	}

	story := &model.Story{
		ID:                   id.String(),
		UserID:               userID,
		Title:                tpl.title,
		Language:             "id",
		Status:               tpl.status,
		AgeGroup:             7,
		CurrentScene:         len(tpl.outcomes),
		TotalScenes:          tpl.scenes,
		Themes:               tpl.themes,
		Choices:              choices,
		SessionSeconds:       tpl.seconds,
		EstimatedReadingTime: tpl.scenes * 90,
		CreatedAt:            &createdAt,
		UpdatedAt:            time.Now(),
	}

	if tpl.status == shared.StatusFinished {
		finishedAt := createdAt.Add(time.Duration(tpl.seconds) * time.Second)
		story.FinishedAt = &finishedAt
		story.CurrentScene = tpl.scenes
	}

	return story, nil
}
