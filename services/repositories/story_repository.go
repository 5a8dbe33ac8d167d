package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dongeng-kita/dongeng_api/model"
)

// StoryRepository handles story record database operations. Every query is
// scoped to an owner: stories are only ever read or written in the scope of
// the user that owns them.
type StoryRepository struct {
	BaseRepository
}

func NewStoryRepository(db *gorm.DB) *StoryRepository {
	return &StoryRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *StoryRepository) FindByOwner(ownerID string) ([]model.Story, error) {
	var stories []model.Story
	if err := r.db.Where("user_id = ?", ownerID).Order("created_at").Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *StoryRepository) GetByID(ownerID, storyID string) (*model.Story, error) {
	var story model.Story
	if err := r.db.Where("id = ? AND user_id = ?", storyID, ownerID).First(&story).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *StoryRepository) Create(story *model.Story) (*model.Story, error) {
	if story.ID == "" {
		id, _ := uuid.NewV7()
		story.ID = id.String()
	}
	story.UpdatedAt = time.Now().UTC()
	if err := r.db.Create(story).Error; err != nil {
		return nil, err
	}
	return story, nil
}

func (r *StoryRepository) Update(story *model.Story) error {
	story.UpdatedAt = time.Now().UTC()
	return r.db.Save(story).Error
}

func (r *StoryRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Story{}).Where("user_id = ?", ownerID).Count(&count).Error
	return count, err
}
