package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/model"
	"github.com/dongeng-kita/dongeng_api/services/repositories"
	"github.com/dongeng-kita/dongeng_api/shared"
)

// StoryService owns the story record lifecycle: listing, reading progress,
// completion and legacy imports. It is the only writer of story records;
// the analytics engine consumes them read-only. Every mutation drops the
// owner's cached analytics.
type StoryService struct {
	context.DefaultService

	sqlSvc      *PostgresService
	analyticSvc *AnalyticService
	mediaSvc    *MediaService

	storyRepo *repositories.StoryRepository
}

const STORY_SVC = "story_svc"

func (svc StoryService) Id() string {
	return STORY_SVC
}

func (svc *StoryService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.analyticSvc = svc.Service(ANALYTIC_SVC).(*AnalyticService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.storyRepo = repositories.NewStoryRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *StoryService) ListStories(userID string) ([]dto.StoryCard, error) {
	stories, err := svc.storyRepo.FindByOwner(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	cards := make([]dto.StoryCard, 0, len(stories))
	for _, story := range stories {
		cards = append(cards, dto.StoryCard{
			ID:           story.ID,
			Title:        story.Title,
			Status:       story.Status,
			Themes:       story.Themes,
			CurrentScene: story.CurrentScene,
			TotalScenes:  story.TotalScenes,
			CoverURL:     svc.coverURL(story),
			CreatedAt:    story.CreatedAt,
		})
	}
	return cards, nil
}

func (svc *StoryService) GetStory(userID, storyID string) (*dto.StoryResponse, error) {
	story, err := svc.storyRepo.GetByID(userID, storyID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	response := MapStoryResponse(*story, svc.coverURL(*story))
	return &response, nil
}

// RecordChoice appends one decision to the story and advances the scene
// cursor.
func (svc *StoryService) RecordChoice(userID, storyID string, req dto.RecordChoiceRequest) (*dto.StoryResponse, error) {
	story, err := svc.storyRepo.GetByID(userID, storyID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	now := time.Now().UTC()
	story.Choices = append(story.Choices, model.Choice{
		Scene:    req.Scene,
		Outcome:  req.Outcome,
		ChosenAt: &now,
	})

	if story.Status == shared.StatusNotStarted {
		story.Status = shared.StatusInProgress
	}
	if req.Scene > story.CurrentScene {
		story.CurrentScene = req.Scene
	} else {
		story.CurrentScene++
	}

	if err := svc.storyRepo.Update(story); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.analyticSvc.InvalidateCache(userID)

	response := MapStoryResponse(*story, svc.coverURL(*story))
	return &response, nil
}

// CompleteStory marks the story finished and records the session duration.
func (svc *StoryService) CompleteStory(userID, storyID string, req dto.CompleteStoryRequest) (*dto.StoryResponse, error) {
	story, err := svc.storyRepo.GetByID(userID, storyID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	now := time.Now().UTC()
	story.Status = shared.StatusFinished
	story.FinishedAt = &now
	story.SessionSeconds = req.SessionSeconds
	if story.TotalScenes > 0 {
		story.CurrentScene = story.TotalScenes
	}

	if err := svc.storyRepo.Update(story); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.analyticSvc.InvalidateCache(userID)

	response := MapStoryResponse(*story, svc.coverURL(*story))
	return &response, nil
}

// ImportStories ingests legacy story documents. All legacy-field
// normalization (tema vs theme, naive timestamps, nested session duration)
// happens here so downstream consumers only ever see the typed record.
func (svc *StoryService) ImportStories(userID string, req dto.ImportStoriesRequest) (*dto.ImportStoriesResponse, error) {
	storyIDs := make([]string, 0, len(req.Stories))
	for _, payload := range req.Stories {
		story := normalizeStoryPayload(userID, payload)
		if _, err := svc.storyRepo.Create(&story); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		storyIDs = append(storyIDs, story.ID)
	}

	svc.analyticSvc.InvalidateCache(userID)

	log.WithFields(log.Fields{"user_id": userID, "count": len(storyIDs)}).Info("Imported legacy stories")

	return &dto.ImportStoriesResponse{
		Imported: len(storyIDs),
		StoryIDs: storyIDs,
	}, nil
}

func (svc *StoryService) coverURL(story model.Story) string {
	if story.CoverObjectName == "" || svc.mediaSvc == nil {
		return ""
	}

	url, err := svc.mediaSvc.CoverURL(story.CoverObjectName)
	if err != nil {
		log.WithError(err).WithField("story_id", story.ID).Warn("Failed to presign cover URL")
		return ""
	}
	return url
}

func normalizeStoryPayload(userID string, payload dto.StoryPayload) model.Story {
	id, _ := uuid.NewV7()

	status := payload.Status
	if status == "" {
		status = shared.StatusNotStarted
	}

	story := model.Story{
		ID:                   id.String(),
		UserID:               userID,
		Title:                payload.Title,
		Language:             payload.Language,
		Status:               status,
		AgeGroup:             payload.AgeGroup,
		CurrentScene:         payload.CurrentScene,
		TotalScenes:          payload.TotalScenes,
		MaximumPoint:         payload.MaximumPoint,
		Description:          payload.Description,
		EstimatedReadingTime: payload.EstimatedReadingTime,
		Themes:               payload.NormalizedThemes(),
	}

	if payload.CreatedAt != nil {
		createdAt := payload.CreatedAt.UTC()
		story.CreatedAt = &createdAt
	}
	if payload.FinishedAt != nil {
		finishedAt := payload.FinishedAt.UTC()
		story.FinishedAt = &finishedAt
	}

	if payload.UserStory != nil {
		story.SessionSeconds = payload.UserStory.FinishedTime
		for _, choice := range payload.UserStory.Choices {
			story.Choices = append(story.Choices, model.Choice{
				Scene:   choice.Scene,
				Outcome: choice.Choice,
			})
		}
	}

	return story
}

// MapStoryResponse converts a story row into its API shape.
func MapStoryResponse(story model.Story, coverURL string) dto.StoryResponse {
	choices := make([]dto.ChoicePayload, 0, len(story.Choices))
	for _, choice := range story.Choices {
		choices = append(choices, dto.ChoicePayload{
			Scene:  choice.Scene,
			Choice: choice.Outcome,
		})
	}

	return dto.StoryResponse{
		ID:                   story.ID,
		Title:                story.Title,
		Language:             story.Language,
		Status:               story.Status,
		AgeGroup:             story.AgeGroup,
		CurrentScene:         story.CurrentScene,
		TotalScenes:          story.TotalScenes,
		MaximumPoint:         story.MaximumPoint,
		Description:          story.Description,
		Themes:               story.Themes,
		Choices:              choices,
		SessionSeconds:       story.SessionSeconds,
		EstimatedReadingTime: story.EstimatedReadingTime,
		CoverURL:             coverURL,
		CreatedAt:            story.CreatedAt,
		FinishedAt:           story.FinishedAt,
	}
}
