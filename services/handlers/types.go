package handlers

import (
	"mime/multipart"

	"github.com/dongeng-kita/dongeng_api/dto"
)

type AnalyticServiceInterface interface {
	Dashboard(userID string) (*dto.DashboardData, error)
	ConceptPerformance(userID string, query dto.AnalyticQuery) (*dto.ConceptPerformanceResponse, error)
	PerformanceTimeline(userID string, query dto.AnalyticQuery) (*dto.PerformanceTimelineResponse, error)
	OverallStatistics(userID string) (*dto.OverallStats, error)
}

type StoryServiceInterface interface {
	ListStories(userID string) ([]dto.StoryCard, error)
	GetStory(userID, storyID string) (*dto.StoryResponse, error)
	RecordChoice(userID, storyID string, req dto.RecordChoiceRequest) (*dto.StoryResponse, error)
	CompleteStory(userID, storyID string, req dto.CompleteStoryRequest) (*dto.StoryResponse, error)
	ImportStories(userID string, req dto.ImportStoriesRequest) (*dto.ImportStoriesResponse, error)
}

type AccountServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
}

type MediaServiceInterface interface {
	UploadStoryCover(userID, storyID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	GetStoryCover(userID, storyID string) (*dto.MediaUploadResponse, error)
}
