package dto

import (
	"strings"
	"time"
)

// FlexTime accepts both RFC3339 timestamps and the naive
// "2006-01-02T15:04:05" form found in legacy story documents. Naive values
// are taken as UTC.
type FlexTime struct {
	time.Time
}

var flexLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}

	var err error
	for _, layout := range flexLayouts {
		var parsed time.Time
		parsed, err = time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return err
}

// StoryPayload is the legacy document shape accepted by the import
// endpoint. Older documents use "tema" where newer ones use "theme"; the
// normalization happens here, at the ingestion boundary, so the aggregators
// only ever see a single themes field.
type StoryPayload struct {
	Title                string          `json:"title"`
	Theme                []string        `json:"theme"`
	Tema                 []string        `json:"tema"`
	Language             string          `json:"language"`
	Status               string          `json:"status" validate:"omitempty,oneof=not_started in_progress finished"`
	AgeGroup             int             `json:"age_group"`
	CurrentScene         int             `json:"current_scene"`
	TotalScenes          int             `json:"total_scenes"`
	MaximumPoint         int             `json:"maximum_point"`
	Description          string          `json:"description"`
	EstimatedReadingTime int             `json:"estimated_reading_time"`
	CreatedAt            *FlexTime       `json:"created_at"`
	FinishedAt           *FlexTime       `json:"finished_at"`
	UserStory            *UserStoryBlock `json:"user_story"`
}

type UserStoryBlock struct {
	Choices      []ChoicePayload `json:"choices"`
	FinishedTime int             `json:"finished_time"`
}

type ChoicePayload struct {
	Scene  int    `json:"scene"`
	Choice string `json:"choice"`
}

// NormalizedThemes resolves the tema/theme split, preferring the legacy
// field when both are present, mirroring how existing documents were read.
func (p *StoryPayload) NormalizedThemes() []string {
	if len(p.Tema) > 0 {
		return p.Tema
	}
	return p.Theme
}

type ImportStoriesRequest struct {
	Stories []StoryPayload `json:"stories" validate:"required,min=1,dive"`
}

type ImportStoriesResponse struct {
	Imported int      `json:"imported"`
	StoryIDs []string `json:"story_ids"`
}

// StoryCard is the compact listing shape.
type StoryCard struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Themes       []string   `json:"themes"`
	CurrentScene int        `json:"current_scene"`
	TotalScenes  int        `json:"total_scenes"`
	CoverURL     string     `json:"cover_url,omitempty"`
	CreatedAt    *time.Time `json:"created_at"`
}

type StoryResponse struct {
	ID                   string          `json:"id"`
	Title                string          `json:"title"`
	Language             string          `json:"language"`
	Status               string          `json:"status"`
	AgeGroup             int             `json:"age_group"`
	CurrentScene         int             `json:"current_scene"`
	TotalScenes          int             `json:"total_scenes"`
	MaximumPoint         int             `json:"maximum_point"`
	Description          string          `json:"description"`
	Themes               []string        `json:"themes"`
	Choices              []ChoicePayload `json:"choices"`
	SessionSeconds       int             `json:"session_seconds"`
	EstimatedReadingTime int             `json:"estimated_reading_time"`
	CoverURL             string          `json:"cover_url,omitempty"`
	CreatedAt            *time.Time      `json:"created_at"`
	FinishedAt           *time.Time      `json:"finished_at"`
}

type RecordChoiceRequest struct {
	Scene   int    `json:"scene" validate:"gte=0"`
	Outcome string `json:"choice" validate:"required"`
}

type CompleteStoryRequest struct {
	SessionSeconds int `json:"session_seconds" validate:"gte=0"`
}

type MediaUploadResponse struct {
	StoryID    string `json:"story_id"`
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
}
