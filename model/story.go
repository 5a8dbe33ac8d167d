// model/story.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Story is one interactive story instance owned by a single user. The
// analytics engine is a read-only consumer; mutation happens through the
// story service as the reader progresses.
type Story struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"index;not null"`
	Title        string     `json:"title"`
	Language     string     `json:"language"`
	Status       string     `json:"status" gorm:"default:not_started"` // not_started, in_progress, finished
	AgeGroup     int        `json:"age_group"`
	CurrentScene int        `json:"current_scene"`
	TotalScenes  int        `json:"total_scenes"`
	MaximumPoint int        `json:"maximum_point"`
	Description  string     `json:"description" gorm:"type:text"`
	Themes       StringList `json:"themes" gorm:"type:text"`
	Choices      ChoiceList `json:"choices" gorm:"type:text"`

	// SessionSeconds is the total reading time in seconds, set when the
	// story is completed or carried over from a legacy import.
	SessionSeconds int `json:"session_seconds"`

	EstimatedReadingTime int    `json:"estimated_reading_time"`
	CoverObjectName      string `json:"cover_object_name"`

	// CreatedAt is nullable: legacy imports may lack it, and such records
	// are excluded from every time-bucketed view.
	CreatedAt  *time.Time `json:"created_at" gorm:"autoCreateTime:false"`
	FinishedAt *time.Time `json:"finished_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Choice is one branching decision made while reading. Outcome is the raw
// label stored with the story; only values in the configured good-outcome
// set count as the correct branch.
type Choice struct {
	Scene    int        `json:"scene,omitempty"`
	Outcome  string     `json:"choice"`
	ChosenAt *time.Time `json:"chosen_at,omitempty"`
}

// StringList stores a JSON array of strings in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// ChoiceList stores the ordered choice sequence in a text column.
type ChoiceList []Choice

func (l ChoiceList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ChoiceList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
