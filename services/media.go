package services

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/services/repositories"
	"github.com/dongeng-kita/dongeng_api/shared"
)

// MediaService manages story cover images on top of the MinIO blob store.
type MediaService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	minioSvc *MinIOService

	storyRepo *repositories.StoryRepository
}

const MEDIA_SVC = "media_svc"

const coverURLExpiry = 24 * time.Hour

var allowedCoverTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	svc.storyRepo = repositories.NewStoryRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *MediaService) UploadStoryCover(userID, storyID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	story, err := svc.storyRepo.GetByID(userID, storyID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowedCoverTypes[ext]
	if !ok {
		return nil, shared.NewAppError(http.StatusBadRequest, "unsupported cover image type")
	}

	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	objectName := fmt.Sprintf("covers/%s/%s%s", userID, storyID, ext)
	info, err := svc.minioSvc.UploadFile(objectName, reader, file.Size, contentType)
	if err != nil {
		return nil, err
	}

	story.CoverObjectName = objectName
	if err := svc.storyRepo.Update(story); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	url, err := svc.CoverURL(objectName)
	if err != nil {
		log.WithError(err).WithField("story_id", storyID).Warn("Failed to presign uploaded cover")
	}

	return &dto.MediaUploadResponse{
		StoryID:    storyID,
		ObjectName: objectName,
		URL:        url,
		Size:       info.Size,
	}, nil
}

func (svc *MediaService) GetStoryCover(userID, storyID string) (*dto.MediaUploadResponse, error) {
	story, err := svc.storyRepo.GetByID(userID, storyID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if story.CoverObjectName == "" {
		return nil, shared.NewAppError(http.StatusNotFound, "story has no cover image")
	}

	url, err := svc.CoverURL(story.CoverObjectName)
	if err != nil {
		return nil, err
	}

	return &dto.MediaUploadResponse{
		StoryID:    storyID,
		ObjectName: story.CoverObjectName,
		URL:        url,
	}, nil
}

func (svc *MediaService) CoverURL(objectName string) (string, error) {
	return svc.minioSvc.GetFileURL(objectName, coverURLExpiry)
}
