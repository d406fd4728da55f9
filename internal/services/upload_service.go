package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/models"
	"github.com/stratacloud/careers-backend/internal/storage"
)

// Size limits for the two upload flows. They are independent.
const (
	MaxApplicationResumeSize int64 = 10 << 20
	MaxProfileResumeSize     int64 = 5 << 20
)

// UploadLinkTTL is how long a presigned upload link stays valid.
const UploadLinkTTL = 5 * time.Minute

type UploadService struct {
	store   database.Store
	objects storage.ObjectStore
	now     func() time.Time
}

func NewUploadService(store database.Store, objects storage.ObjectStore) *UploadService {
	return &UploadService{store: store, objects: objects, now: time.Now}
}

// PresignApplication issues a PUT link for a résumé attached to a job
// application.
func (s *UploadService) PresignApplication(ctx context.Context, req *dto.PresignRequest) (*dto.PresignResponse, error) {
	fileName := strings.TrimSpace(req.FileName)
	jobID := strings.TrimSpace(req.JobID)
	if err := validateVar("jobId", jobID, "required"); err != nil {
		return nil, err
	}
	in := *req
	in.FileName, in.JobID = fileName, jobID
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	fileType, err := checkResumeFile(req.FileType, req.FileSize, MaxApplicationResumeSize)
	if err != nil {
		return nil, err
	}

	key := ApplicationResumeKey(jobID, fileType)
	url, err := s.objects.PresignPut(ctx, key, models.MimeFor(fileType), UploadLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}
	return &dto.PresignResponse{PresignedURL: url, S3Key: key, FileName: fileName}, nil
}

// PresignProfile issues a PUT link for a profile résumé. The client confirms
// the upload afterwards with the returned resumeId and key.
func (s *UploadService) PresignProfile(ctx context.Context, userID string, req *dto.PresignRequest) (*dto.ProfilePresignResponse, error) {
	fileName := strings.TrimSpace(req.FileName)
	in := *req
	in.FileName = fileName
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	fileType, err := checkResumeFile(req.FileType, req.FileSize, MaxProfileResumeSize)
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.store, userID); err != nil {
		return nil, err
	}

	resumeID := NewResumeID(s.now())
	key := ProfileResumeKey(userID, resumeID, fileType)
	url, err := s.objects.PresignPut(ctx, key, models.MimeFor(fileType), UploadLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}
	return &dto.ProfilePresignResponse{
		PresignedURL: url,
		S3Key:        key,
		FileName:     fileName,
		ResumeID:     resumeID,
	}, nil
}

// ApplicationResumeKey is a fresh object key under the job's prefix.
func ApplicationResumeKey(jobID, fileType string) string {
	return path.Join("resumes", jobID, uuid.NewString()+"."+fileType)
}
