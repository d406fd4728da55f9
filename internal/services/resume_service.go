package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/mapper"
	"github.com/stratacloud/careers-backend/internal/models"
	"github.com/stratacloud/careers-backend/internal/storage"
)

// DownloadLinkTTL is how long a résumé download link stays valid.
const DownloadLinkTTL = 15 * time.Minute

// ResumeUpload is a résumé file received in one request.
type ResumeUpload struct {
	FileName    string `validate:"required,max=255"`
	ContentType string
	Size        int64 `validate:"gt=0"`
	Body        io.Reader
	IsDefault   bool
}

// ResumeService manages the résumés embedded in a user record. Every
// mutation is a read-modify-write of the whole user item.
type ResumeService struct {
	store   database.Store
	objects storage.ObjectStore
	now     func() time.Time
}

func NewResumeService(store database.Store, objects storage.ObjectStore) *ResumeService {
	return &ResumeService{store: store, objects: objects, now: time.Now}
}

func (s *ResumeService) List(ctx context.Context, userID string) ([]dto.Resume, error) {
	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	return mapper.ToResumes(user.Resumes), nil
}

// Upload stores the file and appends its metadata to the user.
func (s *ResumeService) Upload(ctx context.Context, userID string, in *ResumeUpload) (*dto.Resume, error) {
	fileName := strings.TrimSpace(in.FileName)
	if err := validateStruct(&ResumeUpload{FileName: fileName, Size: in.Size}); err != nil {
		return nil, err
	}
	fileType, err := checkResumeFile(in.ContentType, in.Size, MaxProfileResumeSize)
	if err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resumeID := NewResumeID(now)
	key := ProfileResumeKey(userID, resumeID, fileType)

	if err := s.objects.Put(ctx, key, models.MimeFor(fileType), in.Body, in.Size); err != nil {
		return nil, fmt.Errorf("failed to store resume file: %w", err)
	}

	rec := models.ResumeRecord{
		ResumeID:   resumeID,
		FileName:   fileName,
		FileSize:   in.Size,
		FileType:   fileType,
		S3Key:      key,
		UploadedAt: now.UTC().Format(time.RFC3339),
	}
	return s.appendResume(ctx, user, rec, in.IsDefault)
}

// Confirm records metadata for a file the client uploaded through a presigned
// link. The object itself is not checked.
func (s *ResumeService) Confirm(ctx context.Context, userID string, req *dto.ConfirmResumeRequest) (*dto.Resume, error) {
	fileName := strings.TrimSpace(req.FileName)
	key := strings.TrimSpace(req.S3Key)
	in := *req
	in.FileName, in.S3Key, in.ResumeID = fileName, key, strings.TrimSpace(req.ResumeID)
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(key, profileResumePrefix(userID)) {
		return nil, validationError("s3Key does not belong to this user")
	}
	fileType, err := checkResumeFile(req.FileType, req.FileSize, MaxProfileResumeSize)
	if err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resumeID := strings.TrimSpace(req.ResumeID)
	if resumeID == "" {
		resumeID = NewResumeID(now)
	}
	if user.FindResume(resumeID) >= 0 {
		return nil, ErrResumeExists
	}

	rec := models.ResumeRecord{
		ResumeID:   resumeID,
		FileName:   fileName,
		FileSize:   req.FileSize,
		FileType:   fileType,
		S3Key:      key,
		UploadedAt: now.UTC().Format(time.RFC3339),
	}
	return s.appendResume(ctx, user, rec, req.IsDefault)
}

func (s *ResumeService) appendResume(ctx context.Context, user *models.UserRecord, rec models.ResumeRecord, makeDefault bool) (*dto.Resume, error) {
	user.Resumes = append(user.Resumes, rec)
	idx := len(user.Resumes) - 1
	if makeDefault {
		user.SetDefaultResume(idx)
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	r := mapper.ToResume(user.Resumes[idx])
	return &r, nil
}

// Delete removes the résumé from the user. Remaining résumés keep their
// default flags, so deleting the default leaves none marked default.
func (s *ResumeService) Delete(ctx context.Context, userID, resumeID string) error {
	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return err
	}
	idx := user.FindResume(resumeID)
	if idx < 0 {
		return ErrResumeNotFound
	}

	removed := user.Resumes[idx]
	user.Resumes = append(user.Resumes[:idx], user.Resumes[idx+1:]...)
	if err := s.save(ctx, user); err != nil {
		return err
	}

	if removed.S3Key != "" {
		if err := s.objects.Delete(ctx, removed.S3Key); err != nil {
			slog.Warn("failed to delete resume file", "user_id", userID, "key", removed.S3Key, "error", err)
		}
	}
	return nil
}

// Patch toggles the default flag. Setting it clears every other résumé's flag.
func (s *ResumeService) Patch(ctx context.Context, userID, resumeID string, req *dto.PatchResumeRequest) (*dto.Resume, error) {
	if req.IsDefault == nil {
		return nil, validationError("isDefault is required")
	}

	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	idx := user.FindResume(resumeID)
	if idx < 0 {
		return nil, ErrResumeNotFound
	}

	if *req.IsDefault {
		user.SetDefaultResume(idx)
	} else {
		user.Resumes[idx].IsDefault = false
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	r := mapper.ToResume(user.Resumes[idx])
	return &r, nil
}

func (s *ResumeService) DownloadURL(ctx context.Context, userID, resumeID string) (*dto.ResumeDownloadResponse, error) {
	rec, err := s.find(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	url, err := s.objects.PresignGet(ctx, rec.S3Key, DownloadLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}
	return &dto.ResumeDownloadResponse{DownloadURL: url, FileName: rec.FileName}, nil
}

// Open streams the stored file. The caller closes the returned object.
func (s *ResumeService) Open(ctx context.Context, userID, resumeID string) (*storage.Object, *dto.Resume, error) {
	rec, err := s.find(ctx, userID, resumeID)
	if err != nil {
		return nil, nil, err
	}
	obj, err := s.objects.Get(ctx, rec.S3Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrResumeFileMissing
		}
		return nil, nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	r := mapper.ToResume(*rec)
	return obj, &r, nil
}

func (s *ResumeService) find(ctx context.Context, userID, resumeID string) (*models.ResumeRecord, error) {
	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	idx := user.FindResume(resumeID)
	if idx < 0 {
		return nil, ErrResumeNotFound
	}
	return &user.Resumes[idx], nil
}

func (s *ResumeService) save(ctx context.Context, user *models.UserRecord) error {
	user.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	if err := s.store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// NewResumeID derives an opaque id from the time and a random suffix.
func NewResumeID(now time.Time) string {
	return fmt.Sprintf("resume_%d_%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
}

func profileResumePrefix(userID string) string {
	return path.Join("resumes", userID) + "/"
}

// ProfileResumeKey is the object key of a résumé uploaded from a profile.
func ProfileResumeKey(userID, resumeID, fileType string) string {
	return profileResumePrefix(userID) + resumeID + "." + fileType
}

// checkResumeFile validates size and type and returns the short file type.
func checkResumeFile(fileType string, size, limit int64) (string, error) {
	if size <= 0 {
		return "", validationError("fileSize must be positive")
	}
	if size > limit {
		return "", fmt.Errorf("%w: maximum is %dMB", ErrFileTooLarge, limit>>20)
	}
	ft, ok := models.ResolveFileType(fileType)
	if !ok {
		return "", ErrUnsupportedFileType
	}
	return ft, nil
}
