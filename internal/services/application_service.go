package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stratacloud/careers-backend/internal/catalog"
	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/mapper"
	"github.com/stratacloud/careers-backend/internal/models"
)

// ApplicantFilter narrows the admin applicant listing. Empty fields match all.
type ApplicantFilter struct {
	JobID  string
	Status string
}

type ApplicationService struct {
	store database.Store
	jobs  *catalog.Catalog
	now   func() time.Time
}

func NewApplicationService(store database.Store, jobs *catalog.Catalog) *ApplicationService {
	return &ApplicationService{store: store, jobs: jobs, now: time.Now}
}

func (s *ApplicationService) Submit(ctx context.Context, req *dto.SubmitApplicationRequest) (*dto.SubmitApplicationResponse, error) {
	jobID := strings.TrimSpace(req.JobID)
	email := strings.TrimSpace(req.Email)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	in := *req
	in.JobID, in.Email, in.FirstName, in.LastName = jobID, email, firstName, lastName
	if err := validateStruct(&in); err != nil {
		return nil, err
	}

	job, ok := s.jobs.Get(jobID)
	if !ok {
		return nil, ErrJobNotFound
	}
	now := s.now().UTC()
	if !job.IsOpen(now) {
		return nil, ErrJobClosed
	}

	rec := models.NewApplicationRecord(uuid.NewString(), jobID, email, now.Format(models.AppliedAtLayout))
	rec.FirstName = firstName
	rec.LastName = lastName
	rec.Phone = strings.TrimSpace(req.Phone)
	rec.Location = strings.TrimSpace(req.Location)
	rec.LinkedIn = strings.TrimSpace(req.LinkedIn)
	rec.CoverLetter = req.CoverLetter
	rec.ResumeURL = strings.TrimSpace(req.ResumeURL)

	if err := s.store.CreateApplication(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &dto.SubmitApplicationResponse{Success: true, ApplicationID: rec.ApplicationID}, nil
}

// ListByUser resolves the user's email and returns their applications,
// newest first.
func (s *ApplicationService) ListByUser(ctx context.Context, userID string) ([]dto.UserApplication, error) {
	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ApplicationsByApplicant(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	result := make([]dto.UserApplication, 0, len(records))
	for _, r := range records {
		result = append(result, mapper.ToUserApplication(r, s.jobs))
	}
	return result, nil
}

// ListAll returns every application in the table, newest first. It reads the
// whole table.
func (s *ApplicationService) ListAll(ctx context.Context, f ApplicantFilter) ([]dto.Applicant, error) {
	records, err := s.store.ScanApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}

	status := strings.ToLower(strings.TrimSpace(f.Status))
	result := make([]dto.Applicant, 0, len(records))
	for _, r := range records {
		if f.JobID != "" && r.JobID != f.JobID {
			continue
		}
		a := mapper.ToApplicant(r, s.jobs)
		if status != "" && a.Status != status {
			continue
		}
		result = append(result, a)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].AppliedAt > result[j].AppliedAt })
	return result, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID, status string) (*dto.Applicant, error) {
	if !mapper.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	rec, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	rec.Status = mapper.NormalizeStatus(status)
	rec.UpdatedAt = s.now().UTC().Format(models.AppliedAtLayout)
	if err := s.store.SaveApplication(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	a := mapper.ToApplicant(rec, s.jobs)
	return &a, nil
}
