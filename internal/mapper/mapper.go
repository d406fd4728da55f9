// Package mapper translates between store records (PascalCase attributes,
// denormalized index fields) and the camelCase wire shapes. Nothing outside
// this package and the database package sees record attribute names.
package mapper

import (
	"strings"
	"time"

	"github.com/stratacloud/careers-backend/internal/catalog"
	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/models"
)

// Placeholders used when an application's job is not in the catalog.
const (
	UnknownJobTitle = "Unknown Position"
	UnknownJobField = "Unknown"
)

// JobLookup is the part of the catalog the mapper needs.
type JobLookup interface {
	Get(id string) (*catalog.Job, bool)
}

// NormalizeStatus lowercases a stored status; empty means pending.
func NormalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return models.StatusPending
	}
	return s
}

// ValidStatus reports whether status (any case) is a known application status.
func ValidStatus(status string) bool {
	return models.ValidStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// ApplicantResumeKey is the synthetic object path shown to admins for an
// applicant's uploaded résumé.
func ApplicantResumeKey(email string) string {
	return "resumes/applicants/" + models.NormalizeEmail(email) + "/resume"
}

func ToApplicant(rec *models.ApplicationRecord, jobs JobLookup) dto.Applicant {
	title := UnknownJobTitle
	if job, ok := jobs.Get(rec.JobID); ok {
		title = job.Title
	}

	a := dto.Applicant{
		ApplicationID: rec.ApplicationID,
		JobID:         rec.JobID,
		JobTitle:      title,
		FirstName:     rec.FirstName,
		LastName:      rec.LastName,
		Email:         rec.Email,
		Phone:         rec.Phone,
		Location:      rec.Location,
		LinkedIn:      rec.LinkedIn,
		Status:        NormalizeStatus(rec.Status),
		CoverLetter:   rec.CoverLetter,
		ResumeURL:     rec.ResumeURL,
		AppliedAt:     rec.AppliedAt,
	}
	if rec.ResumeURL != "" {
		a.ResumeKey = ApplicantResumeKey(rec.Email)
	}
	return a
}

// ToUserApplication is the applicant's own view; missing catalog entries fall
// back to placeholders instead of failing the listing.
func ToUserApplication(rec *models.ApplicationRecord, jobs JobLookup) dto.UserApplication {
	ua := dto.UserApplication{
		Applicant:     ToApplicant(rec, jobs),
		JobSlug:       UnknownJobField,
		JobDepartment: UnknownJobField,
		JobLocation:   UnknownJobField,
	}
	if job, ok := jobs.Get(rec.JobID); ok {
		ua.JobSlug = job.Slug
		ua.JobDepartment = job.Department
		ua.JobLocation = job.Location
	}
	return ua
}

// AdminJobStatus derives the admin-facing status of a catalog job.
func AdminJobStatus(job *catalog.Job, now time.Time) string {
	switch strings.ToLower(job.Status) {
	case catalog.StatusActive:
		if job.IsExpired(now) {
			return dto.AdminJobClosed
		}
		return dto.AdminJobOpen
	case catalog.StatusPaused:
		return dto.AdminJobPaused
	default:
		return dto.AdminJobClosed
	}
}

func ToAdminJob(job *catalog.Job, applicantCount int, now time.Time) dto.AdminJob {
	aj := dto.AdminJob{
		ID:             job.ID,
		Slug:           job.Slug,
		Title:          job.Title,
		Department:     job.Department,
		Location:       job.Location,
		Status:         AdminJobStatus(job, now),
		ApplicantCount: applicantCount,
		PostedAt:       job.PostedAt.UTC().Format(time.RFC3339),
	}
	if job.ExpiresAt != nil {
		aj.ExpiresAt = job.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return aj
}

func ToResume(rec models.ResumeRecord) dto.Resume {
	return dto.Resume{
		ResumeID:   rec.ResumeID,
		FileName:   rec.FileName,
		FileSize:   rec.FileSize,
		FileType:   rec.FileType,
		S3Key:      rec.S3Key,
		UploadedAt: rec.UploadedAt,
		IsDefault:  rec.IsDefault,
	}
}

func ToResumes(recs []models.ResumeRecord) []dto.Resume {
	result := make([]dto.Resume, 0, len(recs))
	for _, r := range recs {
		result = append(result, ToResume(r))
	}
	return result
}

func ToUser(rec *models.UserRecord) dto.User {
	return dto.User{
		UserID:    rec.UserID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Role:      rec.Role,
		Active:    rec.Active,
		Resumes:   ToResumes(rec.Resumes),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
