package dto

import "github.com/stratacloud/careers-backend/internal/catalog"

// Admin job statuses.
const (
	AdminJobOpen   = "open"
	AdminJobClosed = "closed"
	AdminJobPaused = "paused"
)

type AdminJob struct {
	ID             string `json:"id"`
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Department     string `json:"department"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	ApplicantCount int    `json:"applicantCount"`
	PostedAt       string `json:"postedAt"`
	ExpiresAt      string `json:"expiresAt,omitempty"`
}

type AdminJobsResponse struct {
	Success bool       `json:"success"`
	Jobs    []AdminJob `json:"jobs"`
}

type JobListResponse struct {
	Jobs  []*catalog.Job `json:"jobs"`
	Total int            `json:"total"`
}
