package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stratacloud/careers-backend/internal/catalog"
	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/mapper"
)

type JobService struct {
	store database.Store
	jobs  *catalog.Catalog
	now   func() time.Time
}

func NewJobService(store database.Store, jobs *catalog.Catalog) *JobService {
	return &JobService{store: store, jobs: jobs, now: time.Now}
}

// AdminJobs joins every catalog job with its live applicant count. It issues
// one count query per job.
func (s *JobService) AdminJobs(ctx context.Context) ([]dto.AdminJob, error) {
	now := s.now()
	jobs := s.jobs.All()
	result := make([]dto.AdminJob, 0, len(jobs))
	for _, job := range jobs {
		count, err := s.store.CountApplicationsByJob(ctx, job.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count applicants for %s: %w", job.ID, err)
		}
		result = append(result, mapper.ToAdminJob(job, count, now))
	}
	return result, nil
}

// Search lists public jobs. Only active jobs are shown unless the query asks
// for a status.
func (s *JobService) Search(q catalog.Query) []*catalog.Job {
	if q.Status == "" {
		q.Status = catalog.StatusActive
	}
	return s.jobs.Search(q, s.now())
}

func (s *JobService) BySlug(slug string) (*catalog.Job, error) {
	job, ok := s.jobs.BySlug(strings.TrimSpace(slug))
	if !ok {
		return nil, ErrJobNotFound
	}
	return job, nil
}
