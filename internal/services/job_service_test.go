package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratacloud/careers-backend/internal/catalog"
	"github.com/stratacloud/careers-backend/internal/dto"
)

func TestJobService_AdminJobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	apply(t, f, "job-1", "a@x.com")
	apply(t, f, "job-1", "b@x.com")

	jobs, err := f.jobs.AdminJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	byID := map[string]dto.AdminJob{}
	for _, j := range jobs {
		byID[j.ID] = j
	}
	assert.Equal(t, 2, byID["job-1"].ApplicantCount)
	assert.Equal(t, dto.AdminJobOpen, byID["job-1"].Status)
	assert.Equal(t, dto.AdminJobPaused, byID["job-2"].Status)
	assert.Equal(t, dto.AdminJobClosed, byID["job-3"].Status)
	assert.Equal(t, 0, byID["job-3"].ApplicantCount)
}

func TestJobService_AdminJobs_StoreFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewJobService(&failingStore{Store: f.store, fail: map[string]error{"CountApplicationsByJob": errStore}}, testCatalog(t))

	_, err := svc.AdminJobs(context.Background())
	assert.ErrorIs(t, err, errStore)
}

func TestJobService_SearchAndBySlug(t *testing.T) {
	f := newFixture(t)

	public := f.jobs.Search(catalog.Query{})
	require.Len(t, public, 1)
	assert.Equal(t, "job-1", public[0].ID)

	paused := f.jobs.Search(catalog.Query{Status: "paused"})
	require.Len(t, paused, 1)
	assert.Equal(t, "job-2", paused[0].ID)

	job, err := f.jobs.BySlug("devops-engineer")
	require.NoError(t, err)
	assert.Equal(t, "job-2", job.ID)

	_, err = f.jobs.BySlug("nope")
	assert.ErrorIs(t, err, ErrJobNotFound)
}
