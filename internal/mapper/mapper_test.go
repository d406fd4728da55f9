package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratacloud/careers-backend/internal/catalog"
	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/models"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Job{
		{ID: "j1", Slug: "cloud-architect", Title: "Cloud Architect", Department: "Consulting",
			Location: "Remote", Status: catalog.StatusActive, PostedAt: now},
	})
	require.NoError(t, err)
	return c
}

func TestToApplicant_ResolvesJobAndNormalizesStatus(t *testing.T) {
	rec := models.NewApplicationRecord("a1", "j1", "Ada@X.com", "2026-05-01T00:00:00Z")
	rec.Status = "INTERVIEW"
	rec.ResumeURL = "https://bucket/resumes/j1/abc.pdf"

	a := ToApplicant(rec, testCatalog(t))

	assert.Equal(t, "Cloud Architect", a.JobTitle)
	assert.Equal(t, "interview", a.Status)
	assert.Equal(t, "resumes/applicants/ada@x.com/resume", a.ResumeKey)
}

func TestToApplicant_Fallbacks(t *testing.T) {
	rec := models.NewApplicationRecord("a1", "gone", "a@x.com", "2026-05-01T00:00:00Z")
	rec.Status = ""

	a := ToApplicant(rec, testCatalog(t))

	assert.Equal(t, UnknownJobTitle, a.JobTitle)
	assert.Equal(t, models.StatusPending, a.Status)
	assert.Empty(t, a.ResumeKey)
}

func TestToUserApplication_Placeholders(t *testing.T) {
	c := testCatalog(t)

	known := ToUserApplication(models.NewApplicationRecord("a1", "j1", "a@x.com", "t"), c)
	assert.Equal(t, "cloud-architect", known.JobSlug)
	assert.Equal(t, "Consulting", known.JobDepartment)

	unknown := ToUserApplication(models.NewApplicationRecord("a2", "nope", "a@x.com", "t"), c)
	assert.Equal(t, UnknownJobTitle, unknown.JobTitle)
	assert.Equal(t, UnknownJobField, unknown.JobSlug)
	assert.Equal(t, UnknownJobField, unknown.JobLocation)
}

func TestAdminJobStatus(t *testing.T) {
	cases := []struct {
		name string
		job  catalog.Job
		want string
	}{
		{"active no expiry", catalog.Job{Status: "active"}, dto.AdminJobOpen},
		{"active future expiry", catalog.Job{Status: "active", ExpiresAt: ptr(now.Add(time.Hour))}, dto.AdminJobOpen},
		{"active past expiry", catalog.Job{Status: "active", ExpiresAt: ptr(now.Add(-time.Hour))}, dto.AdminJobClosed},
		{"paused", catalog.Job{Status: "paused"}, dto.AdminJobPaused},
		{"closed", catalog.Job{Status: "closed"}, dto.AdminJobClosed},
		{"unknown", catalog.Job{Status: "draft"}, dto.AdminJobClosed},
		{"empty", catalog.Job{}, dto.AdminJobClosed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AdminJobStatus(&tc.job, now))
		})
	}
}

func TestToAdminJob(t *testing.T) {
	job := &catalog.Job{ID: "j1", Slug: "s", Title: "T", Status: "active", PostedAt: now, ExpiresAt: ptr(now.AddDate(0, 1, 0))}

	aj := ToAdminJob(job, 4, now)

	assert.Equal(t, 4, aj.ApplicantCount)
	assert.Equal(t, dto.AdminJobOpen, aj.Status)
	assert.Equal(t, "2026-06-01T12:00:00Z", aj.PostedAt)
	assert.Equal(t, "2026-07-01T12:00:00Z", aj.ExpiresAt)
}

func TestToUser(t *testing.T) {
	rec := models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleStaffer, "t0")
	rec.Resumes = []models.ResumeRecord{{ResumeID: "r1", FileName: "cv.pdf", IsDefault: true}}

	u := ToUser(rec)

	assert.Equal(t, "u1", u.UserID)
	require.Len(t, u.Resumes, 1)
	assert.True(t, u.Resumes[0].IsDefault)
	assert.Equal(t, "cv.pdf", u.Resumes[0].FileName)
}
