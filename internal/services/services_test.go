package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stratacloud/careers-backend/internal/catalog"
	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/models"
	"github.com/stratacloud/careers-backend/internal/notify"
	"github.com/stratacloud/careers-backend/internal/storage"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e notify.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// failingStore wraps a Store and fails the named operations.
type failingStore struct {
	database.Store
	fail map[string]error
}

func (f *failingStore) CreateUser(ctx context.Context, u *models.UserRecord) error {
	if err := f.fail["CreateUser"]; err != nil {
		return err
	}
	return f.Store.CreateUser(ctx, u)
}

func (f *failingStore) SaveUser(ctx context.Context, u *models.UserRecord) error {
	if err := f.fail["SaveUser"]; err != nil {
		return err
	}
	return f.Store.SaveUser(ctx, u)
}

func (f *failingStore) CountApplicationsByJob(ctx context.Context, jobID string) (int, error) {
	if err := f.fail["CountApplicationsByJob"]; err != nil {
		return 0, err
	}
	return f.Store.CountApplicationsByJob(ctx, jobID)
}

var errStore = errors.New("store unavailable")

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	past := fixedNow.Add(-24 * time.Hour)
	c, err := catalog.New([]catalog.Job{
		{ID: "job-1", Slug: "cloud-architect", Title: "Cloud Architect", Department: "Engineering", Location: "Remote", Status: "active", PostedAt: fixedNow.Add(-48 * time.Hour)},
		{ID: "job-2", Slug: "devops-engineer", Title: "DevOps Engineer", Department: "Engineering", Location: "Austin", Status: "paused", PostedAt: fixedNow.Add(-72 * time.Hour)},
		{ID: "job-3", Slug: "data-engineer", Title: "Data Engineer", Department: "Data", Location: "Denver", Status: "active", PostedAt: fixedNow.Add(-96 * time.Hour), ExpiresAt: &past},
	})
	require.NoError(t, err)
	return c
}

type fixture struct {
	store   *database.MemoryStore
	objects *storage.MemoryStore
	pub     *recordingPublisher
	users   *UserService
	resumes *ResumeService
	uploads *UploadService
	apps    *ApplicationService
	jobs    *JobService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := database.NewMemoryStore()
	objects := storage.NewMemoryStore("test-bucket")
	pub := &recordingPublisher{}
	cat := testCatalog(t)
	clock := func() time.Time { return fixedNow }

	f := &fixture{
		store:   store,
		objects: objects,
		pub:     pub,
		users:   NewUserService(store, pub),
		resumes: NewResumeService(store, objects),
		uploads: NewUploadService(store, objects),
		apps:    NewApplicationService(store, cat),
		jobs:    NewJobService(store, cat),
	}
	f.users.now = clock
	f.resumes.now = clock
	f.uploads.now = clock
	f.apps.now = clock
	f.jobs.now = clock
	return f
}

func pdf(size int) *ResumeUpload {
	return &ResumeUpload{
		FileName:    "cv.pdf",
		ContentType: "application/pdf",
		Size:        int64(size),
		Body:        strings.NewReader(strings.Repeat("x", size)),
	}
}
