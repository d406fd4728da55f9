package database

import (
	"context"
	"sort"
	"sync"

	"github.com/stratacloud/careers-backend/internal/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a process-local Store for local development
// (STORE_DRIVER=memory) and tests. Records are copied in and out so callers
// get the same read-modify-write semantics as with DynamoDB.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]models.UserRecord
	emails       map[string]string
	applications map[string]models.ApplicationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]models.UserRecord),
		emails:       make(map[string]string),
		applications: make(map[string]models.ApplicationRecord),
	}
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) CreateUser(_ context.Context, user *models.UserRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := models.NormalizeEmail(user.Email)
	if _, taken := m.emails[email]; taken {
		return ErrConflict
	}
	if _, exists := m.users[user.UserID]; exists {
		return ErrConflict
	}
	m.emails[email] = user.UserID
	m.users[user.UserID] = copyUser(user)
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, userID string) (*models.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyUser(&u)
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	m.mu.RLock()
	userID, ok := m.emails[models.NormalizeEmail(email)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return m.GetUser(ctx, userID)
}

func (m *MemoryStore) SaveUser(_ context.Context, user *models.UserRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.UserID] = copyUser(user)
	return nil
}

func (m *MemoryStore) ListUsersByRole(_ context.Context, role string) ([]*models.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pk := models.RoleGSI1PK(role)
	var result []*models.UserRecord
	for _, u := range m.users {
		if u.GSI1PK == pk {
			c := copyUser(&u)
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GSI1SK < result[j].GSI1SK })
	return result, nil
}

func (m *MemoryStore) CreateApplication(_ context.Context, app *models.ApplicationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.applications[app.ApplicationID]; exists {
		return ErrConflict
	}
	m.applications[app.ApplicationID] = *app
	return nil
}

func (m *MemoryStore) GetApplication(_ context.Context, applicationID string) (*models.ApplicationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.applications[applicationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *MemoryStore) SaveApplication(_ context.Context, app *models.ApplicationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applications[app.ApplicationID] = *app
	return nil
}

func (m *MemoryStore) ApplicationsByApplicant(_ context.Context, email string) ([]*models.ApplicationRecord, error) {
	pk := models.ApplicantGSI2PK(email)
	result := m.filterApplications(func(a *models.ApplicationRecord) bool { return a.GSI2PK == pk })
	sort.Slice(result, func(i, j int) bool { return result[i].GSI2SK > result[j].GSI2SK })
	return result, nil
}

func (m *MemoryStore) ScanApplications(context.Context) ([]*models.ApplicationRecord, error) {
	return m.filterApplications(func(*models.ApplicationRecord) bool { return true }), nil
}

func (m *MemoryStore) CountApplicationsByJob(_ context.Context, jobID string) (int, error) {
	pk := models.JobGSI1PK(jobID)
	return len(m.filterApplications(func(a *models.ApplicationRecord) bool { return a.GSI1PK == pk })), nil
}

func (m *MemoryStore) filterApplications(keep func(*models.ApplicationRecord) bool) []*models.ApplicationRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*models.ApplicationRecord
	for _, a := range m.applications {
		if keep(&a) {
			c := a
			result = append(result, &c)
		}
	}
	return result
}

func copyUser(u *models.UserRecord) models.UserRecord {
	c := *u
	c.Resumes = append([]models.ResumeRecord{}, u.Resumes...)
	return c
}
