package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratacloud/careers-backend/internal/models"
)

func TestMemoryStore_EmailUniqueness(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleAdmin, "t0")))
	err := s.CreateUser(ctx, models.NewUserRecord("u2", "A@X.COM", "A", "B", models.RoleAdmin, "t0"))

	assert.ErrorIs(t, err, ErrConflict)

	u, err := s.GetUserByEmail(ctx, " a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleAdmin, "t0")))

	u, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	u.Resumes = append(u.Resumes, models.ResumeRecord{ResumeID: "r1"})

	again, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, again.Resumes)
}

func TestMemoryStore_Applications(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateApplication(ctx, models.NewApplicationRecord("a1", "j1", "a@x.com", "2026-01-01T00:00:00Z")))
	require.NoError(t, s.CreateApplication(ctx, models.NewApplicationRecord("a2", "j1", "a@x.com", "2026-02-01T00:00:00Z")))
	require.NoError(t, s.CreateApplication(ctx, models.NewApplicationRecord("a3", "j2", "b@x.com", "2026-03-01T00:00:00Z")))
	assert.ErrorIs(t, s.CreateApplication(ctx, models.NewApplicationRecord("a3", "j2", "b@x.com", "t")), ErrConflict)

	mine, err := s.ApplicationsByApplicant(ctx, "A@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a2", mine[0].ApplicationID)

	n, err := s.CountApplicationsByJob(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := s.ScanApplications(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = s.GetApplication(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListUsersByRole(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, models.NewUserRecord("u1", "b@x.com", "A", "B", models.RoleStaffer, "t0")))
	require.NoError(t, s.CreateUser(ctx, models.NewUserRecord("u2", "a@x.com", "A", "B", models.RoleStaffer, "t0")))
	require.NoError(t, s.CreateUser(ctx, models.NewUserRecord("u3", "c@x.com", "A", "B", models.RoleAdmin, "t0")))

	staff, err := s.ListUsersByRole(ctx, models.RoleStaffer)
	require.NoError(t, err)

	require.Len(t, staff, 2)
	assert.Equal(t, "a@x.com", staff[0].Email)
}

func TestMemoryStore_GetUserValidates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	rec := models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleAdmin, "t0")
	rec.Type = "BROKEN"
	require.NoError(t, s.SaveUser(ctx, rec))

	_, err := s.GetUser(ctx, "u1")

	assert.ErrorIs(t, err, models.ErrCorruptRecord)
}
