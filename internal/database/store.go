package database

import (
	"context"
	"errors"

	"github.com/stratacloud/careers-backend/internal/models"
)

var (
	ErrNotFound = errors.New("item not found")
	// ErrConflict is returned when a conditional write finds the key taken.
	ErrConflict = errors.New("conditional write failed")
)

// Store is the document store capability used by the services. Every method
// is a single round-trip (or a paginated sequence of them) against one
// multi-entity table.
type Store interface {
	Ping(ctx context.Context) error

	// CreateUser writes the user together with its email reservation and
	// returns ErrConflict when the email is already reserved.
	CreateUser(ctx context.Context, user *models.UserRecord) error
	GetUser(ctx context.Context, userID string) (*models.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*models.UserRecord, error)
	// SaveUser overwrites the user item unconditionally.
	SaveUser(ctx context.Context, user *models.UserRecord) error
	ListUsersByRole(ctx context.Context, role string) ([]*models.UserRecord, error)

	CreateApplication(ctx context.Context, app *models.ApplicationRecord) error
	GetApplication(ctx context.Context, applicationID string) (*models.ApplicationRecord, error)
	SaveApplication(ctx context.Context, app *models.ApplicationRecord) error
	// ApplicationsByApplicant queries GSI2 newest first.
	ApplicationsByApplicant(ctx context.Context, email string) ([]*models.ApplicationRecord, error)
	// ScanApplications reads the whole table and keeps APPLICATION items.
	ScanApplications(ctx context.Context) ([]*models.ApplicationRecord, error)
	CountApplicationsByJob(ctx context.Context, jobID string) (int, error)
}
