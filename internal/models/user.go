package models

import (
	"fmt"
	"strings"
)

// User roles.
const (
	RoleConsultant = "consultant"
	RoleAdmin      = "admin"
	RoleStaffer    = "staffer"
)

// UserRecord is the persisted shape of a user profile. Résumés are embedded, so
// every résumé mutation is a read-modify-write of this item.
type UserRecord struct {
	PK     string `dynamodbav:"PK"`     // USER#<userId>
	SK     string `dynamodbav:"SK"`     // PROFILE
	Type   string `dynamodbav:"Type"`   // USER
	GSI1PK string `dynamodbav:"GSI1PK"` // ROLE#<role>
	GSI1SK string `dynamodbav:"GSI1SK"` // EMAIL#<email>

	UserID    string         `dynamodbav:"UserId"`
	Email     string         `dynamodbav:"Email"`
	FirstName string         `dynamodbav:"FirstName"`
	LastName  string         `dynamodbav:"LastName"`
	Role      string         `dynamodbav:"Role"`
	Active    bool           `dynamodbav:"Active"`
	Resumes   []ResumeRecord `dynamodbav:"Resumes"`
	CreatedAt string         `dynamodbav:"CreatedAt"` // RFC3339
	UpdatedAt string         `dynamodbav:"UpdatedAt"` // RFC3339
}

// NewUserRecord fills in the key attributes for a fresh user.
func NewUserRecord(userID, email, firstName, lastName, role, now string) *UserRecord {
	return &UserRecord{
		PK:        UserPK(userID),
		SK:        UserSK(),
		Type:      TypeUser,
		GSI1PK:    RoleGSI1PK(role),
		GSI1SK:    EmailGSI1SK(email),
		UserID:    userID,
		Email:     strings.TrimSpace(email),
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		Active:    true,
		Resumes:   []ResumeRecord{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u *UserRecord) Validate() error {
	if u.Type != TypeUser {
		return fmt.Errorf("%w: user item has type %q", ErrCorruptRecord, u.Type)
	}
	if u.UserID == "" || u.PK != UserPK(u.UserID) {
		return fmt.Errorf("%w: user key %q does not match id %q", ErrCorruptRecord, u.PK, u.UserID)
	}
	if u.Email == "" {
		return fmt.Errorf("%w: user %s has no email", ErrCorruptRecord, u.UserID)
	}
	for i := range u.Resumes {
		if u.Resumes[i].ResumeID == "" {
			return fmt.Errorf("%w: user %s has a resume without id", ErrCorruptRecord, u.UserID)
		}
	}
	return nil
}

// FindResume returns the index of the résumé with the given id, or -1.
func (u *UserRecord) FindResume(resumeID string) int {
	for i := range u.Resumes {
		if u.Resumes[i].ResumeID == resumeID {
			return i
		}
	}
	return -1
}

// SetDefaultResume marks the résumé at idx as the only default.
func (u *UserRecord) SetDefaultResume(idx int) {
	for i := range u.Resumes {
		u.Resumes[i].IsDefault = i == idx
	}
}

// EmailLookupRecord reserves an email address. It is written with
// attribute_not_exists(PK), which is what makes emails unique.
type EmailLookupRecord struct {
	PK     string `dynamodbav:"PK"`     // EMAIL#<email>
	SK     string `dynamodbav:"SK"`     // LOOKUP
	Type   string `dynamodbav:"Type"`   // EMAIL_LOOKUP
	GSI1PK string `dynamodbav:"GSI1PK"` // EMAIL#<email>
	GSI1SK string `dynamodbav:"GSI1SK"` // USER#<userId>

	Email     string `dynamodbav:"Email"`
	UserID    string `dynamodbav:"UserId"`
	CreatedAt string `dynamodbav:"CreatedAt"`
}

func NewEmailLookupRecord(email, userID, now string) *EmailLookupRecord {
	return &EmailLookupRecord{
		PK:        EmailLookupPK(email),
		SK:        EmailLookupSK(),
		Type:      TypeEmailLookup,
		GSI1PK:    EmailLookupPK(email),
		GSI1SK:    UserPK(userID),
		Email:     NormalizeEmail(email),
		UserID:    userID,
		CreatedAt: now,
	}
}

func (l *EmailLookupRecord) Validate() error {
	if l.Type != TypeEmailLookup || l.UserID == "" {
		return fmt.Errorf("%w: malformed email lookup %q", ErrCorruptRecord, l.PK)
	}
	return nil
}
