package models

import "fmt"

// Application statuses, always stored lowercase.
const (
	StatusPending   = "pending"
	StatusScreening = "screening"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
	StatusHired     = "hired"
)

// AppliedAtLayout is fixed width so AppliedAt values sort lexically.
const AppliedAtLayout = "2006-01-02T15:04:05.000Z07:00"

var ValidStatuses = map[string]bool{
	StatusPending: true, StatusScreening: true, StatusInterview: true,
	StatusOffer: true, StatusRejected: true, StatusHired: true,
}

// ApplicationRecord is a job application. It is linked to the applicant by
// email (GSI2) and to the catalog job by JobId (GSI1), never by user id.
type ApplicationRecord struct {
	PK     string `dynamodbav:"PK"`     // APPLICATION#<applicationId>
	SK     string `dynamodbav:"SK"`     // APPLICATION
	Type   string `dynamodbav:"Type"`   // APPLICATION
	GSI1PK string `dynamodbav:"GSI1PK"` // JOB#<jobId>
	GSI1SK string `dynamodbav:"GSI1SK"` // APPLIED#<appliedAt>
	GSI2PK string `dynamodbav:"GSI2PK"` // APPLICANT#<email>
	GSI2SK string `dynamodbav:"GSI2SK"` // APPLIED#<appliedAt>

	ApplicationID string `dynamodbav:"ApplicationId"`
	JobID         string `dynamodbav:"JobId"`
	FirstName     string `dynamodbav:"FirstName"`
	LastName      string `dynamodbav:"LastName"`
	Email         string `dynamodbav:"Email"`
	Phone         string `dynamodbav:"Phone,omitempty"`
	Location      string `dynamodbav:"Location,omitempty"`
	LinkedIn      string `dynamodbav:"LinkedIn,omitempty"`
	Status        string `dynamodbav:"Status,omitempty"`
	CoverLetter   string `dynamodbav:"CoverLetter,omitempty"`
	ResumeURL     string `dynamodbav:"ResumeUrl,omitempty"`
	AppliedAt     string `dynamodbav:"AppliedAt"` // AppliedAtLayout
	UpdatedAt     string `dynamodbav:"UpdatedAt,omitempty"`
}

// NewApplicationRecord fills in the key attributes for a fresh application.
func NewApplicationRecord(applicationID, jobID, email, appliedAt string) *ApplicationRecord {
	return &ApplicationRecord{
		PK:            ApplicationPK(applicationID),
		SK:            ApplicationSK(),
		Type:          TypeApplication,
		GSI1PK:        JobGSI1PK(jobID),
		GSI1SK:        AppliedSK(appliedAt),
		GSI2PK:        ApplicantGSI2PK(email),
		GSI2SK:        AppliedSK(appliedAt),
		ApplicationID: applicationID,
		JobID:         jobID,
		Email:         email,
		Status:        StatusPending,
		AppliedAt:     appliedAt,
	}
}

func (a *ApplicationRecord) Validate() error {
	if a.Type != TypeApplication {
		return fmt.Errorf("%w: application item has type %q", ErrCorruptRecord, a.Type)
	}
	if a.ApplicationID == "" || a.PK != ApplicationPK(a.ApplicationID) {
		return fmt.Errorf("%w: application key %q does not match id %q", ErrCorruptRecord, a.PK, a.ApplicationID)
	}
	if a.JobID == "" || a.Email == "" {
		return fmt.Errorf("%w: application %s is missing job or email", ErrCorruptRecord, a.ApplicationID)
	}
	return nil
}
