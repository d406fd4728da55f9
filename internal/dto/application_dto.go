package dto

// Applicant is an application as seen by admins and applicants.
type Applicant struct {
	ApplicationID string `json:"applicationId"`
	JobID         string `json:"jobId"`
	JobTitle      string `json:"jobTitle"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Location      string `json:"location,omitempty"`
	LinkedIn      string `json:"linkedIn,omitempty"`
	Status        string `json:"status"`
	CoverLetter   string `json:"coverLetter,omitempty"`
	ResumeURL     string `json:"resumeUrl,omitempty"`
	ResumeKey     string `json:"resumeKey,omitempty"`
	AppliedAt     string `json:"appliedAt"`
}

// UserApplication adds catalog job details for the applicant's own listing.
type UserApplication struct {
	Applicant
	JobSlug       string `json:"jobSlug"`
	JobDepartment string `json:"jobDepartment"`
	JobLocation   string `json:"jobLocation"`
}

type UserApplicationsResponse struct {
	Applications []UserApplication `json:"applications"`
}

type SubmitApplicationRequest struct {
	JobID       string `json:"jobId" validate:"required"`
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=40"`
	Location    string `json:"location" validate:"max=200"`
	LinkedIn    string `json:"linkedIn" validate:"max=300"`
	CoverLetter string `json:"coverLetter" validate:"max=10000"`
	ResumeURL   string `json:"resumeUrl" validate:"max=1024"`
}

type SubmitApplicationResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"applicationId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ApplicantsMeta struct {
	Total int `json:"total"`
}

type ApplicantsResponse struct {
	Success    bool           `json:"success"`
	Applicants []Applicant    `json:"applicants"`
	Meta       ApplicantsMeta `json:"meta"`
}
