package models

import "strings"

// Entity type discriminators stored in the Type attribute.
const (
	TypeUser        = "USER"
	TypeEmailLookup = "EMAIL_LOOKUP"
	TypeApplication = "APPLICATION"
)

// Secondary index names.
const (
	IndexGSI1 = "GSI1"
	IndexGSI2 = "GSI2"
)

const (
	userPrefix        = "USER#"
	emailPrefix       = "EMAIL#"
	rolePrefix        = "ROLE#"
	applicationPrefix = "APPLICATION#"
	applicantPrefix   = "APPLICANT#"
	jobPrefix         = "JOB#"
	appliedPrefix     = "APPLIED#"

	userProfileSK = "PROFILE"
	emailLookupSK = "LOOKUP"
	applicationSK = "APPLICATION"
)

// NormalizeEmail is the canonical form used in every email-derived key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func UserPK(userID string) string { return userPrefix + userID }

func UserSK() string { return userProfileSK }

func EmailLookupPK(email string) string { return emailPrefix + NormalizeEmail(email) }

func EmailLookupSK() string { return emailLookupSK }

func RoleGSI1PK(role string) string { return rolePrefix + strings.ToLower(role) }

func EmailGSI1SK(email string) string { return emailPrefix + NormalizeEmail(email) }

func ApplicationPK(applicationID string) string { return applicationPrefix + applicationID }

func ApplicationSK() string { return applicationSK }

func JobGSI1PK(jobID string) string { return jobPrefix + jobID }

func ApplicantGSI2PK(email string) string { return applicantPrefix + NormalizeEmail(email) }

func AppliedSK(appliedAt string) string { return appliedPrefix + appliedAt }
