package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrEmailTaken          = errors.New("a user with this email already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrResumeNotFound      = errors.New("resume not found")
	ErrResumeExists        = errors.New("resume already exists")
	ErrResumeFileMissing   = errors.New("resume file not found in storage")
	ErrApplicationNotFound = errors.New("application not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrJobClosed           = errors.New("job is not accepting applications")
	ErrFileTooLarge        = errors.New("file size exceeds limit")
	ErrUnsupportedFileType = errors.New("file type must be PDF, DOC, or DOCX")
	ErrInvalidStatus       = errors.New("invalid application status")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
