package dto

type PresignRequest struct {
	FileName string `json:"fileName" validate:"required,max=255"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize" validate:"gt=0"`
	JobID    string `json:"jobId" validate:"omitempty,excludesall=/\\"`
}

type PresignResponse struct {
	PresignedURL string `json:"presignedUrl"`
	S3Key        string `json:"s3Key"`
	FileName     string `json:"fileName"`
}

type ProfilePresignResponse struct {
	PresignedURL string `json:"presignedUrl"`
	S3Key        string `json:"s3Key"`
	FileName     string `json:"fileName"`
	ResumeID     string `json:"resumeId"`
}
