package dto

type Resume struct {
	ResumeID   string `json:"resumeId"`
	FileName   string `json:"fileName"`
	FileSize   int64  `json:"fileSize"`
	FileType   string `json:"fileType"`
	S3Key      string `json:"s3Key"`
	UploadedAt string `json:"uploadedAt"`
	IsDefault  bool   `json:"isDefault"`
}

type ResumeListResponse struct {
	Resumes []Resume `json:"resumes"`
}

// ConfirmResumeRequest records metadata for a file the client already
// uploaded through a presigned link.
type ConfirmResumeRequest struct {
	ResumeID  string `json:"resumeId" validate:"omitempty,excludesall=/\\"`
	FileName  string `json:"fileName" validate:"required,max=255"`
	FileSize  int64  `json:"fileSize" validate:"gt=0"`
	FileType  string `json:"fileType"`
	S3Key     string `json:"s3Key" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

type PatchResumeRequest struct {
	IsDefault *bool `json:"isDefault"`
}

type ResumeResponse struct {
	Resume Resume `json:"resume"`
}

type ResumeDownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName"`
}
