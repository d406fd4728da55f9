package models

import "strings"

// Résumé file types and their MIME strings.
const (
	FileTypePDF  = "pdf"
	FileTypeDOC  = "doc"
	FileTypeDOCX = "docx"

	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var mimeToFileType = map[string]string{
	MimePDF:  FileTypePDF,
	MimeDOC:  FileTypeDOC,
	MimeDOCX: FileTypeDOCX,
}

var fileTypeToMime = map[string]string{
	FileTypePDF:  MimePDF,
	FileTypeDOC:  MimeDOC,
	FileTypeDOCX: MimeDOCX,
}

// FileTypeFromMime maps an allowed MIME string to its short file type.
func FileTypeFromMime(mime string) (string, bool) {
	ft, ok := mimeToFileType[strings.ToLower(strings.TrimSpace(mime))]
	return ft, ok
}

// ResolveFileType accepts either a short type ("pdf") or an allowed MIME string.
func ResolveFileType(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if _, ok := fileTypeToMime[v]; ok {
		return v, true
	}
	return FileTypeFromMime(v)
}

// MimeFor returns the MIME string for a short file type.
func MimeFor(fileType string) string {
	return fileTypeToMime[fileType]
}

// ResumeRecord is embedded in UserRecord.Resumes.
type ResumeRecord struct {
	ResumeID   string `dynamodbav:"ResumeId"`
	FileName   string `dynamodbav:"FileName"`
	FileSize   int64  `dynamodbav:"FileSize"`
	FileType   string `dynamodbav:"FileType"`
	S3Key      string `dynamodbav:"S3Key"`
	UploadedAt string `dynamodbav:"UploadedAt"`
	IsDefault  bool   `dynamodbav:"IsDefault"`
}
