package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratacloud/careers-backend/internal/dto"
)

var applicationKey = regexp.MustCompile(`^resumes/job-1/[0-9a-f-]{36}\.pdf$`)

func TestUploadService_PresignApplication(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uploads.PresignApplication(context.Background(), &dto.PresignRequest{
		FileName: "cv.pdf", FileType: "application/pdf", FileSize: 1_000_000, JobID: "job-1",
	})
	require.NoError(t, err)

	assert.Regexp(t, applicationKey, resp.S3Key)
	assert.Equal(t, "cv.pdf", resp.FileName)
	assert.Contains(t, resp.PresignedURL, "expires=300")
}

func TestUploadService_PresignApplication_UniqueKeys(t *testing.T) {
	f := newFixture(t)
	req := &dto.PresignRequest{FileName: "cv.pdf", FileType: "application/pdf", FileSize: 10, JobID: "job-1"}

	a, err := f.uploads.PresignApplication(context.Background(), req)
	require.NoError(t, err)
	b, err := f.uploads.PresignApplication(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, a.S3Key, b.S3Key)
}

func TestUploadService_PresignApplication_Limits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uploads.PresignApplication(ctx, &dto.PresignRequest{
		FileName: "cv.pdf", FileType: "application/pdf", FileSize: 11_000_000, JobID: "job-1",
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Contains(t, err.Error(), "10MB")

	_, err = f.uploads.PresignApplication(ctx, &dto.PresignRequest{
		FileName: "cv.pdf", FileType: "application/pdf", FileSize: MaxApplicationResumeSize, JobID: "job-1",
	})
	assert.NoError(t, err)

	_, err = f.uploads.PresignApplication(ctx, &dto.PresignRequest{
		FileName: "a.exe", FileType: "application/x-msdownload", FileSize: 10, JobID: "job-1",
	})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = f.uploads.PresignApplication(ctx, &dto.PresignRequest{FileName: "cv.pdf", FileType: "application/pdf", FileSize: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.uploads.PresignApplication(ctx, &dto.PresignRequest{
		FileName: "cv.pdf", FileType: "application/pdf", FileSize: 10, JobID: "../etc",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUploadService_PresignProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := registered(t, f)

	resp, err := f.uploads.PresignProfile(ctx, userID, &dto.PresignRequest{FileName: "cv.doc", FileType: "application/msword", FileSize: 4096})
	require.NoError(t, err)
	assert.Equal(t, "resumes/"+userID+"/"+resp.ResumeID+".doc", resp.S3Key)

	_, err = f.uploads.PresignProfile(ctx, userID, &dto.PresignRequest{FileName: "cv.pdf", FileType: "pdf", FileSize: 6_000_000})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = f.uploads.PresignProfile(ctx, "missing", &dto.PresignRequest{FileName: "cv.pdf", FileType: "pdf", FileSize: 10})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
