package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type fakeUploader struct {
	lastFolder string
	lastName   string
	err        error
}

func (f *fakeUploader) Upload(ctx context.Context, file io.Reader, folder, fileName string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastFolder = folder
	f.lastName = fileName
	return "https://bucket.example.com/" + folder + "/" + fileName, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

func TestUploadMedia_DefaultsToProjectsFolder(t *testing.T) {
	up := &fakeUploader{}
	uc := NewUploadMediaUseCase(up, logger.NewNop())

	out, err := uc.Execute(context.Background(), UploadMediaInput{
		OwnerID:  uuid.New(),
		File:     strings.NewReader("png bytes"),
		FileName: "screenshot.png",
	})

	assert.NoError(t, err)
	assert.Equal(t, "projects", up.lastFolder)
	assert.True(t, strings.HasSuffix(up.lastName, "_screenshot.png"))
	assert.Contains(t, out.URL, "/projects/")
}

func TestUploadMedia_UnknownFolder(t *testing.T) {
	uc := NewUploadMediaUseCase(&fakeUploader{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), UploadMediaInput{
		OwnerID:  uuid.New(),
		File:     strings.NewReader("data"),
		Folder:   "secrets",
		FileName: "f.txt",
	})

	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestUploadMedia_SanitizesFileName(t *testing.T) {
	up := &fakeUploader{}
	uc := NewUploadMediaUseCase(up, logger.NewNop())

	_, err := uc.Execute(context.Background(), UploadMediaInput{
		OwnerID:  uuid.New(),
		File:     strings.NewReader("data"),
		Folder:   "resumes",
		FileName: "../../my résumé (final).pdf",
	})

	assert.NoError(t, err)
	assert.NotContains(t, up.lastName, "/")
	assert.NotContains(t, up.lastName, " ")
	assert.True(t, strings.HasSuffix(up.lastName, ".pdf"))
}

func TestUploadMedia_UploaderFailure(t *testing.T) {
	uc := NewUploadMediaUseCase(&fakeUploader{err: errors.New("bucket offline")}, logger.NewNop())

	_, err := uc.Execute(context.Background(), UploadMediaInput{
		OwnerID:  uuid.New(),
		File:     strings.NewReader("data"),
		FileName: "a.png",
	})

	assert.True(t, errors.Is(err, apperror.ErrInternal))
}
