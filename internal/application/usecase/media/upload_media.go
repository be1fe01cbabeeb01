package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/internal/domain/media"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type UploadMediaUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadMediaUseCase(uploader service.Uploader, log logger.Logger) *UploadMediaUseCase {
	return &UploadMediaUseCase{uploader: uploader, logger: log}
}

type UploadMediaInput struct {
	OwnerID  uuid.UUID
	File     io.Reader
	Folder   string
	FileName string
}

type UploadMediaOutput struct {
	URL string
}

// Execute stores the file in the public bucket under the requested
// folder and returns the public URL. The stored name gets a random
// prefix so repeated uploads of the same file never collide.
func (uc *UploadMediaUseCase) Execute(ctx context.Context, in UploadMediaInput) (*UploadMediaOutput, error) {
	folder, ok := media.NormalizeFolder(in.Folder)
	if !ok {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("unknown upload folder %q", in.Folder), nil)
	}

	name := sanitizeFileName(in.FileName)
	if name == "" {
		return nil, apperror.NewInvalidInput("file name must not be empty", nil)
	}
	stored := fmt.Sprintf("%s_%s", uuid.New().String()[:8], name)

	url, err := uc.uploader.Upload(ctx, in.File, folder, stored)
	if err != nil {
		return nil, apperror.NewInternal("failed to upload media", err)
	}
	return &UploadMediaOutput{URL: url}, nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
