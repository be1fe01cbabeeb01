package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/media"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type MediaHandler struct {
	uploadMediaUC *mediaUC.UploadMediaUseCase
	logger        logger.Logger
}

func NewMediaHandler(uploadUC *mediaUC.UploadMediaUseCase, log logger.Logger) *MediaHandler {
	return &MediaHandler{uploadMediaUC: uploadUC, logger: log}
}

// UploadMedia stores a multipart file in the public bucket and returns
// its URL for use as photo_url / image_url / resume_url.
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadMediaUC.Execute(c.Request.Context(), mediaUC.UploadMediaInput{
		OwnerID:  ownerID,
		File:     file,
		Folder:   c.PostForm("folder"),
		FileName: fileHeader.Filename,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": output.URL})
}
