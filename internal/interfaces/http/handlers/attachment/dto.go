package attachment

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	"stagedesk/internal/application/attachment/usecases"
	"stagedesk/internal/shared/constants"
	"stagedesk/internal/shared/errors"
)

type RequestDeletionRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

type RejectDeletionRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

type ConfirmDeletionRequest struct {
	OTPCode string `json:"otp_code" binding:"required"`
}

func parseRequestID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid id")
	}
	return uint(id), nil
}

// parseUploads drains the multipart form into in-memory file uploads. Sizes
// are re-checked in the use case; the early cap here avoids buffering
// oversized bodies.
func parseUploads(files []*multipart.FileHeader) ([]usecases.FileUpload, error) {
	uploads := make([]usecases.FileUpload, 0, len(files))
	for _, fh := range files {
		if fh.Size > constants.MaxAttachmentSizeBytes {
			return nil, errors.NewValidationError("file " + fh.Filename + " exceeds the size limit")
		}

		f, err := fh.Open()
		if err != nil {
			return nil, errors.NewValidationError("unable to read file " + fh.Filename)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.NewValidationError("unable to read file " + fh.Filename)
		}

		uploads = append(uploads, usecases.FileUpload{
			FileName: fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Content:  content,
		})
	}
	return uploads, nil
}
