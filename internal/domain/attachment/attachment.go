package attachment

import (
	"fmt"
	"time"
)

// UploadContext records which lifecycle step a file was attached during.
type UploadContext string

const (
	ContextInitial    UploadContext = "initial"
	ContextResolution UploadContext = "resolution"
	ContextReopen     UploadContext = "reopen"
	ContextAdditional UploadContext = "additional"
)

var validUploadContexts = map[UploadContext]bool{
	ContextInitial:    true,
	ContextResolution: true,
	ContextReopen:     true,
	ContextAdditional: true,
}

func (c UploadContext) String() string {
	return string(c)
}

func (c UploadContext) IsValid() bool {
	return validUploadContexts[c]
}

// ParseUploadContext maps a raw value onto the enum, falling back to
// additional for anything absent or unrecognized.
func ParseUploadContext(s string) UploadContext {
	c := UploadContext(s)
	if c.IsValid() {
		return c
	}
	return ContextAdditional
}

// allowedMimeTypes is the upload allow-list: images, PDF, Office formats,
// CSV and ZIP.
var allowedMimeTypes = map[string]bool{
	"image/png":          true,
	"image/jpeg":         true,
	"image/gif":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/csv":        true,
	"application/zip": true,
}

// IsAllowedMimeType reports whether the MIME type may be uploaded.
func IsAllowedMimeType(mime string) bool {
	return allowedMimeTypes[mime]
}

// Attachment is file metadata tied to a ticket. Rows are removed only
// through the deletion-approval workflow, never directly.
type Attachment struct {
	id            uint
	ticketID      uint
	fileName      string
	storageURL    string
	sizeBytes     int64
	mimeType      string
	uploadedBy    uint
	uploadContext UploadContext
	inline        bool
	createdAt     time.Time
}

func NewAttachment(
	ticketID uint,
	fileName string,
	storageURL string,
	sizeBytes int64,
	mimeType string,
	uploadedBy uint,
	uploadContext UploadContext,
	inline bool,
) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if len(fileName) == 0 {
		return nil, fmt.Errorf("file name is required")
	}
	if len(storageURL) == 0 {
		return nil, fmt.Errorf("storage URL is required")
	}
	if sizeBytes <= 0 {
		return nil, fmt.Errorf("file size must be positive")
	}
	if !IsAllowedMimeType(mimeType) {
		return nil, fmt.Errorf("mime type %s is not allowed", mimeType)
	}
	if uploadedBy == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	if !uploadContext.IsValid() {
		uploadContext = ContextAdditional
	}

	return &Attachment{
		ticketID:      ticketID,
		fileName:      fileName,
		storageURL:    storageURL,
		sizeBytes:     sizeBytes,
		mimeType:      mimeType,
		uploadedBy:    uploadedBy,
		uploadContext: uploadContext,
		inline:        inline,
		createdAt:     time.Now().UTC(),
	}, nil
}

func ReconstructAttachment(
	id uint,
	ticketID uint,
	fileName string,
	storageURL string,
	sizeBytes int64,
	mimeType string,
	uploadedBy uint,
	uploadContext UploadContext,
	inline bool,
	createdAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	return &Attachment{
		id:            id,
		ticketID:      ticketID,
		fileName:      fileName,
		storageURL:    storageURL,
		sizeBytes:     sizeBytes,
		mimeType:      mimeType,
		uploadedBy:    uploadedBy,
		uploadContext: uploadContext,
		inline:        inline,
		createdAt:     createdAt,
	}, nil
}

func (a *Attachment) ID() uint                     { return a.id }
func (a *Attachment) TicketID() uint               { return a.ticketID }
func (a *Attachment) FileName() string             { return a.fileName }
func (a *Attachment) StorageURL() string           { return a.storageURL }
func (a *Attachment) SizeBytes() int64             { return a.sizeBytes }
func (a *Attachment) MimeType() string             { return a.mimeType }
func (a *Attachment) UploadedBy() uint             { return a.uploadedBy }
func (a *Attachment) UploadContext() UploadContext { return a.uploadContext }
func (a *Attachment) Inline() bool                 { return a.inline }
func (a *Attachment) CreatedAt() time.Time         { return a.createdAt }

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
