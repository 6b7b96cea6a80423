package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"civictrack-be/storage"
)

// UploadController accepts evidence files and returns their stable URLs.
type UploadController struct {
	evidence storage.EvidenceStore
	logger   *zap.Logger
}

func NewUploadController(evidence storage.EvidenceStore, logger *zap.Logger) *UploadController {
	return &UploadController{evidence: evidence, logger: logger}
}

func (uc *UploadController) save(c *gin.Context, header *multipart.FileHeader) (string, bool) {
	if header.Size > storage.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 50MB limit"})
		return "", false
	}

	f, err := header.Open()
	if err != nil {
		uc.logger.Error("open upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return "", false
	}
	defer f.Close()

	url, err := uc.evidence.Save(header.Filename, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return url, true
}

// Single stores one evidence file.
func (uc *UploadController) Single(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	url, ok := uc.save(c, header)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url, "filename": header.Filename})
}

// Multiple stores up to three evidence files in one request, matching the
// per-issue evidence cap.
func (uc *UploadController) Multiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	if len(headers) > 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At most 3 files allowed"})
		return
	}

	files := make([]gin.H, 0, len(headers))
	for _, header := range headers {
		url, ok := uc.save(c, header)
		if !ok {
			return
		}
		files = append(files, gin.H{
			"url":      url,
			"filename": header.Filename,
			"size":     header.Size,
		})
	}
	c.JSON(http.StatusCreated, gin.H{"files": files})
}
