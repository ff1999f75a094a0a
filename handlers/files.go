package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadFile stores an image and returns its public URL
func (h *Handler) UploadFile(c *gin.Context) {
	url, ok := h.saveUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *Handler) saveUpload(c *gin.Context) (string, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return "", false
	}
	url, err := h.Store.Save(fh)
	if err != nil {
		h.respondError(c, err)
		return "", false
	}
	return url, true
}
