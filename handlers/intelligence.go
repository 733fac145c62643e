package handlers

import (
	"io"
	"net/http"

	ai "vijayfix/services/intelligence"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxPhotoBytes = 10 << 20

// DiagnosisHandler accepts appliance photos for AI diagnosis.
type DiagnosisHandler struct {
	Service ai.DiagnosisService
}

func NewDiagnosisHandler(svc ai.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{Service: svc}
}

// Diagnose reads the multipart "photo" field. Model failures still answer 200
// with a fallback message.
func (h *DiagnosisHandler) Diagnose(c *gin.Context) {
	logger := getLogger(c)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		respondBadRequest(c, "Missing photo", err)
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		respondBadRequest(c, "Photo too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, "Unreadable photo", err)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		respondBadRequest(c, "Unreadable photo", err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	diagnosis := h.Service.Diagnose(c.Request.Context(), image, mimeType)
	logger.Info("Photo diagnosed", zap.Int("bytes", len(image)), zap.String("mimeType", mimeType))

	c.JSON(http.StatusOK, gin.H{"diagnosis": diagnosis})
}
