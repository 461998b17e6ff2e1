package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tubescribe/internal/api/middleware"
	"tubescribe/internal/api/v1/dto"
	"tubescribe/internal/api/v1/services"
)

// TranscribeHandler handles the transcription submission endpoint
type TranscribeHandler struct {
	service services.TranscribeService
}

// NewTranscribeHandler creates a new transcribe handler
func NewTranscribeHandler(service services.TranscribeService) *TranscribeHandler {
	return &TranscribeHandler{service: service}
}

// Transcribe handles POST /transcribe
//
// The response is deferred until the external transcription job
// reaches a terminal state; an unsupported source is rejected with a
// plain-text 400 before any side effect occurs.
//
// @Summary Transcribe a video link
// @Description Extracts audio from a video link, submits it to the external speech-to-text service and waits for the transcript document
// @Tags transcriptions
// @Accept json
// @Produce json
// @Param request body dto.TranscribeRequest true "Video to transcribe"
// @Success 200 {object} dto.TranscribeResponse "Transcription completed"
// @Failure 400 {string} string "Unsupported source"
// @Failure 500 {object} errors.APIError "Upload, submission or polling failure"
// @Router /transcribe [post]
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	var req dto.TranscribeRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if req.Source != dto.SourceYouTube {
		c.String(http.StatusBadRequest, "Only YouTube links are supported")
		return
	}

	response, err := h.service.Transcribe(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
