package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tubescribe/internal/api/errors"
	"tubescribe/internal/api/middleware"
	"tubescribe/internal/api/v1/dto"
	"tubescribe/internal/api/v1/services"
)

// DocumentHandler handles transcript document CRUD endpoints
type DocumentHandler struct {
	service services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(service services.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// List handles GET /transcriptions
//
// @Summary List transcript documents
// @Tags transcriptions
// @Produce json
// @Success 200 {array} dto.DocumentResponse "All persisted documents"
// @Failure 500 {object} errors.APIError "Storage failure"
// @Router /transcriptions [get]
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Get handles GET /transcriptions/:id
//
// @Summary Get a transcript document by docid
// @Tags transcriptions
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} errors.APIError "Document not found"
// @Failure 500 {object} errors.APIError "Storage failure"
// @Router /transcriptions/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	docID := c.Param("id")
	if docID == "" {
		middleware.HandleError(c, errors.NewBadRequestError("Missing document ID"))
		return
	}

	doc, err := h.service.Get(c.Request.Context(), docID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Update handles PUT /transcriptions/:id
//
// @Summary Update a transcript document
// @Description Updates the document's name and/or transcript text; absent fields are left unchanged
// @Tags transcriptions
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} errors.APIError "Document not found"
// @Failure 500 {object} errors.APIError "Storage failure"
// @Router /transcriptions/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	docID := c.Param("id")
	if docID == "" {
		middleware.HandleError(c, errors.NewBadRequestError("Missing document ID"))
		return
	}

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid request body"))
		return
	}

	doc, err := h.service.Update(c.Request.Context(), docID, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /transcriptions/:id
//
// @Summary Delete a transcript document
// @Tags transcriptions
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]string "Deleted document ID"
// @Failure 404 {object} errors.APIError "Document not found"
// @Failure 500 {object} errors.APIError "Storage failure"
// @Router /transcriptions/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID := c.Param("id")
	if docID == "" {
		middleware.HandleError(c, errors.NewBadRequestError("Missing document ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": docID})
}
