package dto

import (
	"tubescribe/internal/app/model"
)

// SourceYouTube is the only supported video source
const SourceYouTube = "Youtube"

// TranscribeRequest is the body of POST /transcribe
type TranscribeRequest struct {
	Name   string `json:"name" binding:"required"`
	Link   string `json:"link" binding:"required,url"`
	Source string `json:"source" binding:"required"`
}

// TranscribeResponse is returned once the job has completed
type TranscribeResponse struct {
	TranscriptionURL string `json:"transcriptionUrl"`
}

// DocumentResponse is a transcript document annotated with its docid
type DocumentResponse struct {
	DocID        string `json:"docid"`
	Name         string `json:"name"`
	UploadDate   string `json:"upload_date"`
	Transcripted string `json:"transcripted"`
	Status       string `json:"status"`
}

// UpdateDocumentRequest is the body of PUT /transcriptions/:id.
// Nil fields are left unchanged.
type UpdateDocumentRequest struct {
	Name         *string `json:"name"`
	Transcripted *string `json:"transcripted"`
}

// ToDocumentResponse converts a model document to its API shape
func ToDocumentResponse(doc model.TranscriptDocument) DocumentResponse {
	return DocumentResponse{
		DocID:        doc.DocID,
		Name:         doc.Name,
		UploadDate:   doc.UploadDate,
		Transcripted: doc.Transcripted,
		Status:       doc.Status,
	}
}
