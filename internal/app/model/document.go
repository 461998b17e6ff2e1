package model

// DocumentStatusDone is the only status a persisted document ever carries.
// Documents are written in a single put after the job completes, so a
// partially transcribed document never exists in storage.
const DocumentStatusDone = "Done"

// TranscriptDocument is the durable artifact produced by a completed job.
// The stored JSON keeps the original field names; DocID is derived from
// the object key and attached on read, never persisted.
type TranscriptDocument struct {
	DocID        string `json:"docid,omitempty"`
	Name         string `json:"name"`
	UploadDate   string `json:"upload_date"`
	Transcripted string `json:"transcripted"`
	Status       string `json:"status"`
}
