package services

import (
	"context"

	"tubescribe/internal/api/v1/dto"
	apperrors "tubescribe/internal/app/errors"
	"tubescribe/internal/app/pipeline"
)

// TranscribeServiceImpl implements TranscribeService on top of the
// job orchestrator
type TranscribeServiceImpl struct {
	orchestrator *pipeline.Orchestrator
}

// NewTranscribeService creates a new transcribe service
func NewTranscribeService(orchestrator *pipeline.Orchestrator) TranscribeService {
	return &TranscribeServiceImpl{orchestrator: orchestrator}
}

// Transcribe validates the source, runs one pipeline pass on the
// request context and answers with the finished document's location.
// The response is deferred until the external job completes.
func (s *TranscribeServiceImpl) Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TranscribeResponse, error) {
	if req.Source != dto.SourceYouTube {
		return nil, apperrors.Newf(apperrors.KindValidation, "unsupported source %q", req.Source)
	}

	doc, err := s.orchestrator.Run(ctx, req.Name, req.Link)
	if err != nil {
		return nil, err
	}

	return &dto.TranscribeResponse{
		TranscriptionURL: "/transcriptions/" + doc.DocID,
	}, nil
}
