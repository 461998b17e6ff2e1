package media

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	apperrors "tubescribe/internal/app/errors"
)

// Fetcher resolves a video link to an audio byte stream
type Fetcher interface {
	Fetch(ctx context.Context, link string) (io.ReadCloser, error)
}

// YTDLPFetcher extracts audio from a video link by running yt-dlp
type YTDLPFetcher struct {
	binary string
	logger *slog.Logger
}

// NewYTDLPFetcher creates a fetcher using the given yt-dlp binary.
// An empty binary falls back to "yt-dlp" on PATH.
func NewYTDLPFetcher(binary string, logger *slog.Logger) *YTDLPFetcher {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YTDLPFetcher{binary: binary, logger: logger}
}

// Fetch starts yt-dlp and streams the extracted mp3 audio on the
// returned reader. Closing the reader terminates the extraction.
func (f *YTDLPFetcher) Fetch(ctx context.Context, link string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, f.binary,
		"-f", "bestaudio",
		"-x", "--audio-format", "mp3",
		"--quiet",
		"-o", "-",
		link,
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUpstream, "failed to create audio pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUpstream, "failed to create stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.KindUpstream, "failed to start %s", f.binary)
	}

	stream := &audioStream{
		reader: stdout,
		cmd:    cmd,
	}

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				stream.lastErrLine = line
			}
		}
	}()

	f.logger.Info("audio extraction started", "link", link)
	return stream, nil
}

// audioStream wraps the extractor's stdout and reaps the process on Close
type audioStream struct {
	reader      io.ReadCloser
	cmd         *exec.Cmd
	lastErrLine string
}

func (s *audioStream) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *audioStream) Close() error {
	_ = s.reader.Close()
	if err := s.cmd.Wait(); err != nil {
		if s.lastErrLine != "" {
			return fmt.Errorf("audio extraction failed: %s: %w", s.lastErrLine, err)
		}
		return fmt.Errorf("audio extraction failed: %w", err)
	}
	return nil
}
