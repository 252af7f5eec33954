// Package pdf implements the open-access PDF download flow: resolving a
// PDF URL from a work record, deriving a safe filename, fetching the bytes
// through the shared gateway, and writing them to disk.
package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helixir/openalex-mcp/internal/observability"
	"github.com/helixir/openalex-mcp/internal/openalex"
)

// State is the terminal state of a download attempt.
type State string

// Terminal states of the download flow.
const (
	// StateNoPDF means no open-access PDF URL could be resolved; no
	// transport call was made.
	StateNoPDF State = "no_pdf_available"
	// StateSaved means the bytes were fetched and written successfully.
	StateSaved State = "saved"
	// StateDownloadFailed means the byte fetch failed.
	StateDownloadFailed State = "download_failed"
	// StateStorageFailed means the bytes were fetched but could not be
	// written locally.
	StateStorageFailed State = "storage_failed"
)

// maxFilenameLen caps the length of a title-derived filename stem.
const maxFilenameLen = 50

// Outcome is the result of one download attempt.
type Outcome struct {
	State     State
	Title     string
	Path      string
	SizeBytes int64
	SourceURL string
	Err       error
}

// SizeMB returns the downloaded size in megabytes.
func (o *Outcome) SizeMB() float64 {
	return float64(o.SizeBytes) / (1024 * 1024)
}

// ByteFetcher fetches raw bytes from a URL. Satisfied by the gateway
// client; narrowed to an interface so tests can count fetches.
type ByteFetcher interface {
	DownloadBytes(ctx context.Context, url string) ([]byte, string, error)
}

// Downloader runs the download flow against a shared gateway.
type Downloader struct {
	fetcher ByteFetcher
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewDownloader creates a Downloader. The metrics argument may be nil.
func NewDownloader(fetcher ByteFetcher, logger zerolog.Logger, metrics *observability.Metrics) *Downloader {
	return &Downloader{
		fetcher: fetcher,
		logger:  logger,
		metrics: metrics,
	}
}

// ResolveURL picks the PDF URL for a work: the best open-access location
// when the work is marked open access, otherwise the first listed location
// that is open access and carries a PDF URL. Returns "" when no PDF is
// resolvable.
func ResolveURL(work *openalex.Work) string {
	if work.IsOA && work.BestOALocation != nil && work.BestOALocation.PDFURL != "" {
		return work.BestOALocation.PDFURL
	}
	for _, loc := range work.Locations {
		if loc.IsOA && loc.PDFURL != "" {
			return loc.PDFURL
		}
	}
	return ""
}

// FilenameFromTitle derives a filesystem-safe filename from a work title:
// filesystem-reserved characters are stripped, spaces become underscores,
// and the stem is truncated before the .pdf suffix is appended.
func FilenameFromTitle(title string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return -1
		}
		return r
	}, title)
	clean = strings.ReplaceAll(clean, " ", "_")

	runes := []rune(clean)
	if len(runes) > maxFilenameLen {
		runes = runes[:maxFilenameLen]
	}
	return string(runes) + ".pdf"
}

// Download runs the flow for one work. The filename argument overrides the
// title-derived name when non-empty; outputDir is created if absent. Every
// failure is reported in the Outcome, never swallowed.
func (d *Downloader) Download(ctx context.Context, work *openalex.Work, outputDir, filename string) *Outcome {
	title := work.Title
	if title == "" {
		title = work.DisplayName
	}
	if title == "" {
		title = "Unknown Title"
	}

	pdfURL := ResolveURL(work)
	if pdfURL == "" {
		return &Outcome{State: StateNoPDF, Title: title}
	}

	if filename == "" {
		filename = FilenameFromTitle(title)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		serr := &openalex.StorageError{Path: outputDir, Err: err}
		d.logger.Error().Err(serr).Msg("failed to create output directory")
		d.countFailure("storage")
		return &Outcome{State: StateStorageFailed, Title: title, SourceURL: pdfURL, Err: serr}
	}

	path := filepath.Join(outputDir, filename)

	if d.metrics != nil {
		d.metrics.DownloadsTotal.Inc()
	}

	content, contentType, err := d.fetcher.DownloadBytes(ctx, pdfURL)
	if err != nil {
		d.logger.Error().Err(err).Str("url", pdfURL).Msg("PDF download failed")
		d.countFailure(failureKind(err))
		return &Outcome{State: StateDownloadFailed, Title: title, SourceURL: pdfURL, Err: err}
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		serr := &openalex.StorageError{Path: path, Err: err}
		d.logger.Error().Err(serr).Msg("failed to save PDF")
		d.countFailure("storage")
		return &Outcome{State: StateStorageFailed, Title: title, SourceURL: pdfURL, Err: serr}
	}

	if d.metrics != nil {
		d.metrics.DownloadBytes.Observe(float64(len(content)))
	}
	d.logger.Info().Str("path", path).Str("content_type", contentType).
		Int("bytes", len(content)).Msg("PDF saved")

	return &Outcome{
		State:     StateSaved,
		Title:     title,
		Path:      path,
		SizeBytes: int64(len(content)),
		SourceURL: pdfURL,
	}
}

func (d *Downloader) countFailure(kind string) {
	if d.metrics != nil {
		d.metrics.DownloadsFailed.WithLabelValues(kind).Inc()
	}
}

// failureKind maps a gateway error to a metric label.
func failureKind(err error) string {
	switch {
	case errors.Is(err, openalex.ErrTransport):
		return "transport"
	case errors.Is(err, openalex.ErrUpstream):
		return "upstream"
	case errors.Is(err, openalex.ErrTooLarge):
		return "too_large"
	default:
		return "other"
	}
}
