package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/openalex-mcp/internal/openalex"
)

// fakeFetcher returns canned bytes and counts calls.
type fakeFetcher struct {
	content     []byte
	contentType string
	err         error
	calls       int
}

func (f *fakeFetcher) DownloadBytes(ctx context.Context, url string) ([]byte, string, error) {
	f.calls++
	if f.err != nil {
		return nil, "", f.err
	}
	return f.content, f.contentType, nil
}

func openAccessWork() *openalex.Work {
	return &openalex.Work{
		ID:    "https://openalex.org/W1",
		Title: "The state of OA",
		IsOA:  true,
		BestOALocation: &openalex.Location{
			PDFURL: "https://example.org/best.pdf",
			IsOA:   true,
		},
	}
}

func TestResolveURL(t *testing.T) {
	t.Run("prefers the best open-access location", func(t *testing.T) {
		work := openAccessWork()
		work.Locations = []openalex.Location{
			{IsOA: true, PDFURL: "https://example.org/other.pdf"},
		}

		assert.Equal(t, "https://example.org/best.pdf", ResolveURL(work))
	})

	t.Run("falls back to the first open-access location with a PDF", func(t *testing.T) {
		work := &openalex.Work{
			Locations: []openalex.Location{
				{IsOA: false, PDFURL: "https://example.org/closed.pdf"},
				{IsOA: true},
				{IsOA: true, PDFURL: "https://example.org/green.pdf"},
			},
		}

		assert.Equal(t, "https://example.org/green.pdf", ResolveURL(work))
	})

	t.Run("ignores best location when the work is not open access", func(t *testing.T) {
		work := openAccessWork()
		work.IsOA = false
		work.Locations = nil

		assert.Empty(t, ResolveURL(work))
	})

	t.Run("returns empty when nothing is resolvable", func(t *testing.T) {
		assert.Empty(t, ResolveURL(&openalex.Work{}))
	})
}

func TestFilenameFromTitle(t *testing.T) {
	t.Run("strips reserved characters and replaces spaces", func(t *testing.T) {
		got := FilenameFromTitle(`Attention: Is <All> You "Need"? A/B\C|D*E`)

		assert.Equal(t, "Attention_Is_All_You_Need_ABCDE.pdf", got)
		assert.False(t, strings.ContainsAny(got, `<>:"/\|?*`))
	})

	t.Run("truncates long titles to fifty runes plus suffix", func(t *testing.T) {
		got := FilenameFromTitle(strings.Repeat("a", 200))

		assert.Len(t, got, 50+len(".pdf"))
		assert.True(t, strings.HasSuffix(got, ".pdf"))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		got := FilenameFromTitle(strings.Repeat("é", 200))

		assert.Equal(t, 50, len([]rune(strings.TrimSuffix(got, ".pdf"))))
	})
}

func TestDownloader_Download(t *testing.T) {
	t.Run("saves a resolvable PDF", func(t *testing.T) {
		dir := t.TempDir()
		fetcher := &fakeFetcher{content: []byte("%PDF-1.5 fake"), contentType: "application/pdf"}
		d := NewDownloader(fetcher, zerolog.Nop(), nil)

		outcome := d.Download(context.Background(), openAccessWork(), dir, "")

		require.Equal(t, StateSaved, outcome.State)
		assert.Equal(t, "The state of OA", outcome.Title)
		assert.Equal(t, filepath.Join(dir, "The_state_of_OA.pdf"), outcome.Path)
		assert.Equal(t, int64(13), outcome.SizeBytes)
		assert.Equal(t, "https://example.org/best.pdf", outcome.SourceURL)

		content, err := os.ReadFile(outcome.Path)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.5 fake"), content)
	})

	t.Run("explicit filename overrides the derived one", func(t *testing.T) {
		dir := t.TempDir()
		fetcher := &fakeFetcher{content: []byte("x")}
		d := NewDownloader(fetcher, zerolog.Nop(), nil)

		outcome := d.Download(context.Background(), openAccessWork(), dir, "custom.pdf")

		require.Equal(t, StateSaved, outcome.State)
		assert.Equal(t, filepath.Join(dir, "custom.pdf"), outcome.Path)
	})

	t.Run("no resolvable PDF makes no fetch", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		d := NewDownloader(fetcher, zerolog.Nop(), nil)

		outcome := d.Download(context.Background(), &openalex.Work{Title: "Paywalled"}, t.TempDir(), "")

		assert.Equal(t, StateNoPDF, outcome.State)
		assert.Equal(t, "Paywalled", outcome.Title)
		assert.Zero(t, fetcher.calls)
	})

	t.Run("fetch failure yields download_failed", func(t *testing.T) {
		fetchErr := &openalex.UpstreamError{StatusCode: 403, Body: "forbidden"}
		d := NewDownloader(&fakeFetcher{err: fetchErr}, zerolog.Nop(), nil)

		outcome := d.Download(context.Background(), openAccessWork(), t.TempDir(), "")

		assert.Equal(t, StateDownloadFailed, outcome.State)
		assert.Equal(t, "https://example.org/best.pdf", outcome.SourceURL)
		assert.ErrorIs(t, outcome.Err, openalex.ErrUpstream)
	})

	t.Run("write failure yields storage_failed", func(t *testing.T) {
		dir := t.TempDir()
		// A directory blocking the target path forces the write to fail.
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "blocked.pdf"), 0o755))

		d := NewDownloader(&fakeFetcher{content: []byte("x")}, zerolog.Nop(), nil)
		outcome := d.Download(context.Background(), openAccessWork(), dir, "blocked.pdf")

		assert.Equal(t, StateStorageFailed, outcome.State)
		assert.ErrorIs(t, outcome.Err, openalex.ErrStorage)
	})

	t.Run("falls back through title fields", func(t *testing.T) {
		work := openAccessWork()
		work.Title = ""
		work.DisplayName = "Display Title"

		d := NewDownloader(&fakeFetcher{content: []byte("x")}, zerolog.Nop(), nil)
		outcome := d.Download(context.Background(), work, t.TempDir(), "")

		assert.Equal(t, "Display Title", outcome.Title)

		work.DisplayName = ""
		outcome = d.Download(context.Background(), work, t.TempDir(), "")
		assert.Equal(t, "Unknown Title", outcome.Title)
	})
}

func TestOutcome_SizeMB(t *testing.T) {
	o := &Outcome{SizeBytes: 5 * 1024 * 1024}
	assert.InDelta(t, 5.0, o.SizeMB(), 0.001)
}

var errBoom = errors.New("boom")

func TestFailureKind(t *testing.T) {
	assert.Equal(t, "transport", failureKind(&openalex.TransportError{Err: errBoom}))
	assert.Equal(t, "upstream", failureKind(&openalex.UpstreamError{StatusCode: 500}))
	assert.Equal(t, "too_large", failureKind(openalex.ErrTooLarge))
	assert.Equal(t, "other", failureKind(errBoom))
}
