package launches

import (
	"context"
	"fmt"
	"path/filepath"

	"rocket-launches/internal/modules/downloader"
	"rocket-launches/internal/modules/persistence"

	"go.uber.org/zap"
)

const (
	// TaskID is the step name of the fetcher in the workflow.
	TaskID = "download_launches"
	// DefaultURL lists upcoming launches.
	DefaultURL = "https://ll.thespacedevs.com/2.0.0/launch/upcoming"
)

// Fetcher saves the upcoming launches document to a fixed path.
// It implements pipeline.Step.
type Fetcher struct {
	url        string
	filename   string
	downloader *downloader.Downloader
	persister  *persistence.FilePersister
}

// New creates a Fetcher that writes url's body to path.
func New(url, path string, dl *downloader.Downloader) *Fetcher {
	return &Fetcher{
		url:        url,
		filename:   filepath.Base(path),
		downloader: dl,
		persister:  persistence.New(filepath.Dir(path)),
	}
}

func (f *Fetcher) Name() string { return TaskID }

func (f *Fetcher) Description() string {
	return "Download the list of upcoming launches from " + f.url + "."
}

// Execute runs Fetch as a pipeline step.
func (f *Fetcher) Execute(ctx context.Context, logger *zap.Logger) error {
	_, err := f.Fetch(ctx, logger)
	return err
}

// Fetch downloads the document, following redirects, and overwrites the
// previous copy. The body is stored as received; it is validated by its
// reader.
//
// Returns:
//   - The path that was written.
//   - An error on transport failure, non-2xx status or write failure.
func (f *Fetcher) Fetch(ctx context.Context, logger *zap.Logger) (string, error) {
	content := f.downloader.Download(ctx, f.url)
	if content.Error != nil {
		return "", fmt.Errorf("fetch launches: %w", content.Error)
	}

	if err := f.persister.EnsureDir(); err != nil {
		return "", err
	}
	path, err := f.persister.Save(f.filename, content.Data)
	if err != nil {
		return "", err
	}

	logger.Info("saved launch list",
		zap.String("url", f.url),
		zap.String("path", path),
		zap.Int("bytes", len(content.Data)),
		zap.Duration("duration", content.Duration))
	return path, nil
}
