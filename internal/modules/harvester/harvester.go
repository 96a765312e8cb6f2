package harvester

import (
	"context"
	"fmt"

	"rocket-launches/internal/modules/downloader"
	"rocket-launches/internal/modules/filereader"
	"rocket-launches/internal/modules/persistence"

	"go.uber.org/zap"
)

// TaskID is the step name of the harvester in the workflow.
const TaskID = "get_pictures"

// Harvester downloads the image of every launch in a launch list document.
// It implements pipeline.Step.
type Harvester struct {
	reader     *filereader.FileReader
	downloader *downloader.Downloader
	persister  *persistence.FilePersister
}

// New creates a Harvester reading reader's document and writing images
// through persister.
func New(reader *filereader.FileReader, dl *downloader.Downloader, persister *persistence.FilePersister) *Harvester {
	return &Harvester{
		reader:     reader,
		downloader: dl,
		persister:  persister,
	}
}

func (h *Harvester) Name() string { return TaskID }

func (h *Harvester) Description() string {
	return "Download the image of every launch listed in " + h.reader.Path() + " into " + h.persister.Dir() + "."
}

// Execute runs Harvest as a pipeline step.
func (h *Harvester) Execute(ctx context.Context, logger *zap.Logger) error {
	return h.Harvest(ctx, logger)
}

// Harvest fetches every image URL of the document sequentially, in document
// order, and stores each one under its final path segment.
//
// Invalid URLs and unreachable hosts are logged and skipped. Any other
// failure aborts the batch, leaving files already written in place.
func (h *Harvester) Harvest(ctx context.Context, logger *zap.Logger) error {
	if err := h.persister.EnsureDir(); err != nil {
		return err
	}

	urls, err := h.reader.ImageURLs(logger)
	if err != nil {
		return fmt.Errorf("read launches: %w", err)
	}

	for _, url := range urls {
		if err := h.harvestOne(ctx, url, logger); err != nil {
			return err
		}
	}
	return nil
}

func (h *Harvester) harvestOne(ctx context.Context, url string, logger *zap.Logger) error {
	content := h.downloader.Download(ctx, url)

	switch downloader.Classify(ctx, content.Error) {
	case downloader.KindNone:
	case downloader.KindInvalidURL:
		logger.Warn("image URL appears to be invalid, skipping",
			zap.String("url", url),
			zap.Error(content.Error))
		return nil
	case downloader.KindUnreachable:
		logger.Warn("could not connect to image host, skipping",
			zap.String("url", url),
			zap.Error(content.Error))
		return nil
	default:
		return fmt.Errorf("download %s: %w", url, content.Error)
	}

	path, err := h.persister.Save(persistence.FilenameFromURL(url), content.Data)
	if err != nil {
		return err
	}

	logger.Info("downloaded image",
		zap.String("url", url),
		zap.String("path", path),
		zap.Int("bytes", len(content.Data)),
		zap.Duration("duration", content.Duration))
	return nil
}
