// Package workflow assembles the rocket launch image workflow:
// download_launches >> get_pictures >> notify.
package workflow

import (
	"fmt"
	"io"
	"time"

	"rocket-launches/internal/config"
	"rocket-launches/internal/modules/downloader"
	"rocket-launches/internal/modules/filereader"
	"rocket-launches/internal/modules/harvester"
	"rocket-launches/internal/modules/launches"
	"rocket-launches/internal/modules/persistence"
	"rocket-launches/internal/modules/pipeline"
	"rocket-launches/internal/modules/reporter"

	"go.uber.org/zap"
)

const (
	ID          = "download_rocket_launches"
	Description = "Download rocket pictures of recently launched rockets."
)

// Build wires the three steps from cfg. now anchors the schedule's start
// date; out receives the summary line.
func Build(cfg *config.Config, now time.Time, out io.Writer, logger *zap.Logger) (*pipeline.Pipeline, error) {
	schedule, err := pipeline.ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("build workflow: %w", err)
	}

	dl := downloader.New(downloader.NewClient(cfg.HTTPTimeout))

	p := pipeline.New(pipeline.Metadata{
		ID:          ID,
		Description: Description,
		Schedule:    schedule,
		StartDate:   pipeline.StartDate(now, cfg.StartOffsetDays),
	}, logger)

	p.AddStage(launches.New(cfg.LaunchesURL, cfg.LaunchesPath, dl))
	p.AddStage(harvester.New(filereader.New(cfg.LaunchesPath), dl, persistence.New(cfg.ImagesDir)))
	p.AddStage(reporter.New(cfg.ImagesDir, out))
	return p, nil
}
