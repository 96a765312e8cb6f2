package reporter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// TaskID is the step name of the reporter in the workflow.
const TaskID = "notify"

// Reporter prints how many images are stored. It implements pipeline.Step.
type Reporter struct {
	dir string
	out io.Writer
}

// New creates a Reporter counting dir and printing to out. A nil out
// prints to stdout.
func New(dir string, out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{dir: dir, out: out}
}

func (r *Reporter) Name() string { return TaskID }

func (r *Reporter) Description() string {
	return "Report the number of images in " + r.dir + "."
}

// Execute runs Report as a pipeline step.
func (r *Reporter) Execute(ctx context.Context, logger *zap.Logger) error {
	_, err := r.Report(ctx, logger)
	return err
}

// Count returns the number of visible entries in the directory. Hidden
// entries are ignored; everything else counts, subdirectories included.
// A directory that does not exist yet holds no images.
func (r *Reporter) Count() (int, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}

	n := 0
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			n++
		}
	}
	return n, nil
}

// Report prints "There are now <N> images." and returns N.
func (r *Reporter) Report(ctx context.Context, logger *zap.Logger) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n, err := r.Count()
	if err != nil {
		return 0, err
	}

	if _, err := fmt.Fprintf(r.out, "There are now %d images.\n", n); err != nil {
		return n, fmt.Errorf("write summary: %w", err)
	}
	logger.Info("image count", zap.String("dir", r.dir), zap.Int("images", n))
	return n, nil
}
