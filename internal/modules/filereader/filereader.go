package filereader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"rocket-launches/internal/models"

	"go.uber.org/zap"
)

// ErrMalformedDocument is returned when the launch list is not the expected JSON shape.
var ErrMalformedDocument = errors.New("malformed launch list")

// FileReader reads a launch list document from disk.
type FileReader struct {
	path string
}

// New creates a new FileReader
func New(path string) *FileReader {
	return &FileReader{path: path}
}

// Path returns the document path.
func (fr *FileReader) Path() string {
	return fr.path
}

type rawLaunchList struct {
	Results *[]map[string]json.RawMessage `json:"results"`
}

// ReadLaunches parses the document. A missing "results" array or a record
// without an "image" key is an error. A null image becomes an empty URL.
func (fr *FileReader) ReadLaunches() (*models.LaunchList, error) {
	data, err := os.ReadFile(fr.path)
	if err != nil {
		return nil, err
	}

	var raw rawLaunchList
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedDocument, fr.path, err)
	}
	if raw.Results == nil {
		return nil, fmt.Errorf("%w: %s: missing results", ErrMalformedDocument, fr.path)
	}

	list := &models.LaunchList{Results: make([]models.Launch, 0, len(*raw.Results))}
	for i, record := range *raw.Results {
		image, ok := record["image"]
		if !ok {
			return nil, fmt.Errorf("%w: %s: record %d has no image", ErrMalformedDocument, fr.path, i)
		}

		var launch models.Launch
		if !bytes.Equal(bytes.TrimSpace(image), []byte("null")) {
			if err := json.Unmarshal(image, &launch.Image); err != nil {
				return nil, fmt.Errorf("%w: %s: record %d image: %w", ErrMalformedDocument, fr.path, i, err)
			}
		}
		list.Results = append(list.Results, launch)
	}
	return list, nil
}

// ImageURLs returns the image URL of every launch in document order.
func (fr *FileReader) ImageURLs(logger *zap.Logger) ([]string, error) {
	list, err := fr.ReadLaunches()
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(list.Results))
	for _, launch := range list.Results {
		logger.Debug("read image URL", zap.String("url", launch.Image))
		urls = append(urls, launch.Image)
	}

	logger.Info("finished reading image URLs", zap.Int("total_urls", len(urls)))
	return urls, nil
}
