package catalog

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"rental-search/internal/model"
)

// FileSource reads listings from a JSONL file, one catalog record per line.
// The file is re-read on every call so edits are picked up without a restart.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchListings returns the listings of one category.
func (s *FileSource) FetchListings(ctx context.Context, category model.Category) ([]model.Listing, error) {
	all, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	return byCategory(all, category), nil
}

func (s *FileSource) readAll(ctx context.Context) ([]model.Listing, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrSourceConnection, s.path)
		}
		return nil, fmt.Errorf("open listings file: %w", err)
	}
	defer f.Close()

	listings := []model.Listing{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceTimeout, err)
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		l, err := DecodeListing([]byte(line))
		if err != nil {
			continue
		}
		listings = append(listings, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read listings file: %w", err)
	}
	return listings, nil
}
