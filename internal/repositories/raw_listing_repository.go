package repositories

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/utils"
	"homeinsight-listings/pkg/logger"
)

const maxListingLine = 1 << 20

type fileRawListingRepository struct {
	dir string
}

// NewFileRawListingRepository keeps scraped listings as JSON lines under
// dir/{country}/{state}/{suburb}.jsonl.
func NewFileRawListingRepository(dir string) RawListingRepository {
	return &fileRawListingRepository{dir: dir}
}

func (r *fileRawListingRepository) path(loc models.Location) string {
	return locationPath(filepath.Join(r.dir, "{country}", "{state}", "{suburb}.jsonl"), loc)
}

func (r *fileRawListingRepository) Read(ctx context.Context, loc models.Location) ([]models.RawListing, error) {
	return r.ReadPath(ctx, r.path(loc))
}

func (r *fileRawListingRepository) ReadPath(ctx context.Context, path string) ([]models.RawListing, error) {
	data, err := utils.ReadFile(path, "read_raw_listings")
	if err != nil {
		return nil, fmt.Errorf("raw listings %s: %w", path, err)
	}

	var listings []models.RawListing
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), maxListingLine)
	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var listing models.RawListing
		if err := json.Unmarshal(text, &listing); err != nil {
			logger.L().Errorf("failed to decode raw listing %s:%d: %v", path, line, err)
			return nil, fmt.Errorf("raw listings %s: line %d: %w", path, line, err)
		}
		listings = append(listings, listing)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("raw listings %s: %w", path, err)
	}
	return listings, nil
}

func (r *fileRawListingRepository) Write(ctx context.Context, loc models.Location, listings []models.RawListing) error {
	var buf bytes.Buffer
	for _, listing := range listings {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := json.Marshal(listing)
		if err != nil {
			return err
		}
		buf.Write(payload)
		buf.WriteByte('\n')
	}
	path := r.path(loc)
	if err := utils.WriteFile(path, "write_raw_listings", buf.Bytes()); err != nil {
		return fmt.Errorf("raw listings %s: %w", path, err)
	}
	return nil
}
