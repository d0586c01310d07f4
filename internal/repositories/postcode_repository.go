package repositories

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/utils"
	"homeinsight-listings/pkg/config"
	"homeinsight-listings/pkg/logger"
)

type filePostcodeRepository struct {
	template string
}

// NewFilePostcodeRepository reads "postcode,suburb" CSV tables from a path
// template containing {country}.
func NewFilePostcodeRepository(template string) PostcodeRepository {
	return &filePostcodeRepository{template: template}
}

func (r *filePostcodeRepository) LoadPostcodes(ctx context.Context, country models.Country) ([]models.PostcodeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := config.FormatPath(r.template, string(country), "", "")
	data, err := utils.ReadFile(path, "read_postcodes")
	if err != nil {
		logger.L().Errorf("failed to read postcode table %s: %v", path, err)
		return nil, fmt.Errorf("postcode table for %s: %w", country, err)
	}
	entries, err := decodePostcodes(data)
	if err != nil {
		return nil, fmt.Errorf("postcode table %s: %w", path, err)
	}
	return entries, nil
}

func decodePostcodes(data []byte) ([]models.PostcodeEntry, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header: %w", err)
	}
	columns, err := indexColumns(header, "postcode", "suburb")
	if err != nil {
		return nil, err
	}

	var entries []models.PostcodeEntry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		suburb := strings.TrimSpace(record[columns["suburb"]])
		raw := strings.TrimSpace(record[columns["postcode"]])
		if suburb == "" && raw == "" {
			continue
		}
		postcode, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid postcode %q", line, raw)
		}
		entries = append(entries, models.PostcodeEntry{Postcode: uint32(postcode), Suburb: suburb})
	}
	return entries, nil
}

// indexColumns maps each required column name to its position in header.
func indexColumns(header []string, required ...string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[utils.NormalizeLabel(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return columns, nil
}

// MemoryPostcodeRepository holds tables in memory. Replacing a table with
// StorePostcodes is how tests swap the backing resource.
type MemoryPostcodeRepository struct {
	mu     sync.Mutex
	tables map[models.Country][]models.PostcodeEntry
	loads  int
}

func NewMemoryPostcodeRepository() *MemoryPostcodeRepository {
	return &MemoryPostcodeRepository{tables: make(map[models.Country][]models.PostcodeEntry)}
}

func (r *MemoryPostcodeRepository) LoadPostcodes(ctx context.Context, country models.Country) ([]models.PostcodeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	entries, ok := r.tables[country]
	if !ok {
		return nil, fmt.Errorf("no postcode table for %s", country)
	}
	return append([]models.PostcodeEntry(nil), entries...), nil
}

func (r *MemoryPostcodeRepository) StorePostcodes(_ context.Context, country models.Country, entries []models.PostcodeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[country] = append([]models.PostcodeEntry(nil), entries...)
	return nil
}

// Loads counts LoadPostcodes calls.
func (r *MemoryPostcodeRepository) Loads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}
