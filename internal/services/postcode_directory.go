package services

import (
	"context"
	"strconv"
	"sync"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/repositories"
	"homeinsight-listings/internal/utils"
	"homeinsight-listings/pkg/logger"
	"homeinsight-listings/pkg/metrics"
)

type postcodeTable struct {
	entries    []models.PostcodeEntry
	bySuburb   map[string]uint32
	byPostcode map[uint32]string
}

func newPostcodeTable(raw []models.PostcodeEntry) *postcodeTable {
	t := &postcodeTable{
		entries:    make([]models.PostcodeEntry, 0, len(raw)),
		bySuburb:   make(map[string]uint32, len(raw)),
		byPostcode: make(map[uint32]string, len(raw)),
	}
	for _, e := range raw {
		suburb := utils.NormalizeSuburb(e.Suburb)
		if suburb == "" {
			continue
		}
		t.entries = append(t.entries, models.PostcodeEntry{Postcode: e.Postcode, Suburb: suburb})
		if _, ok := t.bySuburb[suburb]; !ok {
			t.bySuburb[suburb] = e.Postcode
		}
		if _, ok := t.byPostcode[e.Postcode]; !ok {
			t.byPostcode[e.Postcode] = suburb
		}
	}
	return t
}

// tableLoad is a repository read in progress. Lookups for the same country
// wait on done instead of starting a second read.
type tableLoad struct {
	done  chan struct{}
	table *postcodeTable
	err   error
}

// PostcodeDirectory maps suburbs to postcodes and back. Each country's
// table is read from the repository once and then served from memory until
// Invalidate is called. Reads happen outside the lock, so cached countries
// stay available while another country loads.
type PostcodeDirectory struct {
	repo    repositories.PostcodeRepository
	mu      sync.RWMutex
	tables  map[models.Country]*postcodeTable
	loading map[models.Country]*tableLoad
}

func NewPostcodeDirectory(repo repositories.PostcodeRepository) *PostcodeDirectory {
	return &PostcodeDirectory{
		repo:    repo,
		tables:  make(map[models.Country]*postcodeTable),
		loading: make(map[models.Country]*tableLoad),
	}
}

func (d *PostcodeDirectory) table(ctx context.Context, country models.Country) (*postcodeTable, error) {
	d.mu.RLock()
	t, ok := d.tables[country]
	d.mu.RUnlock()
	if ok {
		return t, nil
	}

	d.mu.Lock()
	if t, ok := d.tables[country]; ok {
		d.mu.Unlock()
		return t, nil
	}
	if load, ok := d.loading[country]; ok {
		d.mu.Unlock()
		select {
		case <-load.done:
			return load.table, load.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	load := &tableLoad{done: make(chan struct{})}
	d.loading[country] = load
	d.mu.Unlock()

	entries, err := d.repo.LoadPostcodes(ctx, country)
	if err == nil {
		load.table = newPostcodeTable(entries)
	}
	load.err = err

	d.mu.Lock()
	delete(d.loading, country)
	if err == nil {
		d.tables[country] = load.table
	}
	d.mu.Unlock()
	close(load.done)

	if err != nil {
		return nil, err
	}
	metrics.PostcodeTableLoadsTotal.WithLabelValues(string(country)).Inc()
	logger.L().Printf("loaded %d postcodes for %s", len(load.table.entries), country)
	return load.table, nil
}

// Load returns the normalised table for country.
func (d *PostcodeDirectory) Load(ctx context.Context, country models.Country) ([]models.PostcodeEntry, error) {
	t, err := d.table(ctx, country)
	if err != nil {
		return nil, err
	}
	return append([]models.PostcodeEntry(nil), t.entries...), nil
}

// FindPostcode normalises suburb (trim, upper case, spaces to underscores)
// and returns its postcode. An unknown suburb is a LookupError.
func (d *PostcodeDirectory) FindPostcode(ctx context.Context, suburb string, country models.Country) (uint32, error) {
	t, err := d.table(ctx, country)
	if err != nil {
		return 0, err
	}
	postcode, ok := t.bySuburb[utils.NormalizeSuburb(suburb)]
	if !ok {
		metrics.PostcodeLookupsTotal.WithLabelValues("postcode", "miss").Inc()
		return 0, apperrors.NewLookupError(string(country), "suburb", suburb)
	}
	metrics.PostcodeLookupsTotal.WithLabelValues("postcode", "hit").Inc()
	return postcode, nil
}

// FindSuburb returns the first suburb listed under postcode.
func (d *PostcodeDirectory) FindSuburb(ctx context.Context, postcode uint32, country models.Country) (string, error) {
	t, err := d.table(ctx, country)
	if err != nil {
		return "", err
	}
	suburb, ok := t.byPostcode[postcode]
	if !ok {
		metrics.PostcodeLookupsTotal.WithLabelValues("suburb", "miss").Inc()
		return "", apperrors.NewLookupError(string(country), "postcode", strconv.FormatUint(uint64(postcode), 10))
	}
	metrics.PostcodeLookupsTotal.WithLabelValues("suburb", "hit").Inc()
	return suburb, nil
}

// Invalidate drops the cached table so the next lookup reads the
// repository again.
func (d *PostcodeDirectory) Invalidate(country models.Country) {
	d.mu.Lock()
	delete(d.tables, country)
	d.mu.Unlock()
}

func (d *PostcodeDirectory) Preload(ctx context.Context, countries ...models.Country) error {
	for _, country := range countries {
		if _, err := d.table(ctx, country); err != nil {
			return err
		}
	}
	return nil
}
