package services

import (
	"context"
	"errors"
	"io/fs"

	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/repositories"
	"homeinsight-listings/internal/utils"
	"homeinsight-listings/pkg/logger"
)

// IngestSummary reports what one ingest run wrote for a location.
type IngestSummary struct {
	RunID        string          `json:"run_id"`
	Location     models.Location `json:"location"`
	Listings     int             `json:"listings"`
	Skipped      int             `json:"skipped"`
	Outside      int             `json:"outside"`
	Properties   int             `json:"properties"`
	PriceRecords int             `json:"price_records"`
}

// IngestService normalises a file of scraped listings and merges the result
// into the suburb's property info and price record stores.
type IngestService struct {
	listings   repositories.RawListingRepository
	properties repositories.PropertyInfoRepository
	prices     repositories.PriceRecordRepository
	normalizer *ListingService

	validateStored bool
}

func NewIngestService(
	listings repositories.RawListingRepository,
	properties repositories.PropertyInfoRepository,
	prices repositories.PriceRecordRepository,
	normalizer *ListingService,
) *IngestService {
	return &IngestService{
		listings:   listings,
		properties: properties,
		prices:     prices,
		normalizer: normalizer,

		validateStored: true,
	}
}

// WithStoredValidation controls whether property info already on disk is
// validated before it is merged. It is on by default.
func (s *IngestService) WithStoredValidation(validate bool) *IngestService {
	s.validateStored = validate
	return s
}

// Ingest reads listings from path, or from the location's own listing file
// when path is empty. Stored rows come first when merging, so existing
// values win over new ones field by field.
func (s *IngestService) Ingest(ctx context.Context, loc models.Location, path string) (*IngestSummary, error) {
	var raw []models.RawListing
	var err error
	if path != "" {
		raw, err = s.listings.ReadPath(ctx, path)
	} else {
		raw, err = s.listings.Read(ctx, loc)
	}
	if err != nil {
		return nil, utils.WrapError(err, "read raw listings for %s", loc.Suburb)
	}

	result, err := s.normalizer.NormalizeAll(ctx, raw)
	if err != nil {
		return nil, err
	}

	existingInfo, err := s.properties.Read(ctx, loc, s.validateStored)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, utils.WrapError(err, "stored property info for %s", loc.Suburb)
	}
	existingPrices, err := s.prices.Read(ctx, loc)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	fresh, outside := withinLocation(loc, result.Properties)
	if outside > 0 {
		logger.L().Printf("run %s: dropping %d properties outside %s", result.RunID, outside, loc.Suburb)
	}
	freshPrices := make([]models.PriceRecord, 0, len(result.PriceRecords))
	for _, r := range result.PriceRecords {
		if inLocation(loc, r.Address) {
			freshPrices = append(freshPrices, r)
		}
	}

	infos := MergePropertyInfo(append(existingInfo, fresh...))
	records := DedupPriceRecords(append(existingPrices, freshPrices...))

	if err := s.properties.Write(ctx, loc, infos); err != nil {
		return nil, utils.WrapError(err, "write property info for %s", loc.Suburb)
	}
	if err := s.prices.Write(ctx, loc, records); err != nil {
		return nil, utils.WrapError(err, "write price records for %s", loc.Suburb)
	}

	summary := &IngestSummary{
		RunID:        result.RunID,
		Location:     loc,
		Listings:     result.Listings,
		Skipped:      len(result.Failures),
		Outside:      outside,
		Properties:   len(infos),
		PriceRecords: len(records),
	}
	logger.L().Printf("run %s: wrote %d properties and %d price records for %s/%s/%s",
		summary.RunID, summary.Properties, summary.PriceRecords, loc.Country, loc.State, loc.Suburb)
	return summary, nil
}

// inLocation reports whether the address belongs in the location's files,
// which only store the street part of each address.
func inLocation(loc models.Location, a models.Address) bool {
	return a.Suburb == utils.NormalizeSuburb(loc.Suburb) && a.State == utils.Upper(loc.State) && a.Country == loc.Country
}

func withinLocation(loc models.Location, infos []models.PropertyInfo) ([]models.PropertyInfo, int) {
	kept := make([]models.PropertyInfo, 0, len(infos))
	for _, info := range infos {
		if inLocation(loc, info.Address) {
			kept = append(kept, info)
		}
	}
	return kept, len(infos) - len(kept)
}
