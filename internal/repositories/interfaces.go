package repositories

import (
	"context"

	"homeinsight-listings/internal/models"
)

// PostcodeRepository is the backing resource of the postcode directory.
type PostcodeRepository interface {
	LoadPostcodes(ctx context.Context, country models.Country) ([]models.PostcodeEntry, error)
}

// PostcodeWriter replaces a country's table. The Redis and in-memory
// repositories implement it; the CSV file is maintained by hand.
type PostcodeWriter interface {
	StorePostcodes(ctx context.Context, country models.Country, entries []models.PostcodeEntry) error
}

type PriceRecordRepository interface {
	Read(ctx context.Context, loc models.Location) ([]models.PriceRecord, error)
	Write(ctx context.Context, loc models.Location, records []models.PriceRecord) error
}

type PropertyInfoRepository interface {
	Read(ctx context.Context, loc models.Location, validate bool) ([]models.PropertyInfo, error)
	Write(ctx context.Context, loc models.Location, infos []models.PropertyInfo) error
}

type RawListingRepository interface {
	Read(ctx context.Context, loc models.Location) ([]models.RawListing, error)
	ReadPath(ctx context.Context, path string) ([]models.RawListing, error)
	Write(ctx context.Context, loc models.Location, listings []models.RawListing) error
}
