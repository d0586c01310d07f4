package repositories

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
	"homeinsight-listings/pkg/cache"
	"homeinsight-listings/pkg/logger"
)

// RedisPostcodeRepository keeps each country's table in one hash of
// suburb -> postcode.
type RedisPostcodeRepository struct {
	store cache.HashOperations
}

func NewRedisPostcodeRepository(store cache.HashOperations) *RedisPostcodeRepository {
	return &RedisPostcodeRepository{store: store}
}

// LoadPostcodes returns the table ordered by postcode then suburb, since a
// hash has no order of its own.
func (r *RedisPostcodeRepository) LoadPostcodes(ctx context.Context, country models.Country) ([]models.PostcodeEntry, error) {
	key := cache.PostcodeTableKey(string(country))
	fields, err := r.store.GetHash(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, apperrors.NewLookupError(string(country), "postcode table", key)
	}

	entries := make([]models.PostcodeEntry, 0, len(fields))
	for suburb, raw := range fields {
		postcode, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			logger.L().Errorf("invalid postcode %q for %s in %s", raw, suburb, key)
			return nil, fmt.Errorf("postcode table %s: invalid postcode %q for %s", key, raw, suburb)
		}
		entries = append(entries, models.PostcodeEntry{Postcode: uint32(postcode), Suburb: suburb})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Postcode != entries[j].Postcode {
			return entries[i].Postcode < entries[j].Postcode
		}
		return entries[i].Suburb < entries[j].Suburb
	})
	return entries, nil
}

// StorePostcodes replaces the country's hash. Repeated suburbs keep their
// first postcode.
func (r *RedisPostcodeRepository) StorePostcodes(ctx context.Context, country models.Country, entries []models.PostcodeEntry) error {
	fields := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, seen := fields[e.Suburb]; seen {
			continue
		}
		fields[e.Suburb] = strconv.FormatUint(uint64(e.Postcode), 10)
	}
	key := cache.PostcodeTableKey(string(country))
	if err := r.store.ReplaceHash(ctx, key, fields); err != nil {
		return err
	}
	logger.L().Printf("stored %d postcodes under %s", len(fields), key)
	return nil
}
