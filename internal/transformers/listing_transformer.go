package transformers

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
)

// ListingTransformer turns one scraped listing into a PropertyInfo and its
// PriceRecords.
type ListingTransformer struct {
	addresses AddressParser
	country   models.Country
	labels    models.LabelMapping
}

func NewListingTransformer(addresses AddressParser, country models.Country, labels models.LabelMapping) *ListingTransformer {
	return &ListingTransformer{
		addresses: addresses,
		country:   country,
		labels:    labels,
	}
}

// Transform parses the address once and shares it between the property
// info and every price record.
func (t *ListingTransformer) Transform(raw models.RawListing) (models.PropertyInfo, []models.PriceRecord, error) {
	address, err := t.addresses.Parse(raw.GeneralInfo.Address, t.country)
	if err != nil {
		return models.PropertyInfo{}, nil, err
	}

	info, err := t.propertyInfo(address, raw.GeneralInfo)
	if err != nil {
		return models.PropertyInfo{}, nil, err
	}

	records, err := t.priceRecords(address, raw.PriceEntries())
	if err != nil {
		return models.PropertyInfo{}, nil, err
	}
	return info, records, nil
}

func (t *ListingTransformer) ToPropertyInfo(raw models.RawListing) (models.PropertyInfo, error) {
	address, err := t.addresses.Parse(raw.GeneralInfo.Address, t.country)
	if err != nil {
		return models.PropertyInfo{}, err
	}
	return t.propertyInfo(address, raw.GeneralInfo)
}

// ToPriceRecords returns the recent price first, then the history in order.
func (t *ListingTransformer) ToPriceRecords(raw models.RawListing) ([]models.PriceRecord, error) {
	address, err := t.addresses.Parse(raw.GeneralInfo.Address, t.country)
	if err != nil {
		return nil, err
	}
	return t.priceRecords(address, raw.PriceEntries())
}

func (t *ListingTransformer) propertyInfo(address models.Address, general models.RawPropertyInfo) (models.PropertyInfo, error) {
	beds, err := parseCount("beds", general.Beds)
	if err != nil {
		return models.PropertyInfo{}, err
	}
	baths, err := parseCount("baths", general.Baths)
	if err != nil {
		return models.PropertyInfo{}, err
	}
	cars, err := parseCount("cars", general.Cars)
	if err != nil {
		return models.PropertyInfo{}, err
	}

	propertyType, err := models.ParsePropertyType(general.PropertyType, t.labels)
	if err != nil {
		return models.PropertyInfo{}, err
	}

	return models.PropertyInfo{
		Address:      address,
		Beds:         beds,
		Baths:        baths,
		Cars:         cars,
		PropertyType: &propertyType,
	}, nil
}

func (t *ListingTransformer) priceRecords(address models.Address, entries []models.RawPriceRecord) ([]models.PriceRecord, error) {
	records := make([]models.PriceRecord, 0, len(entries))
	for i, entry := range entries {
		date, err := ParseDate(entry.Date)
		if err != nil {
			return nil, fmt.Errorf("price entry %d: %w", i, err)
		}
		info, err := ParseMarketInfo(entry.MarketInfo, models.ErrorModeLenient)
		if err != nil {
			return nil, fmt.Errorf("price entry %d: %w", i, err)
		}
		records = append(records, models.PriceRecord{
			Address:    address,
			Date:       date,
			RecordType: info.RecordType,
			Price:      info.Price,
		})
	}
	return records, nil
}

// parseCount reads a bed/bath/car count. Blank and "-" mean unknown.
func parseCount(field, text string) (*int, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" || cleaned == "-" {
		return nil, nil
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil || n < 0 {
		if err == nil {
			err = fmt.Errorf("negative count")
		}
		return nil, apperrors.NewParseError(field, text, cleaned, err)
	}
	return &n, nil
}
