package transformers

import (
	"homeinsight-listings/internal/models"
)

type AddressParser interface {
	Parse(raw string, country models.Country) (models.Address, error)
}

type ListingAssembler interface {
	Transform(raw models.RawListing) (models.PropertyInfo, []models.PriceRecord, error)
}
