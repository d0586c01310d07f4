package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/utils"
)

const listingSiteBaseURL = "https://www.oldlistings.com.au/"

// ListingURL addresses one page of search results on the listing site.
type ListingURL struct {
	State    string `json:"state"`
	Suburb   string `json:"suburb"`
	Postcode uint32 `json:"postcode"`
	Page     int    `json:"page"`
	Beds     int    `json:"beds"`
	Baths    int    `json:"baths"`
	Cars     int    `json:"cars"`
}

// NewListingURL checks that the postcode belongs to the suburb.
func NewListingURL(ctx context.Context, lookup models.PostcodeLookup, u ListingURL) (ListingURL, error) {
	if u.Page < 1 {
		return ListingURL{}, apperrors.NewValidationError("page", strconv.Itoa(u.Page), "pages start at 1", nil)
	}
	if !models.States[utils.Upper(u.State)] {
		return ListingURL{}, apperrors.NewValidationError("state", u.State, "not a recognised state code", nil)
	}
	expected, err := lookup.FindPostcode(ctx, u.Suburb, models.CountryAustralia)
	if err != nil {
		return ListingURL{}, err
	}
	if expected != u.Postcode {
		return ListingURL{}, apperrors.NewValidationError(
			"postcode",
			strconv.FormatUint(uint64(u.Postcode), 10),
			fmt.Sprintf("does not match suburb %s", u.Suburb),
			nil,
		)
	}
	return u, nil
}

func (u ListingURL) Format() string {
	suburb := strings.ReplaceAll(utils.Lower(utils.DisplaySuburb(u.Suburb)), " ", "+")
	return fmt.Sprintf("%sreal-estate/%s/%s/%d/buy/%d/:bed:%d:bedmax:%d:bath:%d:car:%d",
		listingSiteBaseURL, utils.Lower(strings.TrimSpace(u.State)), suburb, u.Postcode, u.Page, u.Beds, u.Beds, u.Baths, u.Cars)
}

func (u ListingURL) String() string {
	return u.Format()
}

func (u ListingURL) NextPage() ListingURL {
	return u.ToPage(u.Page + 1)
}

// ToPage moves to page, clamped to the first page.
func (u ListingURL) ToPage(page int) ListingURL {
	if page < 1 {
		page = 1
	}
	u.Page = page
	return u
}
