package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/services"
	"homeinsight-listings/internal/transformers"
)

type NormalizationHandler struct {
	addresses *transformers.AddressTransformer
	directory *services.PostcodeDirectory
	listings  *services.ListingService
	labels    models.LabelMapping
}

func NewNormalizationHandler(
	addresses *transformers.AddressTransformer,
	directory *services.PostcodeDirectory,
	listings *services.ListingService,
	labels models.LabelMapping,
) *NormalizationHandler {
	return &NormalizationHandler{
		addresses: addresses,
		directory: directory,
		listings:  listings,
		labels:    labels,
	}
}

// ParseAddress handles POST /api/addresses/parse.
func (h *NormalizationHandler) ParseAddress(c *gin.Context) {
	var req ParseAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.BadRequest(err))
		return
	}

	country, err := parseCountry(req.Country)
	if err != nil {
		c.Error(err)
		return
	}
	address, err := h.addresses.Parse(req.Address, country)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ParseAddressResponse{Address: address, Canonical: address.String()})
}

// ValidateAddress handles POST /api/addresses/validate: the components are
// normalised and the postcode is checked against the suburb.
func (h *NormalizationHandler) ValidateAddress(c *gin.Context) {
	var req models.AddressComponents
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.BadRequest(err))
		return
	}

	address, err := h.addresses.Build(c.Request.Context(), req, h.directory)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ParseAddressResponse{Address: address, Canonical: address.String()})
}

// ParseMarketInfo handles POST /api/market-info/parse. The mode defaults
// to strict, so text without record type words is rejected.
func (h *NormalizationHandler) ParseMarketInfo(c *gin.Context) {
	var req ParseMarketInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.BadRequest(err))
		return
	}

	mode, err := models.ParseErrorMode(req.Mode)
	if err != nil {
		c.Error(apperrors.BadRequest(err))
		return
	}
	info, err := transformers.ParseMarketInfo(req.Text, mode)
	if err != nil {
		c.Error(err)
		return
	}

	resp := ParseMarketInfoResponse{MarketInfo: info}
	if strings.TrimSpace(req.Date) != "" {
		date, err := transformers.ParseDate(req.Date)
		if err != nil {
			c.Error(err)
			return
		}
		resp.Date = &date
	}
	c.JSON(http.StatusOK, resp)
}

// ParsePropertyType handles POST /api/property-types/parse.
func (h *NormalizationHandler) ParsePropertyType(c *gin.Context) {
	var req ParsePropertyTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.BadRequest(err))
		return
	}

	propertyType, err := models.ParsePropertyType(req.Label, h.labels)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"property_type": propertyType,
		"name":          propertyType.String(),
	})
}

// NormalizeListings handles POST /api/listings/normalize. Listings that
// fail are reported in the result rather than failing the request.
func (h *NormalizationHandler) NormalizeListings(c *gin.Context) {
	var req NormalizeListingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.BadRequest(err))
		return
	}

	result, err := h.listings.NormalizeAll(c.Request.Context(), req.Listings)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListingURL handles GET /api/listing-url.
func (h *NormalizationHandler) ListingURL(c *gin.Context) {
	var query struct {
		State    string `form:"state" binding:"required"`
		Suburb   string `form:"suburb" binding:"required"`
		Postcode uint32 `form:"postcode" binding:"required"`
		Page     int    `form:"page"`
		Beds     int    `form:"beds"`
		Baths    int    `form:"baths"`
		Cars     int    `form:"cars"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(apperrors.BadRequest(err))
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}

	u, err := services.NewListingURL(c.Request.Context(), h.directory, services.ListingURL{
		State:    query.State,
		Suburb:   query.Suburb,
		Postcode: query.Postcode,
		Page:     query.Page,
		Beds:     query.Beds,
		Baths:    query.Baths,
		Cars:     query.Cars,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":       u.Format(),
		"next_page": u.NextPage().Format(),
	})
}

func parseCountry(raw string) (models.Country, error) {
	if strings.TrimSpace(raw) == "" {
		return models.CountryAustralia, nil
	}
	return models.ParseCountry(raw)
}
