package handlers

import (
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/transformers"
)

type ParseAddressRequest struct {
	Address string `json:"address" binding:"required"`
	Country string `json:"country"`
}

type ParseAddressResponse struct {
	Address   models.Address `json:"address"`
	Canonical string         `json:"canonical"`
}

type ParseMarketInfoRequest struct {
	Text string `json:"text" binding:"required"`
	Date string `json:"date"`
	Mode string `json:"mode"`
}

type ParseMarketInfoResponse struct {
	transformers.MarketInfo
	Date *models.Date `json:"date,omitempty"`
}

type ParsePropertyTypeRequest struct {
	Label string `json:"label" binding:"required"`
}

type NormalizeListingsRequest struct {
	Listings []models.RawListing `json:"listings" binding:"required"`
}

type PostcodeResponse struct {
	Country  models.Country `json:"country"`
	Suburb   string         `json:"suburb"`
	Postcode uint32         `json:"postcode"`
}
