package models

// RawPropertyInfo is the general section of a scraped listing, as text.
type RawPropertyInfo struct {
	Address      string `json:"address"`
	Beds         string `json:"beds"`
	Baths        string `json:"baths"`
	Cars         string `json:"cars"`
	PropertyType string `json:"property_type"`
}

// RawPriceRecord is one "date / market info" pair from a listing's history.
type RawPriceRecord struct {
	Date       string `json:"date"`
	MarketInfo string `json:"market_info"`
}

// RawListing is one scraped advertisement.
type RawListing struct {
	GeneralInfo      RawPropertyInfo  `json:"general_info"`
	RecentPrice      RawPriceRecord   `json:"recent_price"`
	HistoricalPrices []RawPriceRecord `json:"historical_prices"`
}

// PriceEntries returns the recent price followed by the history.
func (l RawListing) PriceEntries() []RawPriceRecord {
	entries := make([]RawPriceRecord, 0, len(l.HistoricalPrices)+1)
	entries = append(entries, l.RecentPrice)
	return append(entries, l.HistoricalPrices...)
}
