package repositories

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"homeinsight-listings/internal/models"
)

func TestRawListingRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileRawListingRepository(dir)
	loc := models.Location{Country: models.CountryAustralia, State: "VIC", Suburb: "Ascot Vale"}

	listings := []models.RawListing{
		{
			GeneralInfo: models.RawPropertyInfo{Address: "7/67 ROSEBERRY STREET, ASCOT VALE, VIC 3032", Beds: "1", PropertyType: "Unit/apmt"},
			RecentPrice: models.RawPriceRecord{Date: "March 2019", MarketInfo: "$380,000"},
			HistoricalPrices: []models.RawPriceRecord{
				{Date: "June 2013", MarketInfo: "Auction"},
			},
		},
		{
			GeneralInfo: models.RawPropertyInfo{Address: "80 ROSEBERRY STREET, ASCOT VALE, VIC 3032"},
			RecentPrice: models.RawPriceRecord{Date: "May 2020", MarketInfo: "Contact"},
		},
	}
	if err := repo.Write(ctx, loc, listings); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "australia", "VIC", "ASCOT_VALE.jsonl")); err != nil {
		t.Fatalf("expected listing file: %v", err)
	}

	got, err := repo.Read(ctx, loc)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reflect.DeepEqual(got[0], listings[0]) || got[1].GeneralInfo != listings[1].GeneralInfo {
		t.Errorf("Read == %+v, expected %+v", got, listings)
	}
}

func TestRawListingReadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.jsonl")
	body := `{"general_info": {"address": "1 X St, Y, VIC 3000"}, "recent_price": {"date": "May 2020", "market_info": "$1"}}

{"general_info": {"address": "2 X St, Y, VIC 3000"}, "recent_price": {"date": "May 2020", "market_info": "$2"}}
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := NewFileRawListingRepository("")
	got, err := repo.ReadPath(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadPath failed: %v", err)
	}
	if len(got) != 2 || got[1].RecentPrice.MarketInfo != "$2" {
		t.Errorf("ReadPath == %+v", got)
	}

	if err := os.WriteFile(path, []byte("{not json}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.ReadPath(context.Background(), path); err == nil {
		t.Error("expected a decode error")
	}
}
