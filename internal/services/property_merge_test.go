package services

import (
	"testing"

	"homeinsight-listings/internal/models"
)

func TestMergePropertyInfo(t *testing.T) {
	a := models.Address{StreetNumber: "80", StreetName: "ROSEBERRY STREET",
		Suburb: "ASCOT_VALE", Postcode: 3032, State: "VIC", Country: models.CountryAustralia}
	b := a
	b.UnitNumber = "2"
	apartment := models.General(models.CategoryApartment)

	merged := MergePropertyInfo([]models.PropertyInfo{
		{Address: a, PropertyType: &apartment},
		{Address: b, Cars: models.Int(1)},
		{Address: a, Beds: models.Int(2), PropertyType: models.General(models.CategoryLand).Ptr()},
		{Address: a, Beds: models.Int(4), Baths: models.Int(1)},
	})

	if len(merged) != 2 {
		t.Fatalf("got %d rows, expected 2", len(merged))
	}
	first := merged[0]
	if first.Address != a || *first.Beds != 2 || *first.Baths != 1 || *first.PropertyType != apartment {
		t.Errorf("merged row == %+v", first)
	}
	if merged[1].Address != b || *merged[1].Cars != 1 || merged[1].Beds != nil {
		t.Errorf("second row == %+v", merged[1])
	}
}

func TestDedupPriceRecords(t *testing.T) {
	a := models.Address{StreetNumber: "80", StreetName: "ROSEBERRY STREET",
		Suburb: "ASCOT_VALE", Postcode: 3032, State: "VIC", Country: models.CountryAustralia}
	date := models.NewDate(2013, 6, 1)

	records := DedupPriceRecords([]models.PriceRecord{
		{Address: a, Date: date, RecordType: models.RecordTypeAuction.Ptr()},
		{Address: a, Date: date, Price: models.Uint64(330000)},
		{Address: a, Date: date, RecordType: models.RecordTypeAuction.Ptr()},
		{Address: a, Date: date, Price: models.Uint64(330000)},
		{Address: a, Date: date, RecordType: models.RecordTypeAuction.Ptr(), Price: models.Uint64(330000)},
	})
	if len(records) != 3 {
		t.Errorf("got %d records, expected 3", len(records))
	}
}
