package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
)

func TestPriceRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	template := filepath.Join(t.TempDir(), "{country}", "{state}", "{suburb}.csv")
	repo := NewFilePriceRecordRepository(template, stubLookup{"ASCOT_VALE": 3032})
	loc := models.Location{Country: models.CountryAustralia, State: "vic", Suburb: "Ascot Vale"}

	address := models.Address{UnitNumber: "7", StreetNumber: "67", StreetName: "ROSEBERRY STREET",
		Suburb: "ASCOT_VALE", Postcode: 3032, State: "VIC", Country: models.CountryAustralia}
	noUnit := address
	noUnit.UnitNumber = ""

	records := []models.PriceRecord{
		{Address: address, Date: models.NewDate(2019, 3, 1), Price: models.Uint64(380000)},
		{Address: address, Date: models.NewDate(2013, 6, 1), RecordType: models.RecordTypeAuction.Ptr()},
		{Address: noUnit, Date: models.NewDate(2011, 8, 1), RecordType: models.RecordTypePrivateSale.Ptr(), Price: models.Uint64(1)},
	}
	if err := repo.Write(ctx, loc, records); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	path := filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(template))), "australia", "VIC", "ASCOT_VALE.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "unit_number,street_number,street_name,date,record_type,price" {
		t.Errorf("header == %q", lines[0])
	}
	if lines[2] != "7,67,ROSEBERRY STREET,2013-06-01,auction," {
		t.Errorf("row == %q", lines[2])
	}

	got, err := repo.Read(ctx, loc)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("read %d records, expected %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Address != records[i].Address || got[i].Date != records[i].Date {
			t.Errorf("record %d == %+v, expected %+v", i, got[i], records[i])
		}
		if (got[i].Price == nil) != (records[i].Price == nil) || (got[i].RecordType == nil) != (records[i].RecordType == nil) {
			t.Errorf("record %d optional fields differ: %+v", i, got[i])
		}
	}
}

func TestPriceRecordReadLenient(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "australia", "ACT", "DUNTROON.csv")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	csv := "unit_number,street_number,street_name,date,record_type,price\n" +
		",10,SMITH STREET,2020-01-01,sold,500\n" +
		",,,,,\n" +
		"G2,15,HIGH STREET,2020-02-01,By Negotiation,\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := NewFilePriceRecordRepository(filepath.Join(dir, "{country}", "{state}", "{suburb}.csv"), stubLookup{"DUNTROON": 2600})
	got, err := repo.Read(context.Background(), models.Location{Country: models.CountryAustralia, State: "ACT", Suburb: "DUNTROON"})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d records, expected the blank row skipped", len(got))
	}
	if got[0].RecordType != nil || got[0].Price == nil || *got[0].Price != 500 {
		t.Errorf("first record == %+v", got[0])
	}
	if got[1].RecordType == nil || *got[1].RecordType != models.RecordTypePrivateSale || got[1].Price != nil {
		t.Errorf("second record == %+v", got[1])
	}
	if got[1].Address.UnitNumber != "G2" || got[1].Address.Postcode != 2600 {
		t.Errorf("second address == %+v", got[1].Address)
	}
}

func TestPriceRecordReadFailures(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "{suburb}.csv")
	ctx := context.Background()

	repo := NewFilePriceRecordRepository(template, stubLookup{"DUNTROON": 2600})
	if _, err := repo.Read(ctx, models.Location{Country: models.CountryAustralia, State: "ACT", Suburb: "DUNTROON"}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file returned %v", err)
	}

	header := "unit_number,street_number,street_name,date,record_type,price\n"
	files := map[string]string{
		"BAD_DATE":  header + ",1,X STREET,March 2000,,\n",
		"BAD_PRICE": header + ",1,X STREET,2000-03-01,,$5\n",
		"NO_LOOKUP": header + ",1,X STREET,2000-03-01,,5\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name+".csv"), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	repo = NewFilePriceRecordRepository(template, stubLookup{"BAD_DATE": 1, "BAD_PRICE": 1})
	for _, suburb := range []string{"BAD_DATE", "BAD_PRICE"} {
		if _, err := repo.Read(ctx, models.Location{Country: models.CountryAustralia, State: "ACT", Suburb: suburb}); err == nil {
			t.Errorf("%s: expected an error", suburb)
		}
	}
	_, err := repo.Read(ctx, models.Location{Country: models.CountryAustralia, State: "ACT", Suburb: "NO_LOOKUP"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown suburb returned %v", err)
	}
}
