package services

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/repositories"
	"homeinsight-listings/internal/transformers"
	"homeinsight-listings/internal/validators"
)

func TestIngest(t *testing.T) {
	ctx := context.Background()
	dir, _ := testDirectory(t)
	root := t.TempDir()

	listings := repositories.NewFileRawListingRepository(filepath.Join(root, "raw"))
	properties := repositories.NewFilePropertyInfoRepository(
		filepath.Join(root, "info", "{country}", "{state}", "{suburb}.json"),
		validators.NewPropertyInfoValidator(dir))
	prices := repositories.NewFilePriceRecordRepository(
		filepath.Join(root, "prices", "{country}", "{state}", "{suburb}.csv"), dir)

	assembler := transformers.NewListingTransformer(transformers.NewAddressTransformer(), models.CountryAustralia, models.LabelMappingObserved)
	svc := NewIngestService(listings, properties, prices, NewListingService(assembler, 2))

	loc := models.Location{Country: models.CountryAustralia, State: "VIC", Suburb: "Ascot Vale"}
	raw := append(testListings(), models.RawListing{
		GeneralInfo: models.RawPropertyInfo{Address: "3 Beach Pde, Stanmore, NSW 2048", PropertyType: "Land"},
		RecentPrice: models.RawPriceRecord{Date: "May 2020", MarketInfo: "$1"},
	})
	if err := listings.Write(ctx, loc, raw); err != nil {
		t.Fatal(err)
	}

	summary, err := svc.Ingest(ctx, loc, "")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if summary.Listings != 5 || summary.Skipped != 2 || summary.Outside != 1 {
		t.Errorf("summary == %+v", summary)
	}
	if summary.Properties != 1 || summary.PriceRecords != 3 {
		t.Errorf("summary == %+v", summary)
	}

	stored, err := properties.Read(ctx, loc, true)
	if err != nil {
		t.Fatalf("reading stored properties failed: %v", err)
	}
	if len(stored) != 1 || *stored[0].Beds != 3 {
		t.Errorf("stored properties == %+v", stored)
	}

	// A second run over the same listings adds nothing new.
	summary, err = svc.Ingest(ctx, loc, "")
	if err != nil {
		t.Fatalf("second Ingest failed: %v", err)
	}
	if summary.Properties != 1 || summary.PriceRecords != 3 {
		t.Errorf("second summary == %+v", summary)
	}

	records, err := prices.Read(ctx, loc)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 || records[0].Address.Postcode != 3032 {
		t.Errorf("stored price records == %+v", records)
	}
}

func TestIngestValidatesStoredRows(t *testing.T) {
	ctx := context.Background()
	dir, _ := testDirectory(t)
	root := t.TempDir()

	listings := repositories.NewFileRawListingRepository(filepath.Join(root, "raw"))
	properties := repositories.NewFilePropertyInfoRepository(
		filepath.Join(root, "info", "{country}", "{state}", "{suburb}.json"),
		validators.NewPropertyInfoValidator(dir))
	prices := repositories.NewFilePriceRecordRepository(
		filepath.Join(root, "prices", "{country}", "{state}", "{suburb}.csv"), dir)
	assembler := transformers.NewListingTransformer(transformers.NewAddressTransformer(), models.CountryAustralia, models.LabelMappingObserved)

	loc := models.Location{Country: models.CountryAustralia, State: "VIC", Suburb: "Ascot Vale"}
	if err := listings.Write(ctx, loc, testListings()); err != nil {
		t.Fatal(err)
	}
	stale := models.PropertyInfo{
		Address: models.Address{StreetNumber: "5", StreetName: "EPSOM ROAD", Suburb: "ASCOT_VALE",
			Postcode: 3000, State: "VIC", Country: models.CountryAustralia},
	}
	if err := properties.Write(ctx, loc, []models.PropertyInfo{stale}); err != nil {
		t.Fatal(err)
	}

	svc := NewIngestService(listings, properties, prices, NewListingService(assembler, 2))
	_, err := svc.Ingest(ctx, loc, "")
	var validationErr *apperrors.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "postcode" {
		t.Fatalf("Ingest over a stored row with a wrong postcode returned %v", err)
	}
	if _, err := prices.Read(ctx, loc); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("failed Ingest wrote price records: %v", err)
	}

	summary, err := svc.WithStoredValidation(false).Ingest(ctx, loc, "")
	if err != nil {
		t.Fatalf("Ingest without stored validation failed: %v", err)
	}
	if summary.Properties != 2 {
		t.Errorf("summary == %+v, expected the stored row kept alongside the new one", summary)
	}
}
