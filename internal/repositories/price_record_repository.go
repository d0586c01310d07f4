package repositories

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/utils"
	"homeinsight-listings/pkg/logger"
)

var priceRecordColumns = []string{"unit_number", "street_number", "street_name", "date", "record_type", "price"}

type filePriceRecordRepository struct {
	template string
	lookup   models.PostcodeLookup
}

// NewFilePriceRecordRepository stores one CSV per suburb. The rows carry
// only the street part of the address; lookup supplies the postcode when
// they are read back.
func NewFilePriceRecordRepository(template string, lookup models.PostcodeLookup) PriceRecordRepository {
	return &filePriceRecordRepository{template: template, lookup: lookup}
}

func (r *filePriceRecordRepository) Read(ctx context.Context, loc models.Location) ([]models.PriceRecord, error) {
	path := locationPath(r.template, loc)
	data, err := utils.ReadFile(path, "read_price_records")
	if err != nil {
		return nil, fmt.Errorf("price records %s: %w", path, err)
	}
	rows, err := decodePriceRecordRows(data)
	if err != nil {
		logger.L().Errorf("failed to decode price records %s: %v", path, err)
		return nil, fmt.Errorf("price records %s: %w", path, err)
	}

	suburb := utils.NormalizeSuburb(loc.Suburb)
	postcode, err := r.lookup.FindPostcode(ctx, suburb, loc.Country)
	if err != nil {
		return nil, err
	}

	records := make([]models.PriceRecord, len(rows))
	for i, row := range rows {
		records[i] = row.Expand(suburb, postcode, utils.Upper(loc.State), loc.Country)
	}
	return records, nil
}

func (r *filePriceRecordRepository) Write(ctx context.Context, loc models.Location, records []models.PriceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodePriceRecordRows(models.ToRows(records))
	if err != nil {
		return err
	}
	path := locationPath(r.template, loc)
	if err := utils.WriteFile(path, "write_price_records", data); err != nil {
		logger.L().Errorf("failed to write price records %s: %v", path, err)
		return fmt.Errorf("price records %s: %w", path, err)
	}
	logger.L().Debugf("wrote %d price records to %s", len(records), path)
	return nil
}

// decodePriceRecordRows skips fully blank rows. Record types the taxonomy
// does not know are read as null.
func decodePriceRecordRows(data []byte) ([]models.PriceRecordRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("missing header: %w", err)
	}
	columns, err := indexColumns(header, priceRecordColumns...)
	if err != nil {
		return nil, err
	}

	var rows []models.PriceRecordRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		field := func(name string) string {
			return strings.TrimSpace(record[columns[name]])
		}

		row := models.PriceRecordRow{
			UnitNumber:   field("unit_number"),
			StreetNumber: field("street_number"),
			StreetName:   field("street_name"),
		}
		if raw := field("date"); raw != "" {
			date, err := models.ParseISODate(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			row.Date = &date
		}
		if raw := field("record_type"); raw != "" {
			row.RecordType, _ = models.ParseRecordType(raw, models.ErrorModeLenient)
		}
		if raw := field("price"); raw != "" {
			price, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid price %q", line, raw)
			}
			row.Price = &price
		}
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func encodePriceRecordRows(rows []models.PriceRecordRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(priceRecordColumns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		var date, recordType, price string
		if row.Date != nil {
			date = row.Date.String()
		}
		if row.RecordType != nil {
			recordType = row.RecordType.String()
		}
		if row.Price != nil {
			price = strconv.FormatUint(*row.Price, 10)
		}
		if err := writer.Write([]string{row.UnitNumber, row.StreetNumber, row.StreetName, date, recordType, price}); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	return buf.Bytes(), writer.Error()
}
