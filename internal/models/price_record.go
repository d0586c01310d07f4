package models

// PriceRecord is one dated price observation for an address. Price and
// RecordType are independently optional.
type PriceRecord struct {
	Address    Address     `json:"address"`
	Date       Date        `json:"date"`
	RecordType *RecordType `json:"record_type"`
	Price      *uint64     `json:"price"`
}

// PriceRecordRow is the flat stored shape of a PriceRecord. Suburb,
// postcode, state and country are implied by the file the row lives in.
type PriceRecordRow struct {
	UnitNumber   string      `json:"unit_number"`
	StreetNumber string      `json:"street_number"`
	StreetName   string      `json:"street_name"`
	Date         *Date       `json:"date"`
	RecordType   *RecordType `json:"record_type"`
	Price        *uint64     `json:"price"`
}

// Row flattens r. A zero date is left empty.
func (r PriceRecord) Row() PriceRecordRow {
	row := PriceRecordRow{
		UnitNumber:   r.Address.UnitNumber,
		StreetNumber: r.Address.StreetNumber,
		StreetName:   r.Address.StreetName,
		RecordType:   r.RecordType,
		Price:        r.Price,
	}
	if !r.Date.IsZero() {
		date := r.Date
		row.Date = &date
	}
	return row
}

// ToRows flattens records, keeping order.
func ToRows(records []PriceRecord) []PriceRecordRow {
	rows := make([]PriceRecordRow, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return rows
}

// Expand completes a row with the address fields its file implies.
func (row PriceRecordRow) Expand(suburb string, postcode uint32, state string, country Country) PriceRecord {
	rec := PriceRecord{
		Address: Address{
			UnitNumber:   row.UnitNumber,
			StreetNumber: row.StreetNumber,
			StreetName:   row.StreetName,
			Suburb:       suburb,
			Postcode:     postcode,
			State:        state,
			Country:      country,
		},
		RecordType: row.RecordType,
		Price:      row.Price,
	}
	if row.Date != nil {
		rec.Date = *row.Date
	}
	return rec
}

// IsBlank reports whether every column of the row is empty.
func (row PriceRecordRow) IsBlank() bool {
	return row.UnitNumber == "" && row.StreetNumber == "" && row.StreetName == "" &&
		row.Date == nil && row.RecordType == nil && row.Price == nil
}

// Uint64 returns a pointer to v.
func Uint64(v uint64) *uint64 {
	return &v
}
