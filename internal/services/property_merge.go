package services

import "homeinsight-listings/internal/models"

// MergePropertyInfo collapses rows that share an address. For each field the
// first non-null value wins, and groups keep the order in which their
// address first appeared.
func MergePropertyInfo(infos []models.PropertyInfo) []models.PropertyInfo {
	index := make(map[models.Address]int, len(infos))
	merged := make([]models.PropertyInfo, 0, len(infos))
	for _, info := range infos {
		if i, ok := index[info.Address]; ok {
			merged[i] = merged[i].Union(info)
			continue
		}
		index[info.Address] = len(merged)
		merged = append(merged, info)
	}
	return merged
}

type priceRecordKey struct {
	address    models.Address
	date       models.Date
	recordType string
	hasType    bool
	price      uint64
	hasPrice   bool
}

func keyOf(r models.PriceRecord) priceRecordKey {
	k := priceRecordKey{address: r.Address, date: r.Date}
	if r.RecordType != nil {
		k.recordType, k.hasType = string(*r.RecordType), true
	}
	if r.Price != nil {
		k.price, k.hasPrice = *r.Price, true
	}
	return k
}

// DedupPriceRecords drops exact repeats, keeping the first occurrence.
func DedupPriceRecords(records []models.PriceRecord) []models.PriceRecord {
	seen := make(map[priceRecordKey]bool, len(records))
	out := make([]models.PriceRecord, 0, len(records))
	for _, r := range records {
		k := keyOf(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}
