package services

import "homeinsight-listings/internal/models"

// Joined is one row of a full outer join on address. Left or Right is nil
// when that side had no row for the address.
type Joined[L, R any] struct {
	Address models.Address
	Left    *L
	Right   *R
}

// JoinOnAddress full outer joins two row sets on all seven address fields.
// Addresses compare by value, so two rows that both lack a unit number
// still match. Matched and left-only rows come first in left order, then
// right-only rows in right order.
func JoinOnAddress[L, R any](left []L, leftAddress func(L) models.Address, right []R, rightAddress func(R) models.Address) []Joined[L, R] {
	byAddress := make(map[models.Address][]int, len(right))
	for i := range right {
		key := rightAddress(right[i])
		byAddress[key] = append(byAddress[key], i)
	}

	matched := make([]bool, len(right))
	var out []Joined[L, R]
	for i := range left {
		l := &left[i]
		key := leftAddress(*l)
		indexes := byAddress[key]
		if len(indexes) == 0 {
			out = append(out, Joined[L, R]{Address: key, Left: l})
			continue
		}
		for _, j := range indexes {
			matched[j] = true
			out = append(out, Joined[L, R]{Address: key, Left: l, Right: &right[j]})
		}
	}
	for j := range right {
		if !matched[j] {
			out = append(out, Joined[L, R]{Address: rightAddress(right[j]), Right: &right[j]})
		}
	}
	return out
}

// JoinPropertiesAndPrices joins property info with price records.
func JoinPropertiesAndPrices(infos []models.PropertyInfo, records []models.PriceRecord) []Joined[models.PropertyInfo, models.PriceRecord] {
	return JoinOnAddress(
		infos, func(p models.PropertyInfo) models.Address { return p.Address },
		records, func(r models.PriceRecord) models.Address { return r.Address },
	)
}
