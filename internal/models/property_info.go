package models

// PropertyInfo is what is known about a property. Every attribute besides
// the address is optional, because each listing only carries some of them.
type PropertyInfo struct {
	Address          Address            `json:"address"`
	Beds             *int               `json:"beds"`
	Baths            *int               `json:"baths"`
	Cars             *int               `json:"cars"`
	PropertySizeM2   *float64           `json:"property_size_m2"`
	LandSizeM2       *float64           `json:"land_size_m2"`
	Condition        *PropertyCondition `json:"condition"`
	PropertyType     *PropertyType      `json:"property_type"`
	ConstructionDate *Date              `json:"construction_date"`
	Floors           *int               `json:"floors"`
}

// Union fills every nil field of p from other. The address of p is kept.
func (p PropertyInfo) Union(other PropertyInfo) PropertyInfo {
	return PropertyInfo{
		Address:          p.Address,
		Beds:             FirstNonNil(p.Beds, other.Beds),
		Baths:            FirstNonNil(p.Baths, other.Baths),
		Cars:             FirstNonNil(p.Cars, other.Cars),
		PropertySizeM2:   FirstNonNil(p.PropertySizeM2, other.PropertySizeM2),
		LandSizeM2:       FirstNonNil(p.LandSizeM2, other.LandSizeM2),
		Condition:        FirstNonNil(p.Condition, other.Condition),
		PropertyType:     UnionPropertyType(p.PropertyType, other.PropertyType),
		ConstructionDate: FirstNonNil(p.ConstructionDate, other.ConstructionDate),
		Floors:           FirstNonNil(p.Floors, other.Floors),
	}
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}
