package cache

import (
	"fmt"
	"strings"
)

const keyPrefix = "listings"

// PostcodeTableKey is the hash holding suburb -> postcode for one country.
func PostcodeTableKey(country string) string {
	return fmt.Sprintf("%s:postcodes:%s", keyPrefix, strings.ToLower(strings.TrimSpace(country)))
}
