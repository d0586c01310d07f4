package transformers

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/utils"
)

var (
	// "6, 10 Smith St" is written by the site for unit 6 at number 10.
	leadingUnitComma = regexp.MustCompile(`^\s*([A-Za-z]*\d+[A-Za-z]?)\s*,\s*(\d)`)
	spacedSlash      = regexp.MustCompile(`\s*/\s*`)

	streetNumberPattern = regexp.MustCompile(`^(\d+[A-Z]?)(?:-\d+[A-Z]?)?$`)
	unitPrefixPattern   = regexp.MustCompile(`^(?:UNIT|U)(\d+[A-Z]?|[A-Z]\d+)$`)
	unitPattern         = regexp.MustCompile(`^[A-Z0-9]+$`)
	postcodePattern     = regexp.MustCompile(`^\d{3,4}$`)
)

// streetTypes expands the trailing street type abbreviation.
var streetTypes = map[string]string{
	"AV":   "AVENUE",
	"AVE":  "AVENUE",
	"BLVD": "BOULEVARD",
	"CCT":  "CIRCUIT",
	"CIR":  "CIRCLE",
	"CL":   "CLOSE",
	"CR":   "CRESCENT",
	"CRES": "CRESCENT",
	"CT":   "COURT",
	"DR":   "DRIVE",
	"ESP":  "ESPLANADE",
	"GR":   "GROVE",
	"HTS":  "HEIGHTS",
	"HWY":  "HIGHWAY",
	"LN":   "LANE",
	"PDE":  "PARADE",
	"PKWY": "PARKWAY",
	"PL":   "PLACE",
	"RD":   "ROAD",
	"SQ":   "SQUARE",
	"ST":   "STREET",
	"TCE":  "TERRACE",
	"TER":  "TERRACE",
}

type AddressTransformer struct{}

func NewAddressTransformer() *AddressTransformer {
	return &AddressTransformer{}
}

// Clean applies the listing-site specific rewrites, in order:
// keep only the text after the last '&', drop every '.', turn a leading
// "unit, number" into "unit/number", turn '_' into spaces, trim.
func (t *AddressTransformer) Clean(raw string) string {
	s := raw
	if i := strings.LastIndex(s, "&"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.ReplaceAll(s, ".", "")
	s = leadingUnitComma.ReplaceAllString(s, "$1/$2")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.TrimSpace(s)
}

// Parse reads "[unit-marker] number street, suburb, STATE postcode". The
// postcode is not checked against the suburb because both come from the
// same text.
func (t *AddressTransformer) Parse(raw string, country models.Country) (models.Address, error) {
	if country != models.CountryAustralia {
		return models.Address{}, apperrors.NewParseError("address", raw, "", fmt.Errorf("cannot parse address for country %q", country))
	}

	cleaned := t.Clean(raw)
	fail := func(format string, args ...interface{}) (models.Address, error) {
		return models.Address{}, apperrors.NewParseError("address", raw, cleaned, fmt.Errorf(format, args...))
	}

	text := utils.Upper(utils.CollapseSpaces(cleaned))
	var parts []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) < 2 {
		return fail("expected \"street, suburb, STATE postcode\"")
	}

	tail := strings.Fields(parts[len(parts)-1])
	if len(tail) < 2 {
		return fail("expected \"STATE postcode\" at the end, got %q", parts[len(parts)-1])
	}
	postcodeText, state := tail[len(tail)-1], tail[len(tail)-2]
	if !postcodePattern.MatchString(postcodeText) {
		return fail("invalid postcode %q", postcodeText)
	}
	if !models.States[state] {
		return fail("unknown state %q", state)
	}
	postcode, err := strconv.ParseUint(postcodeText, 10, 32)
	if err != nil {
		return fail("invalid postcode %q", postcodeText)
	}

	var suburb string
	var streetParts []string
	if len(tail) > 2 {
		// "street, SUBURB STATE postcode"
		suburb = strings.Join(tail[:len(tail)-2], " ")
		streetParts = parts[:len(parts)-1]
	} else {
		if len(parts) < 3 {
			return fail("missing suburb")
		}
		suburb = parts[len(parts)-2]
		streetParts = parts[:len(parts)-2]
	}

	unit, number, name, err := splitStreet(strings.Join(streetParts, " "))
	if err != nil {
		return fail("%v", err)
	}

	return models.Address{
		UnitNumber:   unit,
		StreetNumber: number,
		StreetName:   name,
		Suburb:       utils.NormalizeSuburb(suburb),
		Postcode:     uint32(postcode),
		State:        state,
		Country:      country,
	}, nil
}

// Build validates an address given as components against the directory.
func (t *AddressTransformer) Build(ctx context.Context, c models.AddressComponents, lookup models.PostcodeLookup) (models.Address, error) {
	return models.NewAddress(ctx, c, lookup)
}

// splitStreet separates "[U|UNIT] [unit/]number name..." into its parts.
func splitStreet(street string) (unit, number, name string, err error) {
	tokens := strings.Fields(spacedSlash.ReplaceAllString(street, "/"))
	if len(tokens) == 0 {
		return "", "", "", fmt.Errorf("missing street")
	}

	marker := false
	if tokens[0] == "U" || tokens[0] == "UNIT" {
		marker = true
		tokens = tokens[1:]
		if len(tokens) == 0 {
			return "", "", "", fmt.Errorf("unit marker without a unit number")
		}
	}

	first := tokens[0]
	switch {
	case strings.Contains(first, "/"):
		i := strings.LastIndex(first, "/")
		unit = stripUnitPrefix(first[:i])
		if rest := first[i+1:]; rest == "" {
			tokens = tokens[1:]
		} else {
			tokens[0] = rest
		}
	case marker:
		unit = first
		tokens = tokens[1:]
	default:
		m := unitPrefixPattern.FindStringSubmatch(first)
		if m != nil && len(tokens) > 1 && streetNumberPattern.MatchString(tokens[1]) {
			unit = m[1]
			tokens = tokens[1:]
		}
	}

	if unit != "" && !unitPattern.MatchString(unit) {
		return "", "", "", fmt.Errorf("invalid unit number %q", unit)
	}
	if len(tokens) == 0 {
		return "", "", "", fmt.Errorf("missing street number")
	}
	m := streetNumberPattern.FindStringSubmatch(tokens[0])
	if m == nil {
		return "", "", "", fmt.Errorf("invalid street number %q", tokens[0])
	}
	number = m[1]

	words := tokens[1:]
	if len(words) == 0 {
		return "", "", "", fmt.Errorf("missing street name")
	}
	if len(words) > 1 {
		if full, ok := streetTypes[words[len(words)-1]]; ok {
			words = append(words[:len(words)-1:len(words)-1], full)
		}
	}
	return unit, number, strings.Join(words, " "), nil
}

func stripUnitPrefix(unit string) string {
	if m := unitPrefixPattern.FindStringSubmatch(unit); m != nil {
		return m[1]
	}
	return unit
}
