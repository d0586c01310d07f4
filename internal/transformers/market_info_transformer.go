package transformers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/utils"
)

const monthYearLayout = "January 2006"

// MarketInfo is what one marketing string says about a sale. Either field
// may be nil.
type MarketInfo struct {
	Price      *uint64            `json:"price"`
	RecordType *models.RecordType `json:"record_type"`
}

// ParseMarketInfo extracts the price and the record type independently.
func ParseMarketInfo(text string, mode models.ErrorMode) (MarketInfo, error) {
	recordType, err := ParseRecordType(text, mode)
	if err != nil {
		return MarketInfo{}, err
	}
	return MarketInfo{Price: ParsePrice(text), RecordType: recordType}, nil
}

// ParsePrice reads "$415,000", "$350 Week" or "$480,000 - $520,000 Auction".
// A range yields its midpoint, truncated. Text without a leading amount
// yields nil.
func ParsePrice(text string) *uint64 {
	first, rest, ok := cutAmount(text)
	if !ok {
		return nil
	}

	if isSingleTail(rest) {
		value, ok := amountValue(first)
		if !ok {
			return nil
		}
		return &value
	}

	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	rest, ok = strings.CutPrefix(rest, "-")
	if !ok {
		return nil
	}
	second, _, ok := cutAmount(strings.TrimLeftFunc(rest, unicode.IsSpace))
	if !ok {
		return nil
	}

	lower, ok := amountValue(first)
	if !ok {
		return nil
	}
	upper, ok := amountValue(second)
	if !ok {
		return nil
	}
	midpoint := uint64(float64(lower+upper) * 0.5)
	return &midpoint
}

// cutAmount splits "$1,234 rest" into "1,234" and " rest".
func cutAmount(text string) (amount, rest string, ok bool) {
	body, found := strings.CutPrefix(text, "$")
	if !found {
		return "", text, false
	}
	end := strings.IndexFunc(body, func(r rune) bool {
		return !(r == ',' || r == '.' || (r >= '0' && r <= '9'))
	})
	if end < 0 {
		end = len(body)
	}
	if end == 0 {
		return "", text, false
	}
	return body[:end], body[end:], true
}

// isSingleTail reports whether what follows a first amount makes it a single
// price: nothing at all, or a space followed by anything other than a dash.
func isSingleTail(rest string) bool {
	if rest == "" {
		return true
	}
	r, size := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(r) || len(rest) == size {
		return false
	}
	next, _ := utf8.DecodeRuneInString(rest[size:])
	return next != '-'
}

func amountValue(amount string) (uint64, bool) {
	value, err := strconv.ParseUint(strings.ReplaceAll(amount, ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ParseRecordType skips the leading run of currency, digits, separators,
// dashes and spaces, takes the words that follow and classifies them. In
// lenient mode unrecognised or missing words yield nil.
func ParseRecordType(text string, mode models.ErrorMode) (*models.RecordType, error) {
	label := recordTypeLabel(text)
	if strings.TrimSpace(label) == "" {
		switch mode {
		case models.ErrorModeLenient:
			return nil, nil
		case models.ErrorModeCoerce:
			return nil, apperrors.ErrCoerceNotImplemented
		default:
			return nil, apperrors.NewParseError("record_type", text, label, fmt.Errorf("no record type words found"))
		}
	}

	recordType, err := models.ParseRecordType(label, mode)
	if err != nil {
		var parseErr *apperrors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Input = text
			parseErr.Cleaned = utils.NormalizeLabel(label)
		}
		return nil, err
	}
	return recordType, nil
}

func recordTypeLabel(text string) string {
	start := strings.IndexFunc(text, func(r rune) bool {
		return !(r == '$' || r == ',' || r == '.' || r == '-' || (r >= '0' && r <= '9') || unicode.IsSpace(r))
	})
	if start < 0 {
		return ""
	}
	rest := text[start:]
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || unicode.IsSpace(r))
	})
	if end < 0 {
		end = len(rest)
	}
	return rest[:end]
}

// ParseDate reads a "March 2000" style month and year. The day is always 1.
func ParseDate(text string) (models.Date, error) {
	cleaned := utils.CollapseSpaces(text)
	t, err := time.Parse(monthYearLayout, cleaned)
	if err != nil {
		return models.Date{}, apperrors.NewParseError("date", text, cleaned, err)
	}
	return models.NewDate(t.Year(), t.Month(), 1), nil
}
