package repositories

import (
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/utils"
	"homeinsight-listings/pkg/config"
)

// locationPath fills a path template with the normalised location, so
// "Ascot Vale" and "ASCOT_VALE" address the same file.
func locationPath(template string, loc models.Location) string {
	return config.FormatPath(template, string(loc.Country), utils.Upper(loc.State), utils.NormalizeSuburb(loc.Suburb))
}
