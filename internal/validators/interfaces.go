package validators

import (
	"context"

	"homeinsight-listings/internal/models"
)

// PropertyInfoValidator checks a decoded property info row for consistency.
type PropertyInfoValidator interface {
	Validate(ctx context.Context, info models.PropertyInfo) error
}

type LocationValidator interface {
	ValidateLocation(loc models.Location) error
}
