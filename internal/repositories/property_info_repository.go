package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/utils"
	"homeinsight-listings/internal/validators"
	"homeinsight-listings/pkg/logger"
)

type filePropertyInfoRepository struct {
	template  string
	validator validators.PropertyInfoValidator
}

// NewFilePropertyInfoRepository stores one JSON array per suburb. validator
// runs on every row when Read is asked for full validation.
func NewFilePropertyInfoRepository(template string, validator validators.PropertyInfoValidator) PropertyInfoRepository {
	return &filePropertyInfoRepository{template: template, validator: validator}
}

func (r *filePropertyInfoRepository) Read(ctx context.Context, loc models.Location, validate bool) ([]models.PropertyInfo, error) {
	path := locationPath(r.template, loc)
	data, err := utils.ReadFile(path, "read_properties_info")
	if err != nil {
		return nil, fmt.Errorf("properties info %s: %w", path, err)
	}

	var infos []models.PropertyInfo
	if err := json.Unmarshal(data, &infos); err != nil {
		logger.L().Errorf("failed to decode properties info %s: %v", path, err)
		return nil, fmt.Errorf("properties info %s: %w", path, err)
	}

	if validate && r.validator != nil {
		for i, info := range infos {
			if err := r.validator.Validate(ctx, info); err != nil {
				return nil, fmt.Errorf("properties info %s: row %d: %w", path, i, err)
			}
		}
		logger.L().Debugf("validated %d properties from %s", len(infos), path)
	}
	return infos, nil
}

func (r *filePropertyInfoRepository) Write(ctx context.Context, loc models.Location, infos []models.PropertyInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if infos == nil {
		infos = []models.PropertyInfo{}
	}
	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return err
	}
	path := locationPath(r.template, loc)
	if err := utils.WriteFile(path, "write_properties_info", append(data, '\n')); err != nil {
		logger.L().Errorf("failed to write properties info %s: %v", path, err)
		return fmt.Errorf("properties info %s: %w", path, err)
	}
	return nil
}
