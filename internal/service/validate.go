package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"arkiv/internal/domain"
	"arkiv/internal/models"
	"arkiv/internal/repository/sqlite"
)

// asValidationError converts an ozzo validation result into the domain
// error shape: a short message plus per-field detail lines.
func asValidationError(err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		fields := make([]string, 0, len(errs))
		for field, ferr := range errs {
			fields = append(fields, fmt.Sprintf("%s: %v", field, ferr))
		}
		sort.Strings(fields)
		return &domain.ValidationError{
			Message: "validation failed: " + strings.Join(fields, "; "),
			Fields:  fields,
		}
	}
	return &domain.ValidationError{Message: err.Error()}
}

func validCategory(value any) error {
	c, _ := value.(models.Category)
	for _, v := range models.Categories {
		if v == c {
			return nil
		}
	}
	return errors.New("must be a valid category")
}

func validFolderType(value any) error {
	ft, _ := value.(models.FolderType)
	for _, v := range models.FolderTypes {
		if v == ft {
			return nil
		}
	}
	return errors.New("must be a valid folder type")
}

// storageStructure reads the physical capacity grid from settings, falling
// back to defaults for missing or malformed values.
func storageStructure(ctx context.Context, settings *sqlite.SettingsRepository) (*models.StorageStructure, error) {
	all, err := settings.All(ctx)
	if err != nil {
		return nil, err
	}

	get := func(key string, def int) int {
		if v, ok := all[key]; ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
		return def
	}

	return &models.StorageStructure{
		CellUnits:    get(models.SettingCellUnits, 10),
		CellFaces:    get(models.SettingCellFaces, 2),
		CellSections: get(models.SettingCellSections, 6),
		CellShelves:  get(models.SettingCellShelves, 5),
		StandCount:   get(models.SettingStandCount, 20),
		StandShelves: get(models.SettingStandShelves, 4),
	}, nil
}
