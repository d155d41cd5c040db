package storage

import (
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"

	pgmodels "github.com/MichalMitros/pdsa-generator/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

func toDBRun(run *models.Run) *pgmodels.Run {
	return &pgmodels.Run{
		ID:            int32(run.ID),
		Target:        run.Target,
		CreatedAt:     run.CreatedAt,
		FinishedAt:    run.FinishedAt,
		Success:       run.IsSuccess,
		StatusMessage: run.StatusMessage,
		Products:      run.Products,
		FailedItems:   run.FailedItems,
		Labels:        run.Labels,
		AdGroups:      run.AdGroups,
		Images:        run.Images,
		SweptObjects:  run.SweptObjects,
		OutputPath:    run.OutputPath,
	}
}

// FromDBRun converts postgres run model into models.Run.
func FromDBRun(run *pgmodels.Run) *models.Run {
	return &models.Run{
		ID:            int(run.ID),
		Target:        run.Target,
		CreatedAt:     run.CreatedAt,
		FinishedAt:    run.FinishedAt,
		IsSuccess:     run.Success,
		StatusMessage: run.StatusMessage,
		Products:      run.Products,
		FailedItems:   run.FailedItems,
		Labels:        run.Labels,
		AdGroups:      run.AdGroups,
		Images:        run.Images,
		SweptObjects:  run.SweptObjects,
		OutputPath:    run.OutputPath,
	}
}
