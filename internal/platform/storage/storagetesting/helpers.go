package storagetesting

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	pgmodels "github.com/MichalMitros/pdsa-generator/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/pdsa-generator/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertRuns is a helper test function to insert runs.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.Run) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	toInsert := make([]pgmodels.Run, 0, len(runs))
	toInsert = append(toInsert, runs...)

	_, err := table.Run.INSERT(table.Run.AllColumns).MODELS(toInsert).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// GetRuns is a helper test function to get all runs.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.Run {
	t.Helper()

	runs := []pgmodels.Run{}
	err := table.Run.SELECT(table.Run.AllColumns).
		WHERE(table.Run.ID.IS_NOT_NULL()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// GetLatestRun is a helper test function to get latest run of target.
// Returns nil when target has no runs.
func GetLatestRun(t *testing.T, queryable qrm.Queryable, target string) *models.Run {
	t.Helper()

	var run pgmodels.Run
	err := table.Run.SELECT(table.Run.AllColumns).
		WHERE(table.Run.Target.EQ(pg.String(target))).
		ORDER_BY(table.Run.CreatedAt.DESC(), table.Run.ID.DESC()).
		LIMIT(1).
		Query(queryable, &run)

	if errors.Is(err, qrm.ErrNoRows) {
		return nil
	}
	if err != nil {
		t.Fatal("can't get latest run", err)
	}

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

// CleanupData is a helper test function to delete all runs.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.Run.DELETE().WHERE(table.Run.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete runs data", err)
	}
}
