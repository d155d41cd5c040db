package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MichalMitros/pdsa-generator/internal/platform"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/MichalMitros/pdsa-generator/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/MichalMitros/pdsa-generator/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// Postgres is storage for generation runs.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// StartRun creates new unfinished run of target in database and returns it.
// It returns ErrAlreadyRunning if previous run is not finished yet.
func (p Postgres) StartRun(ctx context.Context, target string) (*models.Run, error) {
	var run *models.Run

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		lastRun, err := getLastRun(ctx, tx, target)
		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get last run from database: %w", err)
		}

		if lastRun != nil && lastRun.FinishedAt == nil && lastRun.Success == nil {
			return platform.ErrAlreadyRunning
		}

		var newRun pgmodels.Run
		err = table.Run.INSERT(table.Run.Target).
			MODEL(pgmodels.Run{Target: target}).
			RETURNING(table.Run.AllColumns).
			QueryContext(ctx, tx, &newRun)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run = FromDBRun(&newRun)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't add run: %w", err)
	}

	return run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	columnList := table.Run.MutableColumns.Except(table.Run.Target, table.Run.CreatedAt)

	result, err := table.Run.UPDATE(columnList).
		MODEL(toDBRun(run)).
		WHERE(table.Run.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	return nil
}

// LastRun returns latest run of target. It returns nil if target has no runs.
func (p Postgres) LastRun(ctx context.Context, target string) (*models.Run, error) {
	run, err := getLastRun(ctx, p.db, target)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't get last run: %w", err)
	}

	return FromDBRun(run), nil
}

func getLastRun(ctx context.Context, db qrm.DB, target string) (*pgmodels.Run, error) {
	var run pgmodels.Run
	err := table.Run.SELECT(table.Run.AllColumns).
		WHERE(table.Run.Target.EQ(pg.String(target))).
		ORDER_BY(table.Run.CreatedAt.DESC(), table.Run.ID.DESC()).
		LIMIT(1).
		QueryContext(ctx, db, &run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
