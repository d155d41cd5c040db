package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/MichalMitros/pdsa-generator/internal/generator"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/MichalMitros/pdsa-generator/pkg/v1/commander"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Loader --filename loader.go
//go:generate mockery --name Generator --filename generator.go
//go:generate mockery --name Emitter --filename emitter.go
//go:generate mockery --name Jobs --filename jobs.go
//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Notifier --filename notifier.go

// Loader loads product catalog from feed.
type Loader interface {
	Load(ctx context.Context, feedURL string) (*models.Catalog, error)
}

// Generator generates campaign data from catalog.
type Generator interface {
	Generate(ctx context.Context, catalog *models.Catalog) (*generator.Result, error)
}

// Emitter writes generated campaign data.
type Emitter interface {
	Emit(ctx context.Context, result *generator.Result) (*generator.Output, error)
}

// Job is generation job of one target.
type Job struct {
	FeedURL   string
	Loader    Loader
	Generator Generator
	Emitter   Emitter
}

// Jobs builds generation jobs of configured targets.
type Jobs interface {
	Job(target string) (*Job, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Storage is generation runs storage.
type Storage interface {
	// StartRun creates new run if there is no run for provided target running.
	StartRun(ctx context.Context, target string) (*models.Run, error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
}

// Notifier sends generation events.
type Notifier interface {
	SendGenerationFinished(ctx context.Context, event commander.GenerationFinished) error
}

// Option is custom configuration of Runner.
type Option func(r *Runner)

// Runner runs campaign generation of targets and records its history.
type Runner struct {
	storage  Storage
	jobs     Jobs
	notifier Notifier
	clock    Clock
	logger   *zerolog.Logger
}

// NewRunner returns new Runner.
func NewRunner(storage Storage, jobs Jobs, ops ...Option) *Runner {
	nop := zerolog.Nop()
	r := &Runner{
		storage: storage,
		jobs:    jobs,
		clock:   systemClock{},
		logger:  &nop,
	}

	for _, op := range ops {
		op(r)
	}

	return r
}

// Run generates campaign of target. Returned run holds statistics of generation,
// also when generation failed after the run was started.
func (r *Runner) Run(ctx context.Context, target string) (*models.Run, error) {
	// insert new run in storage.
	run, err := r.storage.StartRun(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("can't start generation: %w", err)
	}

	job, err := r.jobs.Job(target)
	if err != nil {
		return run, r.finishGeneration(ctx, run, fmt.Errorf("can't prepare target: %w", err))
	}

	// load catalog.
	catalog, err := job.Loader.Load(ctx, job.FeedURL)
	if err != nil {
		return run, r.finishGeneration(ctx, run, fmt.Errorf("can't load catalog: %w", err))
	}
	run.Products = lo.ToPtr(int32(len(catalog.Products)))
	run.FailedItems = lo.ToPtr(int32(catalog.FailedItems))

	// generate campaign.
	result, err := job.Generator.Generate(ctx, catalog)
	if err != nil {
		return run, r.finishGeneration(ctx, run, fmt.Errorf("can't generate campaign: %w", err))
	}
	run.Labels = lo.ToPtr(int32(result.Stats.Labels))
	run.AdGroups = lo.ToPtr(int32(result.Stats.AdGroups))
	run.Images = lo.ToPtr(int32(result.Stats.Images))
	run.SweptObjects = lo.ToPtr(int32(result.Stats.SweptObjects))

	// write output.
	out, err := job.Emitter.Emit(ctx, result)
	if err != nil {
		return run, r.finishGeneration(ctx, run, fmt.Errorf("can't write output: %w", err))
	}
	run.OutputPath = lo.ToPtr(out.CampaignPath)

	return run, r.finishGeneration(ctx, run, nil)
}

func (r *Runner) finishGeneration(ctx context.Context, run *models.Run, status error) error {
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = r.clock.Now()

	err := r.storage.FinishRun(ctx, run)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish generation: %w", err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed generation: %w (fail reason: %w)", err, status)
	}

	r.notify(ctx, run)

	return status
}

// notify sends generation finished event. Failed notification doesn't fail recorded run.
func (r *Runner) notify(ctx context.Context, run *models.Run) {
	if r.notifier == nil {
		return
	}

	event := commander.GenerationFinished{
		RunID:        run.ID,
		Target:       run.Target,
		Success:      lo.FromPtr(run.IsSuccess),
		Message:      lo.FromPtr(run.StatusMessage),
		Products:     lo.FromPtr(run.Products),
		AdGroups:     lo.FromPtr(run.AdGroups),
		Images:       lo.FromPtr(run.Images),
		SweptObjects: lo.FromPtr(run.SweptObjects),
		OutputPath:   lo.FromPtr(run.OutputPath),
		FinishedAt:   lo.FromPtr(run.FinishedAt),
	}

	if err := r.notifier.SendGenerationFinished(ctx, event); err != nil {
		r.logger.Error().
			Err(err).
			Str("target", run.Target).
			Msg("can't send generation finished event")
	}
}

// WithClock sets Runner's custom Clock.
func WithClock(c Clock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithNotifier sets Notifier of finished generations.
func WithNotifier(n Notifier) Option {
	return func(r *Runner) {
		r.notifier = n
	}
}

// WithLogger sets Runner's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}
