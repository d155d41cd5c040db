package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/MichalMitros/pdsa-generator/internal/generator"
	"github.com/MichalMitros/pdsa-generator/internal/platform"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models/modelstesting"
	"github.com/MichalMitros/pdsa-generator/internal/runner"
	"github.com/MichalMitros/pdsa-generator/internal/runner/mocks"
	"github.com/MichalMitros/pdsa-generator/pkg/v1/commander"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var (
	target    = faker.Word()
	feedURL   = "https://example.com/feed.xml"
	createdAt = time.Date(2020, time.April, 1, 1, 1, 1, 0, time.UTC)
	now       = time.Date(2022, time.April, 1, 1, 1, 1, 0, time.UTC)
	catalog   = &models.Catalog{
		Products:    []models.Product{modelstesting.FakeProduct(), modelstesting.FakeProduct()},
		FailedItems: 1,
	}
	result = &generator.Result{
		Stats: generator.Stats{Products: 2, Labels: 3, AdGroups: 3, Images: 6, SweptObjects: 1},
	}
	runID                          = 42
	errShouldContainAssertErrorMsg = "should return error containing assert.AnError"
)

func startedRun() *models.Run {
	return &models.Run{
		ID:        runID,
		Target:    target,
		CreatedAt: createdAt,
	}
}

type testJob struct {
	loader    *mocks.Loader
	generator *mocks.Generator
	emitter   *mocks.Emitter
}

func newTestJob(t *testing.T, jobs *mocks.Jobs) testJob {
	j := testJob{
		loader:    mocks.NewLoader(t),
		generator: mocks.NewGenerator(t),
		emitter:   mocks.NewEmitter(t),
	}
	jobs.On("Job", target).Return(&runner.Job{
		FeedURL:   feedURL,
		Loader:    j.loader,
		Generator: j.generator,
		Emitter:   j.emitter,
	}, nil)

	return j
}

func TestUnitRun(t *testing.T) {
	wantRun := &models.Run{
		ID:           runID,
		Target:       target,
		CreatedAt:    createdAt,
		FinishedAt:   &now,
		IsSuccess:    lo.ToPtr(true),
		Products:     lo.ToPtr(int32(2)),
		FailedItems:  lo.ToPtr(int32(1)),
		Labels:       lo.ToPtr(int32(3)),
		AdGroups:     lo.ToPtr(int32(3)),
		Images:       lo.ToPtr(int32(6)),
		SweptObjects: lo.ToPtr(int32(1)),
		OutputPath:   lo.ToPtr("output/campaign.csv"),
	}
	wantEvent := commander.GenerationFinished{
		RunID:        runID,
		Target:       target,
		Success:      true,
		Products:     2,
		AdGroups:     3,
		Images:       6,
		SweptObjects: 1,
		OutputPath:   "output/campaign.csv",
		FinishedAt:   now,
	}

	storage := mocks.NewStorage(t)
	jobs := mocks.NewJobs(t)
	notifier := mocks.NewNotifier(t)
	job := newTestJob(t, jobs)

	mockStorageStartRun(storage, startedRun(), nil)
	job.loader.On("Load", mock.Anything, feedURL).Return(catalog, nil)
	job.generator.On("Generate", mock.Anything, catalog).Return(result, nil)
	job.emitter.On("Emit", mock.Anything, result).Return(&generator.Output{CampaignPath: "output/campaign.csv"}, nil)
	mockStorageFinishRun(storage, wantRun, nil)
	notifier.On("SendGenerationFinished", mock.Anything, wantEvent).Return(nil)

	run, err := runner.NewRunner(
		storage,
		jobs,
		runner.WithClock(fakeClock{now: &now}),
		runner.WithNotifier(notifier),
	).Run(context.TODO(), target)

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, wantRun, run, "should return finished run")
}

func TestUnitRunErrors(t *testing.T) {
	t.Run("start run error", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		jobs := mocks.NewJobs(t)

		mockStorageStartRun(storage, nil, platform.ErrAlreadyRunning)

		_, err := runner.NewRunner(storage, jobs).Run(context.TODO(), target)

		require.ErrorContains(t, err, "can't start generation", "should return error about failed generation start")
		require.ErrorIs(t, err, platform.ErrAlreadyRunning, "should return already running error")
	})

	t.Run("unknown target", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		jobs := mocks.NewJobs(t)

		mockStorageStartRun(storage, startedRun(), nil)
		jobs.On("Job", target).Return(nil, assert.AnError)
		mockStorageFinishRun(storage, &models.Run{
			ID:            runID,
			Target:        target,
			CreatedAt:     createdAt,
			FinishedAt:    &now,
			IsSuccess:     lo.ToPtr(false),
			StatusMessage: lo.ToPtr("can't prepare target: assert.AnError general error for testing"),
		}, nil)

		_, err := runner.NewRunner(storage, jobs, runner.WithClock(fakeClock{now: &now})).Run(context.TODO(), target)

		require.ErrorContains(t, err, "can't prepare target", "should return target error")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("load error", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		jobs := mocks.NewJobs(t)
		notifier := mocks.NewNotifier(t)
		job := newTestJob(t, jobs)

		mockStorageStartRun(storage, startedRun(), nil)
		job.loader.On("Load", mock.Anything, feedURL).Return(nil, assert.AnError)
		mockStorageFinishRun(storage, &models.Run{
			ID:            runID,
			Target:        target,
			CreatedAt:     createdAt,
			FinishedAt:    &now,
			IsSuccess:     lo.ToPtr(false),
			StatusMessage: lo.ToPtr("can't load catalog: assert.AnError general error for testing"),
		}, nil)
		notifier.On("SendGenerationFinished", mock.Anything, commander.GenerationFinished{
			RunID:      runID,
			Target:     target,
			Message:    "can't load catalog: assert.AnError general error for testing",
			FinishedAt: now,
		}).Return(nil)

		_, err := runner.NewRunner(
			storage,
			jobs,
			runner.WithClock(fakeClock{now: &now}),
			runner.WithNotifier(notifier),
		).Run(context.TODO(), target)

		require.ErrorContains(t, err, "can't load catalog", "should return error about failed loading")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("generate error", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		jobs := mocks.NewJobs(t)
		job := newTestJob(t, jobs)

		mockStorageStartRun(storage, startedRun(), nil)
		job.loader.On("Load", mock.Anything, feedURL).Return(catalog, nil)
		job.generator.On("Generate", mock.Anything, catalog).Return(nil, assert.AnError)
		mockStorageFinishRun(storage, &models.Run{
			ID:            runID,
			Target:        target,
			CreatedAt:     createdAt,
			FinishedAt:    &now,
			IsSuccess:     lo.ToPtr(false),
			StatusMessage: lo.ToPtr("can't generate campaign: assert.AnError general error for testing"),
			Products:      lo.ToPtr(int32(2)),
			FailedItems:   lo.ToPtr(int32(1)),
		}, nil)

		_, err := runner.NewRunner(storage, jobs, runner.WithClock(fakeClock{now: &now})).Run(context.TODO(), target)

		require.ErrorContains(t, err, "can't generate campaign", "should return error about failed generation")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("finish run error", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		jobs := mocks.NewJobs(t)
		job := newTestJob(t, jobs)

		mockStorageStartRun(storage, startedRun(), nil)
		job.loader.On("Load", mock.Anything, feedURL).Return(catalog, nil)
		job.generator.On("Generate", mock.Anything, catalog).Return(result, nil)
		job.emitter.On("Emit", mock.Anything, result).Return(nil, assert.AnError)
		storage.On("FinishRun", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := runner.NewRunner(storage, jobs, runner.WithClock(fakeClock{now: &now})).Run(context.TODO(), target)

		require.ErrorContains(t, err, "can't finish failed generation", "should return error about failed run finishing")
		require.ErrorContains(t, err, "can't write output", "should return error about failed writing")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("notify error", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		jobs := mocks.NewJobs(t)
		notifier := mocks.NewNotifier(t)
		job := newTestJob(t, jobs)

		mockStorageStartRun(storage, startedRun(), nil)
		job.loader.On("Load", mock.Anything, feedURL).Return(catalog, nil)
		job.generator.On("Generate", mock.Anything, catalog).Return(result, nil)
		job.emitter.On("Emit", mock.Anything, result).Return(&generator.Output{CampaignPath: "campaign.csv"}, nil)
		storage.On("FinishRun", mock.Anything, mock.Anything).Return(nil)
		notifier.On("SendGenerationFinished", mock.Anything, mock.Anything).Return(assert.AnError)

		run, err := runner.NewRunner(storage, jobs, runner.WithNotifier(notifier)).Run(context.TODO(), target)

		require.NoError(t, err, "failed notification shouldn't fail generation")
		assert.True(t, *run.IsSuccess, "run should be successful")
	})
}

func mockStorageStartRun(storage *mocks.Storage, run *models.Run, err error) {
	storage.On("StartRun", mock.Anything, target).Return(run, err)
}

func mockStorageFinishRun(storage *mocks.Storage, run *models.Run, err error) {
	storage.On("FinishRun", mock.Anything, run).Return(err)
}

type fakeClock struct {
	now *time.Time
}

func (c fakeClock) Now() *time.Time {
	return c.now
}
