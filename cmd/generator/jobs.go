package main

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"path/filepath"

	"github.com/MichalMitros/pdsa-generator/cmd/generator/config"
	"github.com/MichalMitros/pdsa-generator/internal/catalog"
	"github.com/MichalMitros/pdsa-generator/internal/decoder"
	"github.com/MichalMitros/pdsa-generator/internal/fetcher"
	"github.com/MichalMitros/pdsa-generator/internal/generator"
	"github.com/MichalMitros/pdsa-generator/internal/images"
	"github.com/MichalMitros/pdsa-generator/internal/output"
	"github.com/MichalMitros/pdsa-generator/internal/platform/objectstore"
	"github.com/MichalMitros/pdsa-generator/internal/reconciler"
	"github.com/MichalMitros/pdsa-generator/internal/runner"
	"github.com/rs/zerolog"
)

// targetJobs builds generation jobs of targets from configuration file.
type targetJobs struct {
	cfg     *config.Config
	fetcher *fetcher.Fetcher
	// store is remote store of images and outputs, nil for local runs.
	store  *objectstore.GCS
	logger *zerolog.Logger
}

func newTargetJobs(cfg *config.Config, store *objectstore.GCS, logger *zerolog.Logger) *targetJobs {
	return &targetJobs{
		cfg:     cfg,
		fetcher: fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, UserAgent),
		store:   store,
		logger:  logger,
	}
}

// targetComponents are generation components of one target.
type targetComponents struct {
	target    *config.Target
	loader    *catalog.Loader
	generator *generator.Generator
	emitter   *generator.Emitter
}

// Job returns generation job of valid target. Configuration file is read on every call
// so that running worker picks up changed targets.
func (j *targetJobs) Job(name string) (*runner.Job, error) {
	c, err := j.components(name)
	if err != nil {
		return nil, err
	}

	if errs := c.target.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid target: %w", errors.Join(errs...))
	}

	return &runner.Job{
		FeedURL:   c.target.FeedURL,
		Loader:    c.loader,
		Generator: c.generator,
		Emitter:   c.emitter,
	}, nil
}

func (j *targetJobs) components(name string) (*targetComponents, error) {
	file, err := config.ReadFile(j.cfg.ConfigFile)
	if err != nil {
		return nil, err
	}

	target, err := file.Target(name)
	if err != nil {
		return nil, err
	}

	logger := j.logger.With().Str("target", name).Logger()

	imagesCfg, err := target.ImagesConfig(
		filepath.Join(j.cfg.ImageFolder, name),
		path.Join(name, images.DefaultPrefix),
		j.cfg.DownloadWorkers,
		j.cfg.ImagesDryRun,
	)
	if err != nil {
		return nil, err
	}

	files := generator.Files{
		Folder:      filepath.Join(j.cfg.OutputFolder, name),
		ImageFolder: imagesCfg.Folder,
		Prefix:      path.Join(j.cfg.OutputPrefix, name),
	}

	var (
		pipelineOps = []images.Option{images.WithLogger(&logger)}
		archiverOps []output.ArchiverOption
		emitterOps  []generator.EmitterOption
		opener      reconciler.Opener = reconciler.Files{}
	)
	if j.store != nil {
		pipelineOps = append(pipelineOps, images.WithStore(j.store))
		archiverOps = append(archiverOps, output.WithUploader(j.store, files.Prefix))
		emitterOps = append(emitterOps, generator.WithPublisher(j.store))
		opener = j.store
	}
	emitterOps = append(emitterOps, generator.WithArchiver(output.NewArchiver(j.cfg.ArchiveInlineLimit, archiverOps...)))

	emitter := generator.NewEmitter(files, emitterOps...)

	previousOutput := emitter.CampaignPath()
	if j.store != nil {
		previousOutput = emitter.CampaignObject()
	}

	return &targetComponents{
		target: target,
		loader: catalog.NewLoader(
			j.fetcher,
			decoder.Decoder{},
			catalog.WithRules(target.LabelRules()),
			catalog.WithLogger(&logger),
		),
		generator: generator.NewGenerator(
			target.GeneratorConfig(previousOutput),
			images.NewPipeline(j.fetcher, imagesCfg, pipelineOps...),
			reconciler.NewReconciler(opener, &logger),
			generator.WithLogger(&logger),
		),
		emitter: emitter,
	}, nil
}
