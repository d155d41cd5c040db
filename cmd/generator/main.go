package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	gcs "cloud.google.com/go/storage"
	"github.com/MichalMitros/pdsa-generator/cmd/generator/config"
	"github.com/MichalMitros/pdsa-generator/internal/handler"
	"github.com/MichalMitros/pdsa-generator/internal/platform/objectstore"
	"github.com/MichalMitros/pdsa-generator/internal/platform/rabbitmq"
	"github.com/MichalMitros/pdsa-generator/internal/platform/storage"
	"github.com/MichalMitros/pdsa-generator/internal/runner"
	"github.com/MichalMitros/pdsa-generator/pkg/v1/commander"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const (
	// UserAgent is user agent header value used when fetching feed and image files.
	UserAgent = "pdsa-generator/0.0.1"
)

// errInvalidConfig is returned by validate command when any problem is found.
var errInvalidConfig = errors.New("invalid configuration")

type app struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func main() {
	a := &app{
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}

	if err := a.rootCommand().Execute(); err != nil {
		a.logger.Fatal().
			Err(err).
			Msg("command failed")
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "generator",
		Short:         "Generates dynamic search ads campaigns from product feeds",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load(".env")
			if err != nil {
				return err
			}
			a.cfg = cfg

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("can't parse log level: %w", err)
			}
			a.logger = a.logger.Level(level)

			return nil
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "generate <target>",
			Short: "Generate campaign of target",
			Args:  cobra.ExactArgs(1),
			RunE:  a.generate,
		},
		&cobra.Command{
			Use:   "validate <target>",
			Short: "Validate target configuration against its product feed",
			Args:  cobra.ExactArgs(1),
			RunE:  a.validate,
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Consume generate commands from RabbitMQ",
			Args:  cobra.NoArgs,
			RunE:  a.serve,
		},
		&cobra.Command{
			Use:   "send <target>",
			Short: "Send generate command of target to RabbitMQ",
			Args:  cobra.ExactArgs(1),
			RunE:  a.send,
		},
	)

	return root
}

func (a *app) generate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jobs, closeStore, err := a.jobs(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	runs, closeStorage, err := a.storage()
	if err != nil {
		return err
	}
	defer closeStorage()

	run, err := runner.NewRunner(runs, jobs, runner.WithLogger(&a.logger)).Run(ctx, args[0])
	if err != nil {
		return err
	}

	a.logger.Info().
		Str("target", run.Target).
		Int32("products", lo.FromPtr(run.Products)).
		Int32("adGroups", lo.FromPtr(run.AdGroups)).
		Int32("images", lo.FromPtr(run.Images)).
		Str("path", lo.FromPtr(run.OutputPath)).
		Msg("generation finished")

	return nil
}

func (a *app) validate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jobs, closeStore, err := a.jobs(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	c, err := jobs.components(args[0])
	if err != nil {
		return err
	}

	problems := c.target.Validate()
	if len(problems) == 0 {
		catalog, err := c.loader.Load(ctx, c.target.FeedURL)
		if err != nil {
			return err
		}
		problems = append(problems, c.generator.Validate(catalog)...)
	}

	for _, problem := range problems {
		a.logger.Error().
			Err(problem).
			Str("target", args[0]).
			Msg("configuration problem")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %d problems found", errInvalidConfig, len(problems))
	}

	a.logger.Info().Str("target", args[0]).Msg("configuration is valid")

	return nil
}

func (a *app) serve(cmd *cobra.Command, _ []string) (err error) {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// closers release opened connections, on startup failure or after graceful shutdown
	var closers []func()
	defer func() {
		if err != nil {
			closeAll(closers)
		}
	}()

	amqpConnection, err := amqp.Dial(a.cfg.RabbitMQ.URL)
	if err != nil {
		return fmt.Errorf("can't open RabbitMQ connection: %w", err)
	}
	closers = append(closers, func() {
		if err := amqpConnection.Close(); err != nil {
			a.logger.Error().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	})

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, a.cfg.RabbitMQ.Exchange)
	if err != nil {
		return fmt.Errorf("can't open RabbitMQ connection: %w", err)
	}

	if err := conn.Declare(a.cfg.RabbitMQ.Queue, a.cfg.RabbitMQ.CommandRoutingKey); err != nil {
		return err
	}

	jobs, closeStore, err := a.jobs(ctx)
	if err != nil {
		return err
	}
	closers = append(closers, closeStore)

	runs, closeStorage, err := a.storage()
	if err != nil {
		return err
	}
	closers = append(closers, closeStorage)

	run := runner.NewRunner(
		runs,
		jobs,
		runner.WithNotifier(commander.NewNotifier(commander.NewRabbitMQSender(conn, a.cfg.RabbitMQ.NotifyRoutingKey))),
		runner.WithLogger(&a.logger),
	)

	han := handler.NewHandler(conn, run, &a.logger)

	// start consuming and handling messages
	if err := han.Start(ctx, a.cfg.RabbitMQ.Queue); err != nil {
		return fmt.Errorf("can't start consuming: %w", err)
	}

	a.logger.Info().Msg("pdsa generator up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	a.logger.Info().Msg("graceful shutdown start")

	// wait for consumer to finish
	<-conn.Done()

	// close connections
	closeAll(closers)

	a.logger.Info().Msg("graceful shutdown successful")

	return nil
}

// closeAll runs closers concurrently and waits for them.
func closeAll(closers []func()) {
	wg := sync.WaitGroup{}
	wg.Add(len(closers))

	for _, c := range closers {
		go func() {
			defer wg.Done()
			c()
		}()
	}

	wg.Wait()
}

func (a *app) send(cmd *cobra.Command, args []string) error {
	amqpConnection, err := amqp.Dial(a.cfg.RabbitMQ.URL)
	if err != nil {
		return fmt.Errorf("can't open RabbitMQ connection: %w", err)
	}
	defer amqpConnection.Close()

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, a.cfg.RabbitMQ.Exchange)
	if err != nil {
		return fmt.Errorf("can't open RabbitMQ connection: %w", err)
	}
	defer conn.Close()

	commands := commander.NewGenerateCommander(commander.NewRabbitMQSender(conn, a.cfg.RabbitMQ.CommandRoutingKey))
	if err := commands.SendGenerateCommand(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("can't send generate command: %w", err)
	}

	a.logger.Info().Str("target", args[0]).Msg("generate command sent")

	return nil
}

// jobs returns jobs of configured targets. Images and outputs are kept in GCS bucket when configured.
func (a *app) jobs(ctx context.Context) (*targetJobs, func(), error) {
	if a.cfg.GCSBucket == "" {
		return newTargetJobs(a.cfg, nil, &a.logger), func() {}, nil
	}

	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("can't create GCS client: %w", err)
	}

	closeClient := func() {
		if err := client.Close(); err != nil {
			a.logger.Error().
				Err(err).
				Msg("can't close GCS client")
		}
	}

	return newTargetJobs(a.cfg, objectstore.NewGCS(client, a.cfg.GCSBucket), &a.logger), closeClient, nil
}

// storage returns Postgres runs storage when database is configured, in-memory one otherwise.
func (a *app) storage() (runner.Storage, func(), error) {
	if a.cfg.DatabaseURL == "" {
		return storage.NewMemory(), func() {}, nil
	}

	pgDB, err := sql.Open("postgres", a.cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("can't open Postgres connection: %w", err)
	}

	closeDB := func() {
		if err := pgDB.Close(); err != nil {
			a.logger.Error().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}

	return storage.NewPostgres(pgDB), closeDB, nil
}
