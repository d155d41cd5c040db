package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/MichalMitros/pdsa-generator/internal/platform/rabbitmq"
	"github.com/MichalMitros/pdsa-generator/pkg/v1/commander"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Consumer --filename consumer.go
//go:generate mockery --name Runner --filename runner.go

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// Runner runs campaign generation of target.
type Runner interface {
	Run(ctx context.Context, target string) (*models.Run, error)
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq    Consumer
	runner Runner
	logger *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(rmq Consumer, runner Runner, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:    rmq,
		runner: runner,
		logger: logger,
	}
}

// Start starts consuming and handling generate commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// Handle handles single generate command message.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Str("target", cmd.Target).
		Msg("generation started")

	run, err := h.runner.Run(ctx, cmd.Target)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	h.logger.Debug().
		Str("target", cmd.Target).
		Int32("adGroups", lo.FromPtr(run.AdGroups)).
		Msg("generation finished")

	return nil
}

func decodeMessage(msg []byte) (*commander.GenerateCommand, error) {
	var cmd commander.GenerateCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode generate command: %w", err)
	}

	if cmd.Target == "" {
		return nil, fmt.Errorf("can't decode generate command: missing target")
	}

	return &cmd, nil
}
