package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// GenerateCommander sends generate commands.
type GenerateCommander struct {
	sender Sender
}

// NewGenerateCommander returns new GenerateCommander using provided sender for sending messages.
func NewGenerateCommander(sender Sender) GenerateCommander {
	return GenerateCommander{
		sender: sender,
	}
}

// SendGenerateCommand sends generate command of provided target.
func (c GenerateCommander) SendGenerateCommand(ctx context.Context, target string) error {
	cmd := GenerateCommand{
		Target: target,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal generate command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}

// Notifier sends generation events.
type Notifier struct {
	sender Sender
}

// NewNotifier returns new Notifier using provided sender for sending messages.
func NewNotifier(sender Sender) Notifier {
	return Notifier{
		sender: sender,
	}
}

// SendGenerationFinished sends generation finished event.
func (n Notifier) SendGenerationFinished(ctx context.Context, event GenerationFinished) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("can't marshal generation finished event: %w", err)
	}

	return n.sender.Send(ctx, msg)
}
