package jobscmd

import (
	"context"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-methodlib/internal/commands"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

const processJobsMessageType = "methods.jobs.process"

// DefaultCronExpression drains due jobs as often as the shortest autosave
// interval needs.
const DefaultCronExpression = "@every 10s"

// Worker is the part of jobs.Worker the command drives.
type Worker interface {
	Process(ctx context.Context) error
}

// CronRegistrar matches go-command cron registries.
type CronRegistrar func(command.HandlerConfig, any) error

// ProcessJobsCommand runs one batch of due scheduler jobs.
type ProcessJobsCommand struct{}

func (ProcessJobsCommand) Type() string { return processJobsMessageType }

func (cmd ProcessJobsCommand) Validate() error {
	return ozzo.ValidateStruct(&cmd)
}

func NewProcessJobsHandler(worker Worker, logger interfaces.Logger, opts ...commands.HandlerOption[ProcessJobsCommand]) *commands.Handler[ProcessJobsCommand] {
	exec := func(ctx context.Context, _ ProcessJobsCommand) error {
		return worker.Process(ctx)
	}
	base := []commands.HandlerOption[ProcessJobsCommand]{
		commands.WithLogger[ProcessJobsCommand](logger),
		commands.WithOperation[ProcessJobsCommand]("jobs.process"),
	}
	return commands.NewHandler(exec, append(base, opts...)...)
}

// RegisterCron schedules the handler on reg. An empty expression uses
// DefaultCronExpression.
func RegisterCron(reg CronRegistrar, handler *commands.Handler[ProcessJobsCommand], cfg command.HandlerConfig) error {
	if reg == nil || handler == nil {
		return nil
	}
	if cfg.Expression == "" {
		cfg.Expression = DefaultCronExpression
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), ProcessJobsCommand{})
	})
}
