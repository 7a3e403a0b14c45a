package librarycmd

import (
	"context"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-methodlib/internal/commands"
	"github.com/goliatone/go-methodlib/internal/library"
	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

const seedLibraryMessageType = "methods.library.seed"

// SeedLibraryCommand publishes the sample method library.
type SeedLibraryCommand struct{}

func (SeedLibraryCommand) Type() string { return seedLibraryMessageType }

func (cmd SeedLibraryCommand) Validate() error {
	return ozzo.ValidateStruct(&cmd)
}

func NewSeedHandler(svc library.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SeedLibraryCommand]) *commands.Handler[SeedLibraryCommand] {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, _ SeedLibraryCommand) error {
		count, err := library.Seed(ctx, svc)
		if err != nil {
			return err
		}
		logger.Info("library.seeded", "methods", count)
		return nil
	}
	base := []commands.HandlerOption[SeedLibraryCommand]{
		commands.WithLogger[SeedLibraryCommand](logger),
		commands.WithOperation[SeedLibraryCommand]("library.seed"),
	}
	return commands.NewHandler(exec, append(base, opts...)...)
}
