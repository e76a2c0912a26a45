package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"appointment-engine/cmd/bootstrap"
	"appointment-engine/internal/cli"
	"appointment-engine/internal/usecase/availability"

	"github.com/alecthomas/kong"
	"go.uber.org/fx"
)

var version = "dev"

func main() {
	var grammar cli.CLI
	kctx := kong.Parse(&grammar,
		kong.Name("appointment-engine"),
		kong.Description("Appointment slot generation and availability engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)

	var (
		engine availability.Engine
		types  availability.AppointmentTypeStore
	)
	app := fx.New(
		bootstrap.Module,
		fx.NopLogger,
		fx.Populate(&engine, &types),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to start: %v\n", err)
		os.Exit(1)
	}

	runErr := kctx.Run(&cli.Context{
		Ctx:    ctx,
		Engine: engine,
		Types:  types,
		Out:    os.Stdout,
	})

	if err := app.Stop(ctx); err != nil {
		slog.Error("failed to stop cleanly", slog.String("error", err.Error()))
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
