package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - generate: Load the stored fixtures or generate and store a fresh set
// - show:     Print the fixtures as JSON
// - events:   List the events of one domain profile
// - reset:    Regenerate and store the fixtures
// - clear:    Delete the stored fixtures

func main() {
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	showCmd := flag.NewFlagSet("show", flag.ExitOnError)
	eventsCmd := flag.NewFlagSet("events", flag.ExitOnError)
	resetCmd := flag.NewFlagSet("reset", flag.ExitOnError)
	clearCmd := flag.NewFlagSet("clear", flag.ExitOnError)

	showCompact := showCmd.Bool("compact", false, "Print JSON without indentation")

	eventsDomain := eventsCmd.String("domain", "", "Domain profile id, e.g. mock-chess")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	flags := fixtureFlags{
		Generate: generateCmd,
		Show: showFlags{
			cmd:     showCmd,
			compact: showCompact,
		},
		Events: eventsFlags{
			cmd:    eventsCmd,
			domain: eventsDomain,
		},
		Reset: resetCmd,
		Clear: clearCmd,
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type fixtureFlags struct {
	Generate *flag.FlagSet
	Show     showFlags
	Events   eventsFlags
	Reset    *flag.FlagSet
	Clear    *flag.FlagSet
}

type showFlags struct {
	cmd     *flag.FlagSet
	compact *bool
}

type eventsFlags struct {
	cmd    *flag.FlagSet
	domain *string
}

func runSubcommand(ctx context.Context, flags *fixtureFlags) error {
	switch os.Args[1] {
	case "generate":
		return handleGenerate(ctx, flags)
	case "show":
		return handleShow(ctx, flags)
	case "events":
		return handleEvents(ctx, flags)
	case "reset":
		return handleReset(ctx, flags)
	case "clear":
		return handleClear(ctx, flags)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

func handleGenerate(ctx context.Context, flags *fixtureFlags) error {
	if err := flags.Generate.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse generate flags")
	}

	return withEnv(ctx, func(e *env) error {
		return runGenerate(ctx, e, os.Stdout)
	})
}

func handleShow(ctx context.Context, flags *fixtureFlags) error {
	if err := flags.Show.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse show flags")
	}

	return withEnv(ctx, func(e *env) error {
		return runShow(ctx, e, os.Stdout, *flags.Show.compact)
	})
}

func handleEvents(ctx context.Context, flags *fixtureFlags) error {
	if err := flags.Events.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse events flags")
	}

	if *flags.Events.domain == "" {
		return errors.New("--domain flag is required for events command")
	}

	return withEnv(ctx, func(e *env) error {
		return runEvents(ctx, e, os.Stdout, *flags.Events.domain)
	})
}

func handleReset(ctx context.Context, flags *fixtureFlags) error {
	if err := flags.Reset.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse reset flags")
	}

	return withEnv(ctx, func(e *env) error {
		return runReset(ctx, e, os.Stdout)
	})
}

func handleClear(ctx context.Context, flags *fixtureFlags) error {
	if err := flags.Clear.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse clear flags")
	}

	return withEnv(ctx, func(e *env) error {
		return runClear(ctx, e, os.Stdout)
	})
}

func printUsage() {
	fmt.Println("Usage: fixtures <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  generate    Load stored fixtures or generate a fresh set")
	fmt.Println("  show        Print the fixtures as JSON")
	fmt.Println("  events      List the events of one domain profile")
	fmt.Println("  reset       Regenerate and store the fixtures")
	fmt.Println("  clear       Delete the stored fixtures")
	fmt.Println("")
	fmt.Println("Use 'fixtures <command> -h' for more information about a command.")
}

// Command implementations are in commands.go
