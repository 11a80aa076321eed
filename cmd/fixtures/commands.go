package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"aliascore/config"
	"aliascore/internal/domain/repository"
	"aliascore/internal/infra/kvstore"
	logs "aliascore/internal/infra/log"
	"aliascore/internal/mock/fixture"
	"aliascore/internal/util"

	"github.com/pkg/errors"
)

// env is what every subcommand works on.
type env struct {
	store    repository.KeyValueStore
	fixtures *fixture.Service
	logger   *slog.Logger
}

func withEnv(ctx context.Context, run func(e *env) error) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	logger, err := logs.NewWithWriter(cfg, os.Stderr)
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}

	var mockCfg config.MockConfig
	if cfg.Mock != nil {
		mockCfg = *cfg.Mock
	}

	store, err := kvstore.Open(mockCfg.Storage)
	if err != nil {
		return errors.Wrap(err, "failed to open fixture store")
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.WarnContext(ctx, "Failed to close fixture store", slog.Any("error", cerr))
		}
	}()

	return run(&env{
		store: store,
		fixtures: fixture.New(store, logger, fixture.Options{
			Seed:            mockCfg.Seed,
			EventsPerDomain: mockCfg.EventsPerDomain,
		}),
		logger: logger,
	})
}

func runGenerate(ctx context.Context, e *env, w io.Writer) error {
	if err := e.fixtures.Initialize(ctx); err != nil {
		return errors.Wrap(err, "failed to initialize fixtures")
	}

	return printSummary(e, w)
}

func runShow(ctx context.Context, e *env, w io.Writer, compact bool) error {
	if err := e.fixtures.Initialize(ctx); err != nil {
		return errors.Wrap(err, "failed to initialize fixtures")
	}

	snap, err := e.fixtures.Snapshot()
	if err != nil {
		return errors.Wrap(err, "failed to read fixtures")
	}

	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}

	return errors.Wrap(enc.Encode(snap), "failed to encode fixtures")
}

func runEvents(ctx context.Context, e *env, w io.Writer, domainID string) error {
	if err := e.fixtures.Initialize(ctx); err != nil {
		return errors.Wrap(err, "failed to initialize fixtures")
	}

	events, err := e.fixtures.Events(domainID)
	if err != nil {
		return errors.Wrapf(err, "failed to list events of %s", domainID)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tNAME\tVENUE\tLAT\tLNG")
	for _, ev := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.6f\t%.6f\n",
			util.FormatDateTime(ev.DateTime),
			util.Truncate(ev.Name, 40),
			ev.Venue,
			ev.Latitude,
			ev.Longitude,
		)
	}

	return errors.Wrap(tw.Flush(), "failed to write events")
}

func runReset(ctx context.Context, e *env, w io.Writer) error {
	if err := e.fixtures.Reset(ctx); err != nil {
		return errors.Wrap(err, "failed to reset fixtures")
	}

	return printSummary(e, w)
}

func runClear(ctx context.Context, e *env, w io.Writer) error {
	e.fixtures.Clear(ctx)
	fmt.Fprintln(w, "Fixtures cleared")

	return nil
}

func printSummary(e *env, w io.Writer) error {
	snap, err := e.fixtures.Snapshot()
	if err != nil {
		return errors.Wrap(err, "failed to read fixtures")
	}

	fmt.Fprintf(w, "User:    %s (%s)\n", snap.User.DisplayName, snap.User.ID)
	for _, d := range snap.Domains {
		fmt.Fprintf(w, "Domain:  %-14s %-18s rating %s, %s\n",
			d.ID,
			d.PlatformUsername,
			util.FormatRating(d.CurrentRating),
			util.FormatGamesPlayed(d.GamesPlayed),
		)
	}

	var total int
	for _, group := range snap.Events {
		total += len(group.Events)
	}
	fmt.Fprintf(w, "Events:  %s\n", util.FormatNumber(total))

	return nil
}
