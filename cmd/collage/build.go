package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/destel/collage"
	"github.com/destel/collage/internal/browse"
	"github.com/destel/collage/internal/config"
	"github.com/destel/collage/internal/photolib"
	"github.com/destel/collage/internal/raster"
	"github.com/destel/collage/internal/ux"
)

func newBuildCmd() *cobra.Command {
	var (
		save       bool
		libraryDir string
		throttle   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "build [FILE|DIR]...",
		Short: "Select photos and preview the collage",
		Long: `Reads photos from the given files and directories in order, and selects them
the same way a user tapping them one after another would.`,
		Example: `  # Preview a collage from a directory
  collage build ~/Pictures/trip

  # Save the collage into a custom library
  collage build --save --library ./out a.jpg b.jpg c.jpg d.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("library") {
				cfg.LibraryDir = libraryDir
			}
			if cmd.Flags().Changed("throttle") {
				cfg.Throttle = throttle
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := cfg.Level()
			fingerprint, _ := cfg.Fingerprinter()
			logger := newLogger(level)

			ctx := cmd.Context()
			term := ux.NewTerminal(cmd.OutOrStdout(), os.Stdin)

			agg := collage.NewAggregator(
				collage.WithFingerprinter(fingerprint),
				collage.WithLogger(logger),
			)
			defer agg.Close()

			session := collage.NewSession(ctx, agg, collage.SessionConfig{
				Rasterizer:  raster.Grid{},
				Persister:   photolib.New(cfg.LibraryDir, logger),
				Notifier:    term,
				Preview:     term,
				View:        term,
				Icon:        term,
				PreviewSize: cfg.PreviewSize(),
				Throttle:    cfg.Throttle,
				Logger:      logger,
			})
			defer session.Close()

			files := func(ctx context.Context) <-chan collage.Try[collage.Candidate] {
				return browse.Files(ctx, args, cfg.Workers, logger)
			}
			if err := session.Add(ctx, files); err != nil {
				return err
			}

			// the preview is throttled, let it catch up with the final selection
			if err := session.AwaitPreview(ctx); err != nil {
				return err
			}

			state := session.ViewState()
			term.UpdateView(state)

			if !save {
				return nil
			}

			err = session.Save(ctx)
			if errors.Is(err, collage.ErrSaveDisabled) {
				return fmt.Errorf("cannot save %s: a collage needs an even number of photos", state.Title)
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&save, "save", "s", false, "Save the collage to the photo library")
	cmd.Flags().StringVarP(&libraryDir, "library", "l", "", "Photo library directory (overrides COLLAGE_LIBRARY_DIR)")
	cmd.Flags().DurationVar(&throttle, "throttle", 0, "Minimum interval between preview renders (overrides COLLAGE_THROTTLE)")

	return cmd
}
