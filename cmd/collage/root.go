package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collage",
		Short: "Build photo collages from up to six landscape photos",
		Long: `Collage picks photos, previews them as a collage and saves the result to a photo library.

Only landscape photos are accepted, duplicates are skipped and at most six photos fit in a collage.
A collage can be saved when it holds an even number of photos.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
