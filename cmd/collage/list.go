package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/destel/collage/internal/config"
	"github.com/destel/collage/internal/photolib"
)

func newListCmd() *cobra.Command {
	var libraryDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the collages saved in the photo library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("library") {
				cfg.LibraryDir = libraryDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := cfg.Level()
			paths, err := photolib.New(cfg.LibraryDir, newLogger(level)).List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range paths {
				fmt.Fprintln(out, filepath.Base(p))
			}
			fmt.Fprintf(out, "%d collages in %s\n", len(paths), cfg.LibraryDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryDir, "library", "l", "", "Photo library directory (overrides COLLAGE_LIBRARY_DIR)")

	return cmd
}
