// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/excitontb/archive"
	"github.com/katalvlaran/excitontb/interaction"
	"github.com/katalvlaran/excitontb/source"
)

func newShapesCmd(a *app) *cobra.Command {
	var (
		flags       interactionFlags
		archivePath string
		label       string
	)
	cmd := &cobra.Command{
		Use:   "shapes FILE",
		Short: "Build the interaction store and print every block shape",
		Long: `Builds the interaction store of FILE and prints one line per key:

  k(i,j,i',j'): (rows, cols)

With --archive (or archive.path in the config) the store is also saved to
a SQLite archive and the run id is printed last.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a.cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("archive") {
				a.cfg.Archive.Path = archivePath
			}
			ds, err := source.Load(args[0])
			if err != nil {
				return err
			}
			e, err := a.engine(ds)
			if err != nil {
				return err
			}
			ic, err := a.cfg.Interaction.Build()
			if err != nil {
				return err
			}
			st, err := e.Store(cmd.Context(), ic)
			if err != nil {
				return err
			}
			printShapes(cmd.OutOrStdout(), st)

			if a.cfg.Archive.Path == "" {
				return nil
			}
			if label == "" {
				label = args[0]
			}

			return a.save(cmd, st, label)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&archivePath, "archive", "", "SQLite archive to save the store into")
	cmd.Flags().StringVar(&label, "label", "", "run label in the archive (default: FILE)")

	return cmd
}

func printShapes(w io.Writer, st *interaction.Store) {
	for _, key := range st.Keys() {
		r, c := st.Shape(key)
		fmt.Fprintf(w, "%s: (%d, %d)\n", key, r, c)
	}
	for _, warn := range st.Warnings() {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}

func (a *app) save(cmd *cobra.Command, st *interaction.Store, label string) (retErr error) {
	arc, err := archive.Open(a.cfg.Archive.Path, archive.WithLogger(a.logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := arc.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	id, err := arc.Save(cmd.Context(), st, label)
	if err != nil {
		return err
	}
	a.logger.Info("store archived", zap.Stringer("run", id), zap.String("path", a.cfg.Archive.Path))
	fmt.Fprintf(cmd.OutOrStdout(), "run: %s\n", id)

	return nil
}
