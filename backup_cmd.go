package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shoetracker/internal/service"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every shoe and its runs as YAML",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore shoes and runs from a YAML export",
	Long:  "Restore shoes and runs from a file written by `shoes export`. Shoes that already exist are skipped; use - to read stdin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := a.shoes.Export(w); err != nil {
		return err
	}
	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", exportOutput)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening backup: %w", err)
		}
		defer f.Close()
		r = f
	}

	backup, err := service.ReadBackup(r)
	if err != nil {
		return err
	}
	result, err := a.shoes.Restore(backup)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Restored %d shoes with %d runs (%d already present)\n",
		result.ShoesCreated, result.Workouts, result.ShoesSkipped)
	return nil
}
