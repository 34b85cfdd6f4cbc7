package main

import (
	"fmt"
	"os"

	"github.com/pamten/resume-backend/internal/resume/extractor"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>...",
	Short: "Print the plain text of .docx/.pdf resumes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	texts, err := extractFiles(cmd, extractor.Default(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, text := range texts {
		if len(args) > 1 {
			fmt.Fprintf(out, "==> %s <==\n", args[i])
		}
		fmt.Fprintln(out, text)
	}
	return nil
}

// extractFiles reads and extracts every file concurrently, keeping the
// argument order in the result.
func extractFiles(cmd *cobra.Command, reg *extractor.Registry, paths []string) ([]string, error) {
	texts := make([]string, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			text, err := reg.Extract(ctx, path, data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}
