package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pamten/resume-backend/internal/resume/extractor"
	"github.com/pamten/resume-backend/internal/resume/handler"
	"github.com/pamten/resume-backend/internal/resume/render"
	"github.com/pamten/resume-backend/internal/resume/service"
	"github.com/pamten/resume-backend/pkg/config"
	"github.com/pamten/resume-backend/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var renderCmd = &cobra.Command{
	Use:   "render <record.json>",
	Short: "Render resume JSON to DOCX and/or PDF",
	Long:  "Renders a resume record (as sent to /api/generate-docx, or the output of parse) to DOCX, PDF or both.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var (
	renderFormat    string
	renderOutputDir string
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "docx", "Output format: docx, pdf or all")
	renderCmd.Flags().StringVarP(&renderOutputDir, "out", "o", ".", "Directory for the rendered files")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var formats []string
	switch renderFormat {
	case "docx", "pdf":
		formats = []string{renderFormat}
	case "all":
		formats = []string{"docx", "pdf"}
	default:
		return fmt.Errorf("unknown format %q (want docx, pdf or all)", renderFormat)
	}

	raw, err := readRecordJSON(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load(handler.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New("resumectl", cfg.Server.Environment)

	svc := service.NewService(extractor.Default(), nil, log,
		render.NewDOCX(),
		render.NewPDF(render.NewChromeConverter(cfg.Render.ChromePath), cfg.Render.PDFTimeout),
	)

	if err := os.MkdirAll(renderOutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, format := range formats {
		g.Go(func() error {
			doc, err := svc.GenerateDocument(ctx, format, raw)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			path := filepath.Join(renderOutputDir, doc.Filename)
			if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		})
	}
	return g.Wait()
}

// readRecordJSON loads a record, unwrapping the {"parsedData": ...} envelope
// that parse prints.
func readRecordJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid record JSON: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("record JSON must be an object")
	}
	if inner, ok := raw["parsedData"].(map[string]any); ok {
		return inner, nil
	}
	return raw, nil
}
