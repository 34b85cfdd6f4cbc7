package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pamten/resume-backend/internal/resume/handler"
	"github.com/pamten/resume-backend/internal/resume/server"
	"github.com/pamten/resume-backend/pkg/config"
	"github.com/pamten/resume-backend/pkg/logger"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract a resume and structure it with the configured LLM",
	Long:  "Extracts the text of a .docx/.pdf resume, asks the configured LLM provider for a resume record and prints it as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var parseOutputFile string

func init() {
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Write the JSON record to this file instead of stdout")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(handler.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.LLM.Validate(); err != nil {
		return err
	}
	log := logger.New("resumectl", cfg.Server.Environment)

	svc, closeLLM, err := server.NewService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLLM()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	rec, err := svc.ParseUpload(ctx, args[0], data)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(map[string]any{"parsedData": rec}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if parseOutputFile != "" {
		return os.WriteFile(parseOutputFile, append(out, '\n'), 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
