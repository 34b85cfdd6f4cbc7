package main

import (
	"fmt"

	"github.com/pamten/resume-backend/internal/resume/handler"
	"github.com/pamten/resume-backend/internal/resume/server"
	"github.com/pamten/resume-backend/pkg/config"
	"github.com/pamten/resume-backend/pkg/logger"
	"github.com/spf13/cobra"
)

var pitchCmd = &cobra.Command{
	Use:   "pitch <record.json>",
	Short: "Generate an elevator pitch for a resume record",
	Args:  cobra.ExactArgs(1),
	RunE:  runPitch,
}

func init() {
	rootCmd.AddCommand(pitchCmd)
}

func runPitch(cmd *cobra.Command, args []string) error {
	raw, err := readRecordJSON(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load(handler.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.LLM.Validate(); err != nil {
		return err
	}

	svc, closeLLM, err := server.NewService(cmd.Context(), cfg, logger.New("resumectl", cfg.Server.Environment))
	if err != nil {
		return err
	}
	defer closeLLM()

	pitch, err := svc.ElevatorPitch(cmd.Context(), raw)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), pitch)
	return nil
}
