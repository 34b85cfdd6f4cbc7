// Package main provides resumectl, a command line front end for the resume
// service: text extraction, AI structuring, rendering and the HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "resumectl",
	Short:         "Resume parsing and rendering tool",
	Long:          "resumectl extracts and structures resumes from .docx/.pdf files, renders resume JSON to DOCX or PDF and runs the resume HTTP service.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
