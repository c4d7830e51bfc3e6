package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ingredi/capture"
	"ingredi/model"
	"ingredi/provider"
)

var (
	analyzeJSON  bool
	analyzeImage string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ingredients...]",
	Short: "Analyze an ingredient list without the interactive interface",
	Long: `Sends one ingredient list through the same pipeline as the interactive
interface and prints the normalized analysis.

With no arguments the list is read from stdin. With --image the list is
read from a label photo first.`,
	Example: `  ingredi analyze "water, sugar, citric acid, sodium benzoate"
  ingredi analyze --image label.jpg --json`,
	RunE: runAnalyze,
}

var ocrCmd = &cobra.Command{
	Use:   "ocr <image>",
	Short: "Print the text the camera capture would submit for an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runOCR,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the analysis payload",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the canonical JSON payload")
	analyzeCmd.Flags().StringVar(&analyzeImage, "image", "", "Read the ingredient list from a label photo")
}

func cliLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app := buildApp(cfg, cliLogger())
	app.model.TransitionWindow = 0

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	text, err := analyzeInput(ctx, app.camera, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	submit := app.model.Submit(text)
	if submit == nil {
		return fmt.Errorf("nothing to analyze")
	}
	app.model.Drain(submit)

	last, ok := app.model.Store.LastAI()
	if !ok || last.AI == nil {
		return fmt.Errorf("no analysis produced")
	}
	return printPayload(cmd.OutOrStdout(), *last.AI, analyzeJSON)
}

// analyzeInput resolves the text to submit: image, arguments, or stdin
func analyzeInput(ctx context.Context, camera *capture.Camera, args []string, stdin io.Reader) (string, error) {
	if analyzeImage != "" {
		text, err := camera.Capture(ctx, analyzeImage)
		if err != nil {
			return "", err
		}
		cliLogger().Debug("image captured", zap.String("text", text))
		return text, nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func printPayload(w io.Writer, p model.AIPayload, asJSON bool) error {
	if asJSON {
		data, err := model.MarshalCanonical(p)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if p.IsError() {
		_, err := fmt.Fprintln(w, p.OverallConclusion)
		return err
	}

	var sb strings.Builder
	if p.Greeting != "" {
		sb.WriteString(p.Greeting + "\n\n")
	}
	for _, f := range p.Ingredients {
		if f.Severity != model.SeverityNone {
			fmt.Fprintf(&sb, "%s [%s]\n", f.Name, f.Severity.Label())
		} else {
			fmt.Fprintf(&sb, "%s\n", f.Name)
		}
		writeSection(&sb, "Why this matters", f.WhatItIs)
		writeSection(&sb, "Who might care", f.WhyItIsUsed)
		writeSection(&sb, "Trade-offs", f.Tradeoffs)
		writeSection(&sb, "What we know", f.Uncertainty)
		sb.WriteString("\n")
	}
	if p.OverallNutrition != "" {
		fmt.Fprintf(&sb, "Overall nutrition: %s\n\n", p.OverallNutrition)
	}
	if p.OverallConclusion != "" {
		sb.WriteString(p.OverallConclusion + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSection(sb *strings.Builder, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(sb, "  %s: %s\n", title, body)
}

func runOCR(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app := buildApp(cfg, cliLogger())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	text, err := app.camera.Capture(ctx, args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func runSchema(cmd *cobra.Command, args []string) error {
	var out map[string]any
	if err := json.Unmarshal(provider.ResponseSchema(), &out); err != nil {
		return fmt.Errorf("decoding schema: %w", err)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
