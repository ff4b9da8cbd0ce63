package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"realitycheck/internal/analysis"
	"realitycheck/internal/config"
	"realitycheck/internal/export"
	"realitycheck/internal/llm"
	"realitycheck/internal/logger"
	"realitycheck/internal/model"
	"realitycheck/internal/service"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	tone       string
	focus      string
	limit      int
	format     string
	outPath    string
)

func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&tone, "tone", "t", "", "Tone (critical/neutral/friendly)")
	cmd.Flags().StringVarP(&focus, "focus", "f", "", "Focus (innovation/UX/AI)")
	cmd.Flags().IntVarP(&limit, "limit", "n", model.DefaultResultLimit, "Number of competitors (1-15)")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table/md/csv/json/pdf)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to file instead of stdout")
}

func optionsFromFlags(cmd *cobra.Command) model.AnalysisOptions {
	opts := model.AnalysisOptions{Tone: model.Tone(tone), Focus: model.Focus(focus)}
	if cmd.Flags().Changed("limit") {
		opts.ResultLimit = model.Limit(limit)
	}
	return opts
}

func newPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt <product>",
		Short: "Print the prompt that would be sent to the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), analysis.BuildPrompt(args[0], optionsFromFlags(cmd)))
			return nil
		},
	}
	addOptionFlags(cmd)
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <product>",
		Short: "Analyze a product against its competitors",
		Long: `Ask the configured model for a competitor comparison, a summary and
three product ideas, then render the result.

Without an API key in the environment the mock provider is used.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
	addOptionFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a saved model response (stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParse,
	}
	addOutputFlags(cmd)
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// stdout carries only the rendered result
	logger.Log.SetOutput(cmd.ErrOrStderr())
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.Log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	if !cfg.LLM.IsEnabled() {
		fmt.Fprintln(cmd.ErrOrStderr(), "No API key configured, using mock responses")
	}

	// Quotas protect the shared service, not a local run
	svc := service.NewAnalysisService(client, llm.DefaultParams(cfg.LLM), nil, nil, nil)

	fmt.Fprintf(cmd.ErrOrStderr(), "Analyzing %s with %s...\n", args[0], client.Name())
	result, err := svc.Analyze(ctx, service.Caller{}, args[0], optionsFromFlags(cmd))
	if err != nil {
		return err
	}
	return writeResult(cmd, f, result.Result)
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	return writeResult(cmd, f, analysis.Parse(string(raw)))
}

func writeResult(cmd *cobra.Command, f export.Format, result *model.AnalysisResult) error {
	if outPath == "" {
		if f == export.FormatPDF {
			return fmt.Errorf("pdf output needs --out")
		}
		return export.Write(f, result, cmd.OutOrStdout())
	}

	file, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := export.Write(f, result, file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outPath)
	return nil
}
