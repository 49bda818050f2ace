package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/pipeline"
	"github.com/spigell/practice-evaluator/internal/rubric"
	"github.com/spigell/practice-evaluator/internal/session"
	"github.com/spigell/practice-evaluator/internal/utils"
)

const (
	PromptShowScores     = "Show scores"
	PromptShowEvidence   = "Show evidence"
	PromptShowRedFlags   = "Show red flags"
	PromptShowCategories = "Show category averages"
	PromptShowMemory     = "Show memory metrics"
	PromptDumpToFile     = "Dump session to file"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{
		PromptShowScores,
		PromptShowEvidence,
		PromptShowRedFlags,
		PromptShowCategories,
		PromptShowMemory,
		PromptDumpToFile,
		PromptExit,
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one transcript file and print the session record",
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("file", "f", "", "transcript file, - for stdin")
	evaluateCmd.Flags().Bool("heuristic", false, "use the offline heuristic path regardless of backend.mode")
	evaluateCmd.Flags().BoolP("yes", "y", false, "print the record and exit without the interactive menu")
	evaluateCmd.Flags().String("problem-id", "", "problem id stored in the session record")
	evaluateCmd.Flags().String("problem-title", "", "problem title stored in the session record")
	evaluateCmd.Flags().String("difficulty", "", "problem difficulty stored in the session record")
	evaluateCmd.Flags().Duration("duration", 0, "practice session length stored in the session record")
	evaluateCmd.Flags().String("company", "", "target company used as scoring context")
	evaluateCmd.Flags().String("job-role", "", "target job role used as scoring context")
	evaluateCmd.Flags().String("focus-role", "", "focus role used as scoring context")

	evaluateCmd.MarkFlagRequired("file")
}

func evaluate(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := buildLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	flags := cmd.Flags()
	heuristic, _ := flags.GetBool("heuristic")

	svc, err := buildService(ctx, config, logger, heuristic)
	if err != nil {
		logger.Fatal("building the evaluator", zap.Error(err))
	}

	path, _ := flags.GetString("file")
	text, err := readTranscript(path)
	if err != nil {
		logger.Fatal("reading the transcript", zap.Error(err), zap.String("file", path))
	}

	hints := rubric.Hints{}
	hints.Company, _ = flags.GetString("company")
	hints.JobRole, _ = flags.GetString("job-role")
	hints.FocusRole, _ = flags.GetString("focus-role")

	res, err := svc.Evaluate(ctx, pipeline.Request{Transcript: text, Hints: hints})
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) && stageErr.Raw != "" {
			fields = append(fields, zap.String("raw", utils.TruncateForLog(stageErr.Raw, config.Backend.MaxLogLength)))
		}
		logger.Fatal("evaluation failed", fields...)
	}

	in := session.RecordInput{Transcript: text}
	in.ProblemID, _ = flags.GetString("problem-id")
	in.ProblemTitle, _ = flags.GetString("problem-title")
	in.Difficulty, _ = flags.GetString("difficulty")
	in.Duration, _ = flags.GetDuration("duration")

	report := session.NewReport(session.NewRecord(in, res))
	logger.Info("evaluation complete",
		zap.String("session_id", report.ID),
		zap.Int("overall_score", report.OverallScore),
		zap.Int("events", len(report.Evidence.Events)),
	)

	if yes, _ := flags.GetBool("yes"); yes {
		if err := printJSON(os.Stdout, report); err != nil {
			logger.Fatal("printing the report", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, report, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, report *session.Report, logger *zap.Logger) error {
	switch action {
	case PromptShowScores:
		return printScores(os.Stdout, report)
	case PromptShowEvidence:
		return printJSON(os.Stdout, report.Evidence)
	case PromptShowRedFlags:
		_, err := fmt.Fprintln(os.Stdout, report.RedFlags())
		return err
	case PromptShowCategories:
		return printJSON(os.Stdout, report.CategoryAverages)
	case PromptShowMemory:
		return printJSON(os.Stdout, report.MemoryMetrics)
	case PromptDumpToFile:
		filename, err := report.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump session to file: %w", err)
		}
		logger.Info("dumping session to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func readTranscript(path string) (string, error) {
	if strings.TrimSpace(path) == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printScores(w io.Writer, report *session.Report) error {
	for _, item := range report.Scored() {
		if _, err := fmt.Fprintf(w, "%-28s %-36s %4.1f\n", item.Category, item.Metric, item.Score); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "overall: %d/100 (session %s, %s)\n", report.OverallScore, report.ID, time.UnixMilli(report.CreatedAt).Format(time.RFC3339))
	return err
}
