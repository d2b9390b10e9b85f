package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/report"
)

const (
	PromptShowReport   = "Show report"
	PromptShowJSON     = "Show JSON"
	PromptReportToFile = "Dump report to file"
	PromptExit         = "Exit"
)

var errExit = errors.New("exit requested")

var scorePrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptShowJSON, PromptReportToFile, PromptExit},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé against a job description or keyword list",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "plain-text résumé file")
	scoreCmd.Flags().StringP("job", "J", "", "plain-text job description file")
	scoreCmd.Flags().StringSliceP("keywords", "k", nil, "job keywords; extracted from --job when empty")
	scoreCmd.Flags().String("personal-info", "", "JSON file with the candidate's personal info; extracted from the résumé when empty")
	scoreCmd.Flags().String("job-info", "", "JSON file with structured job details")
	scoreCmd.Flags().StringP("output", "o", "", "write the JSON report to this file")
	scoreCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without prompting")

	_ = scoreCmd.MarkFlagRequired("resume")
}

func score(cmd *cobra.Command) {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, log := setup()

	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")
	explicit, _ := cmd.Flags().GetStringSlice("keywords")
	personalPath, _ := cmd.Flags().GetString("personal-info")
	jobInfoPath, _ := cmd.Flags().GetString("job-info")
	output, _ := cmd.Flags().GetString("output")
	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	if jobPath == "" && len(explicit) == 0 {
		log.Fatal("either --job or --keywords is required")
	}

	log = logger.WithCommonFields(log, resumePath, jobPath)
	log.Info("starting the ats-scorer", zap.String("version", version))

	eng, err := newEngine(ctx, cfg, log)
	if err != nil {
		log.Fatal("initializing", zap.Error(err))
	}

	resumeText, err := readFile(resumePath)
	if err != nil {
		log.Fatal("reading resume", zap.Error(err))
	}

	var description string
	if jobPath != "" {
		if description, err = readFile(jobPath); err != nil {
			log.Fatal("reading job description", zap.Error(err))
		}
	}

	personal, err := eng.personalInfo(personalPath, resumeText)
	if err != nil {
		log.Warn("personal info decoded partially", zap.Error(err))
	}

	job, err := jobInfo(jobInfoPath)
	if err != nil {
		log.Warn("job info decoded partially", zap.Error(err))
	}

	in := ats.Input{
		ResumeText:   resumeText,
		JobKeywords:  eng.jobKeywords(explicit, description),
		PersonalInfo: personal,
		JobInfo:      job,
	}
	log.Debug("job keywords", zap.Strings("keywords", in.JobKeywords))

	breakdown, err := eng.scorer.Score(ctx, in)
	if err != nil {
		log.Fatal("scoring", zap.Error(err))
	}

	r := report.New(resumePath, jobPath, breakdown)
	log.Info("resume scored",
		zap.String("report_id", r.ID.String()),
		zap.Float64("overall_score", breakdown.OverallScore),
		zap.String("grade", breakdown.Grade),
	)

	if output != "" {
		if err := r.ToFile(output); err != nil {
			log.Fatal("writing report", zap.Error(err))
		}
		log.Info("report written", zap.String("filename", output))
	}

	if autoApprove {
		if err := r.Render(os.Stdout); err != nil {
			log.Fatal("rendering report", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := scorePrompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		if err := handleScoreAction(action, log, r); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleScoreAction(action string, log *zap.Logger, r *report.Report) error {
	switch action {
	case PromptShowReport:
		return r.Render(os.Stdout)
	case PromptShowJSON:
		return r.WriteJSON(os.Stdout)
	case PromptReportToFile:
		filename, err := r.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		log.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
