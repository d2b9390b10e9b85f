package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/ranking"
	"github.com/spigell/ats-scorer/internal/report"
)

const (
	PromptShowRanking         = "Show ranking"
	PromptCandidatesToFile    = "Dump candidates to file"
	PromptAppendToExcludeFile = "Append dropped candidates to exclude file"
	PromptFilterStatus        = "Show filter status"
	PromptCandidateReport     = "Show candidate report"
	PromptBack                = "back"
)

var batchCmd = &cobra.Command{
	Use:   "batch [resume files or directories...]",
	Short: "Score many résumés against one job and rank them",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		batch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("job", "J", "", "plain-text job description file")
	batchCmd.Flags().StringSliceP("keywords", "k", nil, "job keywords; extracted from --job when empty")
	batchCmd.Flags().String("job-info", "", "JSON file with structured job details")
	batchCmd.Flags().StringP("exclude-file", "e", "", "file with candidates to skip; overrides ranking.exclude-file")
	batchCmd.Flags().Float64("minimum-score", -1, "drop candidates below this overall score; overrides ranking.minimum-score")
	batchCmd.Flags().StringSlice("disable-filter", nil, "names of ranking filters to disable")
	batchCmd.Flags().BoolP("auto-approve", "y", false, "print the ranking and exit without prompting")
}

func batch(cmd *cobra.Command, args []string) {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, log := setup()

	jobPath, _ := cmd.Flags().GetString("job")
	explicit, _ := cmd.Flags().GetStringSlice("keywords")
	jobInfoPath, _ := cmd.Flags().GetString("job-info")
	disabled, _ := cmd.Flags().GetStringSlice("disable-filter")
	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	if jobPath == "" && len(explicit) == 0 {
		log.Fatal("either --job or --keywords is required")
	}
	if f := cmd.Flag("exclude-file"); f.Changed {
		cfg.Ranking.ExcludeFile = f.Value.String()
	}
	if minScore, _ := cmd.Flags().GetFloat64("minimum-score"); minScore >= 0 {
		cfg.Ranking.MinimumScore = minScore
	}

	log = logger.WithFields(log, zap.String(logger.FieldJob, jobPath))
	log.Info("starting the ats-scorer batch", zap.String("version", version))

	files, err := resumeFiles(args)
	if err != nil {
		log.Fatal("listing resumes", zap.Error(err))
	}
	if len(files) == 0 {
		log.Info("exiting", zap.String("reason", "no resumes found"))
		return
	}

	eng, err := newEngine(ctx, cfg, log)
	if err != nil {
		log.Fatal("initializing", zap.Error(err))
	}

	var description string
	if jobPath != "" {
		if description, err = readFile(jobPath); err != nil {
			log.Fatal("reading job description", zap.Error(err))
		}
	}
	job, err := jobInfo(jobInfoPath)
	if err != nil {
		log.Warn("job info decoded partially", zap.Error(err))
	}
	jobKeywords := eng.jobKeywords(explicit, description)

	candidates := &ranking.Candidates{}
	for _, path := range files {
		text, err := readFile(path)
		if err != nil {
			log.Fatal("reading resume", zap.Error(err))
		}
		personal, _ := eng.personalInfo("", text)
		candidates.Items = append(candidates.Items, &ranking.Candidate{
			Name: filepath.Base(path),
			Input: ats.Input{
				ResumeText:   text,
				JobKeywords:  jobKeywords,
				PersonalInfo: personal,
				JobInfo:      job,
			},
		})
	}

	log.Info("scoring resumes", zap.Int("count", candidates.Len()), zap.Int("concurrency", cfg.Ranking.Concurrency))
	if err := ranking.ScoreAll(ctx, eng.scorer, candidates, cfg.Ranking.Concurrency); err != nil {
		log.Fatal("scoring", zap.Error(err))
	}

	all := &ranking.Candidates{Items: append([]*ranking.Candidate(nil), candidates.Items...)}

	steps := ranking.DefaultSteps()
	for _, name := range disabled {
		ranking.DisableByName(steps, name, "disabled by flag")
	}

	ranked, err := ranking.Run(ctx, &cfg.Ranking, ranking.Deps{Logger: log}, steps, candidates)
	if err != nil {
		log.Fatal("ranking failed", zap.Error(err))
	}

	if ranked.Len() == 0 {
		log.Info("no candidates left after filters")
	}

	if autoApprove {
		if err := printRanking(ranked); err != nil {
			log.Fatal("printing ranking", zap.Error(err))
		}
		return
	}

	for {
		items := []string{PromptShowRanking, PromptCandidateReport, PromptCandidatesToFile, PromptFilterStatus}
		if cfg.Ranking.ExcludeFile != "" {
			items = append(items, PromptAppendToExcludeFile)
		}
		batchPrompt := promptui.Select{
			Label: "What next?",
			Items: append(items, PromptExit),
		}

		_, action, err := batchPrompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		if err := handleBatchAction(action, log, jobPath, cfg.Ranking.ExcludeFile, steps, all, ranked); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleBatchAction(action string, log *zap.Logger, job, excludeFile string, steps []ranking.Filter, all, ranked *ranking.Candidates) error {
	switch action {
	case PromptShowRanking:
		return printRanking(ranked)
	case PromptCandidateReport:
		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(all.Names(), PromptBack),
		}
		_, name, err := candidatePrompt.Run()
		if err != nil {
			return err
		}
		if name == PromptBack {
			return nil
		}
		return candidateReport(os.Stdout, all, name, job)
	case PromptCandidatesToFile:
		filename, err := ranked.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump candidates to file: %w", err)
		}
		log.Info("dumping candidates to file", zap.String("filename", filename))
		return nil
	case PromptFilterStatus:
		for _, st := range ranking.Describe(steps) {
			log.Info("filter status",
				zap.String("name", st.Name),
				zap.Bool("enabled", st.Enabled),
				zap.String("reason", st.Reason),
				zap.Any("details", st.Details),
			)
		}
		return nil
	case PromptAppendToExcludeFile:
		return appendDropped(log, excludeFile, all, ranked)
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// appendDropped records the candidates removed by the filters in the exclude file.
func appendDropped(log *zap.Logger, excludeFile string, all, ranked *ranking.Candidates) error {
	excluded, err := ranking.LoadExcluded(excludeFile)
	if err != nil {
		return err
	}

	skip := make(map[string]bool)
	for _, name := range append(excluded.Names(), ranked.Names()...) {
		skip[name] = true
	}

	dropped := &ranking.Candidates{Items: append([]*ranking.Candidate(nil), all.Items...)}
	dropped.Exclude(func(c *ranking.Candidate) bool { return skip[c.Name] })
	if dropped.Len() == 0 {
		log.Info("nothing to append to exclude file")
		return nil
	}

	excluded.Append(dropped.ToExcluded())
	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	log.Info("appended to exclude file",
		zap.String("filename", excludeFile),
		zap.Strings("candidates", dropped.Names()),
	)
	return nil
}

// candidateReport renders the breakdown of one scored candidate.
func candidateReport(w io.Writer, c *ranking.Candidates, name, job string) error {
	cand := c.FindByName(name)
	if cand == nil {
		return fmt.Errorf("there is no such candidate %s", name)
	}
	return report.New(cand.Name, job, cand.Breakdown).Render(w)
}

func printRanking(c *ranking.Candidates) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCANDIDATE\tSCORE\tGRADE\tCOMPATIBILITY")
	for i, cand := range c.Items {
		if cand.Breakdown == nil {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t%s\n", i+1, cand.Name, cand.Breakdown.OverallScore, cand.Breakdown.Grade, cand.Breakdown.Compatibility)
	}
	return w.Flush()
}

// resumeFiles expands directories into their regular files, sorted by name.
func resumeFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var dirFiles []string
		for _, e := range entries {
			if e.Type().IsRegular() {
				dirFiles = append(dirFiles, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(dirFiles)
		files = append(files, dirFiles...)
	}
	return files, nil
}
