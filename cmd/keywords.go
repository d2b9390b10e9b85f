package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/keywords"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [file]",
	Short: "Extract keywords from a job description or résumé (stdin when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		extractKeywords(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().BoolP("group", "g", false, "group keywords by category")
}

func extractKeywords(cmd *cobra.Command, args []string) {
	cfg, log := setup()

	var (
		text string
		err  error
	)
	if len(args) == 1 {
		text, err = readFile(args[0])
	} else {
		var data []byte
		data, err = io.ReadAll(cmd.InOrStdin())
		text = string(data)
	}
	if err != nil {
		log.Fatal("reading input", zap.Error(err))
	}

	_, extractor, err := newKeywordExtractor(cfg, log)
	if err != nil {
		log.Fatal("initializing", zap.Error(err))
	}

	set := extractor.Extract(text)
	log.Debug("keywords extracted", zap.Int("count", len(set)))

	group, _ := cmd.Flags().GetBool("group")
	if !group {
		fmt.Fprintln(os.Stdout, set.Join())
		return
	}

	groups := keywords.NewCategorizer(cfg.Keywords.Categories).Group(set)
	for _, cat := range keywords.Categories {
		if members := groups[cat]; len(members) > 0 {
			fmt.Fprintf(os.Stdout, "%s: %s\n", cat, strings.Join(members, ", "))
		}
	}
}
