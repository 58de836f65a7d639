package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jselig/mentionet/pkg/metrics"
	"github.com/jselig/mentionet/pkg/pipeline"
)

// analyzeCommand creates the analyze command: build the mention network
// from the stored corpus and report metrics.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		topK         int
		kindStr      string
		exportPath   string
		imagePath    string
		selfMentions bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build the mention network from stored tweets",
		Long: `Build the directed mention network from the stored tweet corpus.

Every @mention in a tweet adds weight to the edge from its author to the
mentioned user. The command reports corpus statistics and the top users by
the chosen degree measure:

  in     times mentioned (most-mentioned users)
  out    mentions authored (most-active mentioners)
  total  both combined (default)

Use --save to export the graph as GraphML and --image to render a PNG.
A failed image render is reported but does not fail the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := metrics.ParseDegreeKind(kindStr)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				DegreeKind:   kind,
				ExportPath:   exportPath,
				ImagePath:    imagePath,
				SelfMentions: selfMentions,
			}
			opts.SetTopK(topK)
			return c.runAnalyze(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&topK, "top", "t", pipeline.DefaultTopK, "how many top users to show (0 disables the ranking)")
	cmd.Flags().StringVarP(&kindStr, "kind", "k", "total", "degree measure for the ranking: in, out, total")
	cmd.Flags().StringVarP(&exportPath, "save", "s", "", "write the graph as GraphML to this path")
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "render a PNG of the graph to this path")
	cmd.Flags().BoolVar(&selfMentions, "self-mentions", false, "count authors mentioning their own handle")

	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, opts pipeline.Options) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	opts.Logger = c.Logger
	runner := pipeline.NewRunner(st)

	spinner := newSpinnerWithContext(ctx, "Building mention network...")
	spinner.Start()
	result, err := runner.Analyze(ctx, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return err
	}
	spinner.Stop()

	printSummary(result)

	if len(result.Rankings) > 0 {
		fmt.Println()
		fmt.Println(StyleTitle.Render(rankingTitle(opts.DegreeKind, len(result.Rankings))))
		for i, entry := range result.Rankings {
			printKeyValue(fmt.Sprintf("%2d. %s", i+1, entry.Handle), fmt.Sprintf("%d", entry.Score))
		}
	}

	if opts.ExportPath != "" {
		fmt.Println()
		printSuccess("Saved graph")
		printFile(opts.ExportPath)
	}
	if opts.ImagePath != "" && len(result.Warnings) == 0 {
		printSuccess("Saved image")
		printFile(opts.ImagePath)
	}
	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	return nil
}

func printSummary(result *pipeline.Result) {
	s := result.Summary
	printInfo("Analyzed %d tweets", s.Tweets)
	printStats(s.Nodes, s.Edges, s.Skipped)
	printDetail("mentions: %d, density: %.4f", s.Mentions, s.Density)
}

func rankingTitle(kind metrics.DegreeKind, n int) string {
	switch kind {
	case metrics.DegreeIn:
		return fmt.Sprintf("Top %d most-mentioned users", n)
	case metrics.DegreeOut:
		return fmt.Sprintf("Top %d most-active mentioners", n)
	default:
		return fmt.Sprintf("Top %d users by total degree", n)
	}
}
