package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jselig/mentionet/pkg/metrics"
	"github.com/jselig/mentionet/pkg/pipeline"
)

// topCommand creates the top command: show or browse the ranking without
// exporting anything.
func (c *CLI) topCommand() *cobra.Command {
	var (
		topK        int
		kindStr     string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most-connected users in the mention network",
		Long: `Show the most-connected users in the stored mention network.

With --interactive, opens a browser where i/o/t switch between the degree
measures (times mentioned, mentions authored, total) without re-reading
the corpus.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := metrics.ParseDegreeKind(kindStr)
			if err != nil {
				return err
			}
			return c.runTop(cmd, topK, kind, interactive)
		},
	}

	cmd.Flags().IntVarP(&topK, "top", "t", pipeline.DefaultTopK, "how many users to show")
	cmd.Flags().StringVarP(&kindStr, "kind", "k", "total", "degree measure: in, out, total")
	cmd.Flags().BoolVarP(&interactive, "interactive", "I", false, "browse rankings interactively")

	return cmd
}

func (c *CLI) runTop(cmd *cobra.Command, topK int, kind metrics.DegreeKind, interactive bool) error {
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

	opts := pipeline.Options{DegreeKind: kind, Logger: c.Logger}
	opts.SetTopK(topK)

	spinner := newSpinnerWithContext(ctx, "Building mention network...")
	spinner.Start()
	result, err := pipeline.NewRunner(st).Analyze(ctx, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return err
	}
	spinner.Stop()

	if result.Summary.Nodes == 0 {
		printInfo("The stored corpus contains no mentions yet")
		return nil
	}

	if interactive {
		model := newRankingModel(result.Graph, topK, kind)
		_, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
		return err
	}

	fmt.Println(StyleTitle.Render(rankingTitle(kind, len(result.Rankings))))
	for i, entry := range result.Rankings {
		printKeyValue(fmt.Sprintf("%2d. %s", i+1, entry.Handle), fmt.Sprintf("%d", entry.Score))
	}
	return nil
}
