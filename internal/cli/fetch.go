package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jselig/mentionet/pkg/integrations/twitter"
)

// fetchCommand creates the fetch command: search the Twitter API and
// upsert the results into the document store.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		query      string
		maxResults int
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch tweets matching a query and store them",
		Long: `Fetch tweets matching a search query and store them in MongoDB.

Tweets are stored keyed by their id, so fetching the same query twice
updates existing documents instead of duplicating them. Retweets are
excluded and results are restricted to English.

Requires a Twitter bearer token (TWITTER_BEARER_TOKEN or the config file)
and a MongoDB connection (MONGODB_URI or the config file).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd, query, maxResults, noCache)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "GenAI", "search query")
	cmd.Flags().IntVarP(&maxResults, "max", "m", 100, "max tweets to fetch (up to 100 per request)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the search response cache")

	return cmd
}

func (c *CLI) runFetch(cmd *cobra.Command, query string, maxResults int, noCache bool) error {
	ctx := cmd.Context()
	// Short id correlating the log lines of this fetch run.
	runID := uuid.NewString()[:8]
	logger := c.Logger.With("run", runID)

	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	searchCache := c.newCache(ctx, cfg, noCache)
	defer searchCache.Close()

	client, err := twitter.New(cfg.Twitter.BearerToken, twitter.WithCache(searchCache))
	if err != nil {
		return err
	}

	logger.Info("Fetching tweets", "query", query, "max", maxResults)
	spinner := newSpinnerWithContext(ctx, "Searching...")
	spinner.Start()
	tweets, err := client.Search(ctx, query, maxResults)
	if err != nil {
		spinner.StopWithError("Search failed")
		return err
	}
	spinner.Stop()
	logger.Debug("search complete", "tweets", len(tweets))

	if len(tweets) == 0 {
		printInfo("No tweets matched %q, nothing to store", query)
		return nil
	}

	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	prog := newProgress(logger)
	stats, err := st.Upsert(ctx, tweets)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Stored %d tweets", len(tweets)))

	printSuccess("Fetched %d tweets for %q", len(tweets), query)
	printDetail("inserted: %d, updated: %d", stats.Inserted, stats.Updated)
	return nil
}
