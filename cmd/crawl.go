package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/camden-git/civicarchive/config"
	"github.com/camden-git/civicarchive/database"
	"github.com/camden-git/civicarchive/repository"
	"github.com/camden-git/civicarchive/scraper"
	"github.com/spf13/cobra"
)

var (
	crawlStart       int64
	crawlEnd         int64
	crawlStep        int64
	crawlIncludeBody bool
	crawlCommitEvery int
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl a range of resolution ids from the records portal",
	Long: `Crawl fetches resolution pages over a contiguous numeric id range,
parses each one, resolves voter and vote-type names to stable identities,
and stores the resulting aggregates.

Already recorded ids are skipped, so an interrupted crawl can simply be
restarted with the same range. Staged records are committed in batches;
progress since the last batch commit is re-attempted on the next run.

Examples:
  # Crawl ids 20000-30000
  ./civicarchive crawl --start 20000 --end 30000

  # Same range, skipping the full text body, committing every 500 ids
  ./civicarchive crawl --start 20000 --end 30000 --include-body=false --commit-every 500`,
	Run: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().Int64Var(&crawlStart, "start", 0, "First resolution id (inclusive), overrides CRAWL_START")
	crawlCmd.Flags().Int64Var(&crawlEnd, "end", 0, "Last resolution id (exclusive), overrides CRAWL_END")
	crawlCmd.Flags().Int64Var(&crawlStep, "step", 0, "Id increment, overrides CRAWL_STEP")
	crawlCmd.Flags().BoolVar(&crawlIncludeBody, "include-body", true, "Extract the full text body, overrides INCLUDE_BODY")
	crawlCmd.Flags().IntVar(&crawlCommitEvery, "commit-every", 0, "Commit staged records every N ids, overrides COMMIT_EVERY")
}

func runCrawl(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if cmd.Flags().Changed("start") {
		cfg.CrawlStart = crawlStart
	}
	if cmd.Flags().Changed("end") {
		cfg.CrawlEnd = crawlEnd
	}
	if cmd.Flags().Changed("step") {
		cfg.CrawlStep = crawlStep
	}
	if cmd.Flags().Changed("include-body") {
		cfg.IncludeBody = crawlIncludeBody
	}
	if cmd.Flags().Changed("commit-every") {
		cfg.CommitEvery = crawlCommitEvery
	}

	if cfg.BaseURL == "" {
		log.Fatal("FATAL: IQM_BASE_URL environment variable is required")
	}
	if cfg.CrawlEnd <= cfg.CrawlStart {
		log.Fatalf("FATAL: invalid crawl range [%d, %d)", cfg.CrawlStart, cfg.CrawlEnd)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	client, err := scraper.NewClient(cfg.BaseURL)
	if err != nil {
		log.Fatalf("FATAL: Failed to create portal client: %v", err)
	}

	resolutionRepo := repository.NewResolutionRepository(db)
	personRepo := repository.NewPersonRepository(db)
	voteTypeRepo := repository.NewVoteTypeRepository(db)

	resolver, err := scraper.NewIdentityResolver(personRepo, voteTypeRepo)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize identity resolver: %v", err)
	}

	crawler := scraper.NewCrawler(client, resolutionRepo, resolver, cfg.IncludeBody, cfg.CommitEvery)

	stats, err := crawler.Run(ctx, cfg.CrawlStart, cfg.CrawlEnd, cfg.CrawlStep)
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Crawl cancelled")
			os.Exit(1)
		}
		log.Fatalf("Crawl failed: %v", err)
	}
	if stats.Failed > 0 {
		os.Exit(1)
	}
}
