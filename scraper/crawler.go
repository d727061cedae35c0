package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/camden-git/civicarchive/models"
	"github.com/camden-git/civicarchive/repository"
	"github.com/google/uuid"
)

// Fetcher retrieves the raw document text for one resolution id.
type Fetcher interface {
	Fetch(ctx context.Context, resolutionID int64) (string, error)
}

// CrawlStats tracks the outcome of one crawl run
type CrawlStats struct {
	Processed int // ids attempted (skips excluded)
	Archived  int
	NotFound  int
	Skipped   int
	Failed    int
}

// Crawler drives the pipeline across a contiguous id range: fetch, parse,
// normalize, resolve identities, build the aggregate, and stage it for a
// batched commit. Processing is strictly sequential; one document is fully
// staged before the next id is attempted.
type Crawler struct {
	fetcher     Fetcher
	resolutions repository.ResolutionRepositoryInterface
	resolver    *IdentityResolver
	includeBody bool
	commitEvery int
	logger      *log.Logger
	errLogger   *log.Logger
}

// NewCrawler creates a new Crawler
func NewCrawler(fetcher Fetcher, resolutions repository.ResolutionRepositoryInterface, resolver *IdentityResolver, includeBody bool, commitEvery int) *Crawler {
	if commitEvery <= 0 {
		commitEvery = 1000
	}
	return &Crawler{
		fetcher:     fetcher,
		resolutions: resolutions,
		resolver:    resolver,
		includeBody: includeBody,
		commitEvery: commitEvery,
		logger:      log.New(os.Stdout, "", log.LstdFlags),
		errLogger:   log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// Run crawls the id range [start, end) with the given step. Already
// recorded ids are skipped, so an interrupted run can simply be restarted.
// Staged aggregates are committed every commitEvery attempted ids and once
// more at the end; the final commit runs no matter how the loop ended, so
// partial progress up to the last commit boundary always survives. A store
// failure aborts the run; per-document failures are logged and skipped.
func (c *Crawler) Run(ctx context.Context, start, end, step int64) (*CrawlStats, error) {
	if step <= 0 {
		return nil, fmt.Errorf("invalid crawl step %d", step)
	}

	runID := uuid.New()
	c.logger.Printf("crawl run %s: range [%d, %d) step %d", runID, start, end, step)

	recordedIDs, err := c.resolutions.ListIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to load recorded resolution ids: %w", err)
	}
	recorded := make(map[int64]struct{}, len(recordedIDs))
	for _, id := range recordedIDs {
		recorded[id] = struct{}{}
	}
	c.logger.Printf("crawl run %s: %d resolutions already recorded", runID, len(recorded))

	stats := &CrawlStats{}
	var staged []*models.Resolution
	var runErr error
	sinceCommit := 0

	for id := start; id < end; id += step {
		if ctx.Err() != nil {
			runErr = ctx.Err()
			break
		}

		if _, ok := recorded[id]; ok {
			stats.Skipped++
			continue
		}
		stats.Processed++

		raw, err := c.fetcher.Fetch(ctx, id)
		if err != nil {
			c.errLogger.Printf("resolution %d: fetch failed: %v", id, err)
			stats.Failed++
		} else {
			resolution, err := c.processDocument(raw, id)
			var structural *StructuralError
			switch {
			case err == nil:
				staged = append(staged, resolution)
				stats.Archived++
			case errors.Is(err, ErrResolutionNotFound):
				c.logger.Printf("resolution %d: no document", id)
				stats.NotFound++
			case errors.As(err, &structural):
				c.errLogger.Print(structural.Error())
				stats.Failed++
			default:
				// identity or store failure; nothing past this point can be
				// trusted, stop iterating
				runErr = fmt.Errorf("resolution %d: %w", id, err)
				c.errLogger.Printf("aborting crawl: %v", runErr)
			}
		}
		if runErr != nil {
			break
		}

		sinceCommit++
		if sinceCommit >= c.commitEvery {
			if err := c.flush(&staged); err != nil {
				runErr = err
				break
			}
			sinceCommit = 0
		}
	}

	// best-effort save of whatever is staged, regardless of how the loop
	// terminated
	if err := c.flush(&staged); err != nil {
		c.errLogger.Printf("final commit failed: %v", err)
		if runErr == nil {
			runErr = err
		}
	}

	c.printSummary(runID.String(), stats)
	return stats, runErr
}

// processDocument runs one raw document through the full pipeline and
// returns the assembled aggregate.
func (c *Crawler) processDocument(raw string, resolutionID int64) (*models.Resolution, error) {
	parsed, err := ParseResolution(raw, resolutionID, c.includeBody)
	if err != nil {
		return nil, err
	}

	tallies := make([]NormalizedVote, 0, len(parsed.Meetings))
	identities := make([]*VoteIdentities, 0, len(parsed.Meetings))
	for _, meeting := range parsed.Meetings {
		tally := NormalizeVoteRecord(meeting.VoteRows)
		// a vote record without its mover row is a malformed document, not
		// an identity to mint; fail the document before any store write
		if tally.Mover == "" {
			return nil, structuralErr(resolutionID, "vote record Mover row", "")
		}
		resolved, err := c.resolver.ResolveVoteRecord(tally)
		if err != nil {
			return nil, err
		}
		tallies = append(tallies, tally)
		identities = append(identities, resolved)
	}

	return BuildResolution(parsed, tallies, identities)
}

// flush commits the staged aggregates in one transaction and empties the
// stage.
func (c *Crawler) flush(staged *[]*models.Resolution) error {
	if len(*staged) == 0 {
		return nil
	}
	if err := c.resolutions.CreateBatch(*staged); err != nil {
		return err
	}
	c.logger.Printf("committed %d resolutions", len(*staged))
	*staged = (*staged)[:0]
	return nil
}

func (c *Crawler) printSummary(runID string, stats *CrawlStats) {
	c.logger.Println("")
	c.logger.Printf("=== Crawl Summary (%s) ===", runID)
	c.logger.Printf("Attempted:  %d", stats.Processed)
	c.logger.Printf("Archived:   %d", stats.Archived)
	c.logger.Printf("Not found:  %d", stats.NotFound)
	c.logger.Printf("Skipped:    %d (already recorded)", stats.Skipped)
	c.logger.Printf("Failed:     %d", stats.Failed)
}
