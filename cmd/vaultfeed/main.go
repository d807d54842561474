package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vaultfeed/vaultfeed/internal/cache"
	"github.com/vaultfeed/vaultfeed/internal/config"
	"github.com/vaultfeed/vaultfeed/internal/domain"
	"github.com/vaultfeed/vaultfeed/internal/feed"
	"github.com/vaultfeed/vaultfeed/internal/listing"
	"github.com/vaultfeed/vaultfeed/internal/log"
	"github.com/vaultfeed/vaultfeed/internal/stats"
	"github.com/vaultfeed/vaultfeed/internal/store"
	"github.com/vaultfeed/vaultfeed/internal/suggest"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	search       string
	like         string
	dislike      string
	restore      string
	save         string
	saveCategory string
	download     string
	downloadAll  bool
	offline      bool
	suggest      string
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.search, "search", "", "fuzzy search the feed by title or category")
	flag.StringVar(&opts.like, "like", "", "toggle like on an item id")
	flag.StringVar(&opts.dislike, "dislike", "", "dislike an item id")
	flag.StringVar(&opts.restore, "restore", "", "remove a dislike from an item id")
	flag.StringVar(&opts.save, "save", "", "toggle save on an item id")
	flag.StringVar(&opts.saveCategory, "save-category", "", "toggle a saved category")
	flag.StringVar(&opts.download, "download", "", "toggle offline download for an item id")
	flag.BoolVar(&opts.downloadAll, "download-all", false, "download every feed item for offline use")
	flag.BoolVar(&opts.offline, "offline", false, "list items available offline")
	flag.StringVar(&opts.suggest, "suggest", "", "suggest an upload title for a category")
	flag.Parse()

	if showVersion {
		fmt.Printf("vaultfeed %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting vaultfeed", "version", Version)

	if opts.suggest != "" {
		return runSuggest(opts.suggest)
	}

	if !cfg.IsConfigured() {
		return fmt.Errorf("no listing source configured: set listing.cloud_name and listing.tag")
	}

	kv, err := store.OpenDiskKV(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer kv.Close()

	inter := store.NewInteractions(kv, logger)
	client := listing.NewClient(cfg.Listing.BaseURL, cfg.Listing.CloudName, cfg.Listing.Tag, cfg.Listing.Categories, kv, logger)
	rec := &feed.Heuristic{Prefix: cfg.Feed.RankPrefix}
	svc := feed.NewService(client, rec, inter, logger)
	mgr := cache.NewManager(kv, inter, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	applyMutations(svc, opts)

	items, err := svc.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh feed: %w", err)
	}

	switch {
	case opts.search != "":
		printItems(feed.Search(items, opts.search), svc.Interactions())
	case opts.offline:
		printItems(mgr.OfflineItems(items), svc.Interactions())
	case opts.download != "":
		return runToggleDownload(ctx, os.Stdout, mgr, inter, items, opts.download)
	case opts.downloadAll:
		runDownloadAll(ctx, mgr, items)
	default:
		printFeed(items, svc.Interactions())
	}

	return nil
}

func applyMutations(svc *feed.Service, opts options) {
	if opts.like != "" {
		svc.ToggleLike(opts.like)
	}
	if opts.dislike != "" {
		svc.Dislike(opts.dislike)
	}
	if opts.restore != "" {
		svc.Undislike(opts.restore)
	}
	if opts.save != "" {
		svc.ToggleSave(opts.save)
	}
	if opts.saveCategory != "" {
		svc.ToggleSavedCategory(opts.saveCategory)
	}
}

func runSuggest(category string) error {
	sug, err := suggest.Local{}.Suggest(context.Background(), category)
	if err != nil {
		return fmt.Errorf("failed to build suggestion: %w", err)
	}
	fmt.Println(sug.Title)
	for _, tag := range sug.Tags {
		fmt.Printf("  #%s\n", tag)
	}
	return nil
}

func runToggleDownload(ctx context.Context, w io.Writer, mgr *cache.Manager, inter domain.Interactions, items []domain.ContentItem, id string) error {
	for _, item := range items {
		if !item.Matches(id) {
			continue
		}
		// branch on the same ledger the manager toggles on, so the message
		// always matches the action even when ledger and cache diverge
		if inter.Current().Downloaded(item.ID) {
			mgr.ToggleDownload(ctx, item, nil)
			fmt.Fprintf(w, "removed %s from offline cache\n", item.ID)
			return nil
		}
		ok := mgr.ToggleDownload(ctx, item, func(f float64) {
			fmt.Fprintf(w, "\r%s %3.0f%%", item.ID, f*100)
		})
		fmt.Fprintln(w)
		if !ok {
			return fmt.Errorf("download failed for %s", item.ID)
		}
		fmt.Fprintf(w, "downloaded %s\n", item.ID)
		return nil
	}
	return fmt.Errorf("item %s: %w", id, domain.ErrItemNotFound)
}

func runDownloadAll(ctx context.Context, mgr *cache.Manager, items []domain.ContentItem) {
	done := mgr.DownloadAll(ctx, items, func(itemID string, f float64) {
		fmt.Printf("\r%s %3.0f%%", itemID, f*100)
	})
	fmt.Printf("\ndownloaded %d of %d items\n", done, len(items))
}

func printFeed(items []domain.ContentItem, state domain.InteractionState) {
	sections := feed.Partition(items)

	fmt.Println("Shorts")
	printItems(sections.ShortsHead(), state)
	if band := sections.ShortsBand(); len(band) > 0 {
		fmt.Println("More shorts")
		printItems(band, state)
	}

	fmt.Println("Longs")
	printItems(sections.LongsHead(), state)
	if band := sections.LongsBand(); len(band) > 0 {
		fmt.Println("More longs")
		printItems(band, state)
	}
}

func printItems(items []domain.ContentItem, state domain.InteractionState) {
	for _, item := range items {
		st := stats.Compute(item.ID)
		marks := ""
		if state.Liked(item.ID) {
			marks += " ♥"
		}
		if state.Saved(item.ID) {
			marks += " ⭑"
		}
		fmt.Printf("  %-14s %-40s %s views · %s likes%s\n",
			item.ID, item.Title, stats.FormatCount(st.Views), stats.FormatCount(st.Likes), marks)
	}
}
