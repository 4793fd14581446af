package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jotkit/jot/internal/config"
	"github.com/jotkit/jot/internal/domain/entry"
	"github.com/jotkit/jot/internal/domain/search"
	"github.com/jotkit/jot/internal/sqlite"
)

func main() {
	app := &cli.Command{
		Name:  "jot",
		Usage: "A local journal with searchable entries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database file path",
				Value: defaultDBPath(),
			},
			&cli.StringFlag{
				Name:  "scope",
				Usage: "Journal scope to operate on",
			},
		},
		Commands: []*cli.Command{
			AddCommand(),
			ListCommand(),
			SearchCommand(),
			ShowCommand(),
			DeleteCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("JOT_DB_PATH"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "jot.db"
	}
	return filepath.Join(home, ".local", "share", "jot", "jot.db")
}

type app struct {
	db      *sqlite.DB
	entries *entry.Service
	search  *sqlite.SearchRepository
}

func openApp(c *cli.Command) (*app, error) {
	path := c.String("db")
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &app{
		db:      db,
		entries: entry.NewService(sqlite.NewEntryRepository(db), logger),
		search:  sqlite.NewSearchRepository(db),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// AddCommand creates the add command
func AddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a new entry",
		ArgsUsage: "[content]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "title",
				Usage: "Entry title",
			},
			&cli.StringSliceFlag{
				Name:  "tag",
				Usage: "Tag the entry (repeatable)",
			},
			&cli.IntFlag{
				Name:  "mood",
				Usage: "Mood, 1 (sad) to 5 (happy)",
			},
			&cli.BoolFlag{
				Name:  "favorite",
				Usage: "Mark the entry as a favorite",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			content := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if content == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				content = strings.TrimSpace(string(data))
			}

			a, err := openApp(c)
			if err != nil {
				return err
			}
			defer a.Close()

			req := entry.CreateRequest{
				ScopeID:  c.String("scope"),
				Title:    c.String("title"),
				Content:  content,
				Tags:     c.StringSlice("tag"),
				Favorite: c.Bool("favorite"),
			}
			if c.IsSet("mood") {
				mood := c.Int("mood")
				req.Mood = &mood
			}

			e, err := a.entries.Create(ctx, req)
			if err != nil {
				return err
			}
			fmt.Println(metaStyle.Render("created " + e.ID))
			return nil
		},
	}
}

// ListCommand creates the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List entries, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "archived",
				Usage: "Include archived entries",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := openApp(c)
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.entries.List(ctx, entry.ListOptions{
				ScopeID:         c.String("scope"),
				IncludeArchived: c.Bool("archived"),
				Limit:           c.Int("limit"),
			})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println(noDataStyle.Render("No entries yet. Try: jot add \"first thought\""))
				return nil
			}
			for _, e := range entries {
				printEntrySummary(e)
			}
			return nil
		},
	}
}

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search entries; tag:, mood:, date: and is: tokens are understood",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Read queries from stdin, one per line, and search as you type",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := openApp(c)
			if err != nil {
				return err
			}
			defer a.Close()

			if c.Bool("interactive") {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				return runInteractiveSearch(ctx, a, c.String("scope"), c.Int("limit"), cfg.Search.Debounce())
			}

			raw := strings.Join(c.Args().Slice(), " ")
			q := search.Parse(raw)
			records, err := a.search.Search(ctx, q, c.String("scope"), c.Int("limit"), 0)
			if err != nil {
				return err
			}
			printSearchResults(records)
			return nil
		},
	}
}

// runInteractiveSearch reads query lines from stdin and drives the search
// coordinator, so typing quickly only dispatches the settled query.
func runInteractiveSearch(ctx context.Context, a *app, scopeID string, limit int, debounce time.Duration) error {
	executor := search.ExecutorFunc(func(ctx context.Context, q search.StructuredQuery, scope string) ([]search.MatchRecord, error) {
		return a.search.Search(ctx, q, scope, limit, 0)
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coord := search.NewCoordinator(executor, logger,
		search.WithDebounce(debounce),
		search.WithScope(scopeID),
		search.WithObserver(func(snap search.Snapshot) {
			switch snap.Status {
			case search.StatusSuccess:
				printSearchResults(snap.Results)
			case search.StatusError:
				fmt.Println(noDataStyle.Render("search failed: " + snap.Err))
			}
		}),
	)
	defer coord.Close()

	fmt.Println(metaStyle.Render("type a query and press enter (ctrl-d to quit)"))
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		coord.SetQueryText(scanner.Text())
	}
	return scanner.Err()
}

// ShowCommand creates the show command
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single entry",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("entry id required")
			}

			a, err := openApp(c)
			if err != nil {
				return err
			}
			defer a.Close()

			e, err := a.entries.Get(ctx, id)
			if err != nil {
				return err
			}
			printEntryDetail(*e)
			return nil
		},
	}
}

// DeleteCommand creates the delete command
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an entry",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("entry id required")
			}

			a, err := openApp(c)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.entries.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println(metaStyle.Render("deleted " + id))
			return nil
		},
	}
}
