package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/vmunix/marquee/internal/config"
	"github.com/vmunix/marquee/internal/migrations"
	"github.com/vmunix/marquee/internal/playback"
	"github.com/vmunix/marquee/internal/tmdb"
)

// app carries what every command needs: the loaded config, a TMDB client and
// where to write.
type app struct {
	cfg    *config.Config
	client *tmdb.Client
	log    *slog.Logger
	out    io.Writer
	json   bool
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newApp(cfg *config.Config, log *slog.Logger, out io.Writer) *app {
	client := tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithReferenceTTL(cfg.TMDB.ReferenceTTL),
		tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDB.Timeout}),
		tmdb.WithLogger(log),
	)
	return &app{cfg: cfg, client: client, log: log, out: out}
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.Discover()
}

// loadApp builds the app from the global flags.
func loadApp(cmd *cobra.Command) (*app, error) {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	a := newApp(cfg, newLogger(cmd.ErrOrStderr(), verbose), cmd.OutOrStdout())
	a.json = jsonOutput
	return a, nil
}

// openStore opens the resume store at the configured database path.
func (a *app) openStore() (*playback.SQLStore, func() error, error) {
	path := a.cfg.Database.Path
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return playback.NewSQLStore(db), db.Close, nil
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *app) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func parseCategory(s string) (tmdb.Category, error) {
	cat, err := tmdb.ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("%w (use movie or tv)", err)
	}
	return cat, nil
}
