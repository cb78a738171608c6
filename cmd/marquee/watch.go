package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/detail"
	"github.com/vmunix/marquee/internal/playback"
	"github.com/vmunix/marquee/internal/tmdb"
)

var watchCmd = &cobra.Command{
	Use:   "watch <movie|tv> <id>",
	Short: "Resolve a streaming source",
	Long: `Resolve a streaming source for a movie or a series episode.

Series resume from the last watched episode. --next and --prev step
across season boundaries.

Examples:
  marquee watch movie 550
  marquee watch tv 1399                      # resume
  marquee watch tv 1399 --season 2 --episode 3
  marquee watch tv 1399 --next --server 1`,
	Args: cobra.ExactArgs(2),
	RunE: runWatchCmd,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Int("season", 0, "Season number")
	watchCmd.Flags().Int("episode", 0, "Episode number")
	watchCmd.Flags().Int("server", 0, "Mirror index (see 'marquee config test')")
	watchCmd.Flags().Bool("next", false, "Advance to the next episode")
	watchCmd.Flags().Bool("prev", false, "Go back to the previous episode")
	watchCmd.MarkFlagsMutuallyExclusive("next", "prev")
}

type watchOptions struct {
	season  int
	episode int
	server  int
	next    bool
	prev    bool
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	cat, err := parseCategory(args[0])
	if err != nil {
		return err
	}
	var opts watchOptions
	opts.season, _ = cmd.Flags().GetInt("season")
	opts.episode, _ = cmd.Flags().GetInt("episode")
	opts.server, _ = cmd.Flags().GetInt("server")
	opts.next, _ = cmd.Flags().GetBool("next")
	opts.prev, _ = cmd.Flags().GetBool("prev")

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	return a.watch(cmd.Context(), cat, args[1], opts, store)
}

func (a *app) watch(ctx context.Context, cat tmdb.Category, rawID string, opts watchOptions, store playback.Store) error {
	id, err := detail.ParseID(rawID)
	if err != nil {
		return err
	}

	var nav *playback.Navigator
	if cat == tmdb.Movie {
		nav = playback.NewMovieNavigator(id, a.cfg.Mirrors, playback.WithLogger(a.log))
		if err := nav.SelectServer(ctx, opts.server); err != nil {
			return err
		}
		return a.printPlayer(nav.State())
	}

	series, err := a.client.Detail(ctx, cat, id)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	nav, err = playback.NewSeriesNavigator(series, a.client, store, a.cfg.Mirrors, playback.WithLogger(a.log))
	if err != nil {
		return err
	}
	if err := nav.Start(ctx); err != nil {
		return err
	}

	if opts.season > 0 {
		if err := nav.SelectSeason(ctx, opts.season); err != nil {
			return err
		}
	}
	if err := nav.SelectServer(ctx, opts.server); err != nil {
		return err
	}
	if opts.episode > 0 {
		if err := nav.SelectEpisode(ctx, opts.episode); err != nil {
			return err
		}
	}
	if nav.Phase() != playback.EpisodeSelected {
		if err := nav.Play(ctx); err != nil {
			return err
		}
		if opts.server != 0 {
			if err := nav.SelectServer(ctx, opts.server); err != nil {
				return err
			}
		}
	}

	switch {
	case opts.next:
		err = nav.Next(ctx)
	case opts.prev:
		err = nav.Previous(ctx)
	}
	if err != nil {
		return err
	}

	return a.printPlayer(nav.State())
}

func (a *app) printPlayer(st playback.State) error {
	if a.json {
		return a.printJSON(st)
	}

	server := fmt.Sprintf("#%d", st.Server)
	if st.Server < len(st.Servers) {
		server = st.Servers[st.Server]
	}

	if st.Kind == tmdb.TV {
		title := ""
		for _, ep := range st.Episodes {
			if ep.EpisodeNumber == st.Episode {
				title = ep.Name
				break
			}
		}
		a.printf("S%02dE%02d %s (server: %s)\n", st.Season, st.Episode, title, server)
	} else {
		a.printf("Movie %d (server: %s)\n", st.ID, server)
	}
	a.println(st.URL)

	if st.Kind == tmdb.TV {
		nav := []string{}
		if st.HasPrevious {
			nav = append(nav, "--prev")
		}
		if st.HasNext {
			nav = append(nav, "--next")
		}
		if len(nav) > 0 {
			a.printf("\nAlso available: %s\n", strings.Join(nav, " "))
		}
	}
	return nil
}
