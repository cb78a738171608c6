package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/detail"
	"github.com/vmunix/marquee/internal/tmdb"
)

var detailCmd = &cobra.Command{
	Use:   "detail <movie|tv> <id>",
	Short: "Show a title with cast and similar titles",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := parseCategory(args[0])
		if err != nil {
			return err
		}
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		return a.detail(cmd.Context(), cat, args[1])
	},
}

var trailerCmd = &cobra.Command{
	Use:   "trailer <movie|tv> <id>",
	Short: "Print the trailer embed URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := parseCategory(args[0])
		if err != nil {
			return err
		}
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		return a.trailer(cmd.Context(), cat, args[1])
	},
}

func init() {
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(trailerCmd)
}

func (a *app) detail(ctx context.Context, cat tmdb.Category, rawID string) error {
	v := detail.NewView(a.client, detail.WithLogger(a.log))
	res := v.Load(ctx, cat, rawID)

	if a.json {
		if err := a.printJSON(res); err != nil {
			return err
		}
	}
	if res.Redirected() {
		return fmt.Errorf("%s/%s %s (browse %s instead)", cat, rawID, res.Reason, res.Redirect)
	}
	if a.json {
		return nil
	}

	a.printDetail(res)
	return nil
}

func (a *app) printDetail(res *detail.Result) {
	d := res.Item

	header := d.DisplayTitle()
	if y := d.Year(); y > 0 {
		header = fmt.Sprintf("%s (%d)", header, y)
	}
	a.println(header)
	if d.Tagline != "" {
		a.printf("  %s\n", d.Tagline)
	}
	a.println()

	a.printf("  Rating:   %.1f\n", d.VoteAverage)
	if d.Runtime > 0 {
		a.printf("  Runtime:  %dh %02dm\n", d.Runtime/60, d.Runtime%60)
	}
	if len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		a.printf("  Genres:   %s\n", strings.Join(names, ", "))
	}
	if d.PosterPath != "" {
		a.printf("  Poster:   %s\n", tmdb.ImageURL(tmdb.SizeW500, d.PosterPath))
	}

	if d.Overview != "" {
		a.printf("\n%s\n", d.Overview)
	}

	if len(res.Cast) > 0 {
		a.println("\nCast")
		for _, c := range res.Cast {
			if c.Character != "" {
				a.printf("  %s as %s\n", c.Name, c.Character)
			} else {
				a.printf("  %s\n", c.Name)
			}
		}
	}

	if len(d.Seasons) > 0 {
		a.println("\nSeasons")
		for _, s := range d.Seasons {
			a.printf("  %2d  %-24s %3d episodes\n", s.SeasonNumber, truncate(s.Name, 24), s.EpisodeCount)
		}
	}

	if len(res.Similar) > 0 {
		a.println("\nSimilar")
		for _, it := range res.Similar {
			a.printf("  %8d  %s\n", it.ID, it.DisplayTitle())
		}
	}
}

func (a *app) trailer(ctx context.Context, cat tmdb.Category, rawID string) error {
	v := detail.NewView(a.client, detail.WithLogger(a.log))
	url, err := v.Trailer(ctx, cat, rawID)
	switch {
	case errors.Is(err, tmdb.ErrNoTrailer):
		if a.json {
			return a.printJSON(map[string]string{"url": ""})
		}
		a.println("No trailer available")
		return nil
	case err != nil:
		return err
	}

	if a.json {
		return a.printJSON(map[string]string{"url": url})
	}
	a.println(url)
	return nil
}
