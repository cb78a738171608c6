package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/tmdb"
	"github.com/vmunix/marquee/pkg/textmatch"
)

var genresCmd = &cobra.Command{
	Use:   "genres <movie|tv>",
	Short: "List genres for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := parseCategory(args[0])
		if err != nil {
			return err
		}
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		return a.genres(cmd.Context(), cat)
	},
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List origin countries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		return a.countries(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(countriesCmd)
}

func (a *app) genres(ctx context.Context, cat tmdb.Category) error {
	genres, err := a.client.Genres(ctx, cat)
	if err != nil {
		return fmt.Errorf("genres: %w", err)
	}

	if a.json {
		return a.printJSON(genres)
	}

	a.printf("%s genres (%d):\n\n", cat.Label(), len(genres))
	for _, g := range genres {
		a.printf("  %6d  %s\n", g.ID, g.Name)
	}
	return nil
}

func (a *app) countries(ctx context.Context) error {
	countries, err := a.client.Countries(ctx)
	if err != nil {
		return fmt.Errorf("countries: %w", err)
	}

	if a.json {
		return a.printJSON(countries)
	}

	a.printf("Countries (%d):\n\n", len(countries))
	for _, c := range countries {
		a.printf("  %s  %s\n", c.Code, c.Name)
	}
	return nil
}

// resolveGenre accepts a genre id or a genre name. Names are fuzzy matched
// and must reach medium confidence.
func resolveGenre(genres []tmdb.Genre, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.Atoi(raw); err == nil {
		for _, g := range genres {
			if g.ID == id {
				return id, nil
			}
		}
		return 0, fmt.Errorf("unknown genre id %d", id)
	}

	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	m := textmatch.Best(raw, names)
	if !m.OK(textmatch.ConfidenceMedium) {
		return 0, unknownName("genre", raw, m)
	}
	return genres[m.Index].ID, nil
}

// resolveCountry accepts an ISO 3166-1 code or a country name.
func resolveCountry(countries []tmdb.Country, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) == 2 {
		for _, c := range countries {
			if strings.EqualFold(c.Code, raw) {
				return c.Code, nil
			}
		}
	}

	names := make([]string, len(countries))
	for i, c := range countries {
		names[i] = c.Name
	}
	m := textmatch.Best(raw, names)
	if !m.OK(textmatch.ConfidenceMedium) {
		return "", unknownName("country", raw, m)
	}
	return countries[m.Index].Code, nil
}

func unknownName(kind, raw string, m textmatch.Match) error {
	if m.OK(textmatch.ConfidenceLow) {
		return fmt.Errorf("unknown %s %q (did you mean %q?)", kind, raw, m.Name)
	}
	return fmt.Errorf("unknown %s %q", kind, raw)
}
