package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/route"
	"github.com/vmunix/marquee/internal/tmdb"
)

var browseCmd = &cobra.Command{
	Use:   "browse <movie|tv>",
	Short: "List a catalog by type, genre or country",
	Long: `List a catalog by type, genre or origin country.

Genres and countries accept ids, codes or names.

Examples:
  marquee browse movie
  marquee browse tv --type top_rated
  marquee browse movie --genre "sci-fi" --country japan
  marquee browse movie --genre 28 --pages 3`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowseCmd,
}

var searchCmd = &cobra.Command{
	Use:   "search [movie|tv] <keyword>...",
	Short: "Search titles",
	Long: `Search titles. Without a category, movies and series are searched together.

Examples:
  marquee search "fight club"
  marquee search tv game of thrones`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().String("type", "", "Listing type (popular, top_rated, now_playing, upcoming, on_the_air)")
	browseCmd.Flags().String("genre", "", "Genre id or name")
	browseCmd.Flags().String("country", "", "Origin country code or name")
	browseCmd.Flags().Int("pages", 1, "Number of pages to load")

	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("genre", "", "Genre id or name (category search only)")
	searchCmd.Flags().Int("pages", 1, "Number of pages to load")
}

type browseOptions struct {
	category tmdb.Category
	typ      tmdb.ContentType
	keyword  string
	genre    string
	country  string
	pages    int
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	cat, err := parseCategory(args[0])
	if err != nil {
		return err
	}
	typ, _ := cmd.Flags().GetString("type")
	genre, _ := cmd.Flags().GetString("genre")
	country, _ := cmd.Flags().GetString("country")
	pages, _ := cmd.Flags().GetInt("pages")

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	return a.browse(cmd.Context(), browseOptions{
		category: cat,
		typ:      tmdb.ContentType(typ),
		genre:    genre,
		country:  country,
		pages:    pages,
	})
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	var cat tmdb.Category
	if len(args) > 1 {
		if c, err := tmdb.ParseCategory(args[0]); err == nil {
			cat = c
			args = args[1:]
		}
	}
	genre, _ := cmd.Flags().GetString("genre")
	pages, _ := cmd.Flags().GetInt("pages")
	if genre != "" && cat == "" {
		return fmt.Errorf("--genre needs a category")
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	return a.browse(cmd.Context(), browseOptions{
		category: cat,
		keyword:  strings.Join(args, " "),
		genre:    genre,
		pages:    pages,
	})
}

func (a *app) browse(ctx context.Context, opts browseOptions) error {
	if opts.typ != "" && !opts.typ.ValidFor(opts.category) {
		return fmt.Errorf("%w: %s/%s", catalog.ErrInvalidType, opts.category, opts.typ)
	}

	addr := route.Address{Category: opts.category, Type: opts.typ}
	if strings.TrimSpace(opts.keyword) != "" {
		addr = route.Search(opts.category, strings.TrimSpace(opts.keyword))
	}

	if opts.genre != "" {
		genres, err := a.client.Genres(ctx, opts.category)
		if err != nil {
			return fmt.Errorf("genres: %w", err)
		}
		id, err := resolveGenre(genres, opts.genre)
		if err != nil {
			return err
		}
		addr = addr.WithGenre(id)
	}

	browserOpts := []catalog.Option{catalog.WithLogger(a.log)}
	if opts.country != "" {
		countries, err := a.client.Countries(ctx)
		if err != nil {
			return fmt.Errorf("countries: %w", err)
		}
		code, err := resolveCountry(countries, opts.country)
		if err != nil {
			return err
		}
		browserOpts = append(browserOpts, catalog.WithCountry(code))
	}

	b := catalog.NewBrowser(a.client, browserOpts...)
	if err := b.Open(ctx, addr); err != nil {
		return err
	}

	for i := 1; i < opts.pages; i++ {
		if !b.LoadMore(ctx) {
			break
		}
	}

	st := b.State()
	if st.Error != "" && len(st.Items) == 0 {
		return fmt.Errorf("%s: %s", st.Title, st.Error)
	}

	if a.json {
		return a.printJSON(st)
	}
	a.printState(st)
	return nil
}

func (a *app) printState(st catalog.State) {
	if len(st.Items) == 0 {
		a.printf("%s: no results\n", st.Title)
		return
	}

	a.printf("%s (page %d of %d, %d results):\n\n", st.Title, st.Page, st.TotalPages, st.TotalResults)
	a.printf("  # │ %8s │ %-42s │ %4s │ %s\n", "ID", "TITLE", "YEAR", "RATING")
	a.println("────┼──────────┼────────────────────────────────────────────┼──────┼───────")

	for i, it := range st.Items {
		year := "    "
		if y := it.Year(); y > 0 {
			year = fmt.Sprintf("%4d", y)
		}
		title := truncate(it.DisplayTitle(), 42)
		if it.MediaType != "" {
			title = truncate(fmt.Sprintf("%s [%s]", it.DisplayTitle(), it.MediaType), 42)
		}
		a.printf(" %2d │ %8d │ %-42s │ %s │ %4.1f\n", i+1, it.ID, title, year, it.VoteAverage)
	}

	if st.HasMore {
		a.printf("\nMore available: use --pages %d\n", st.Page+1)
	}
	if st.Error != "" {
		a.printf("\nWarning: %s\n", st.Error)
	}
}
