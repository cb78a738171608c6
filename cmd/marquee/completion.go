package main

import (
	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/tmdb"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for marquee.

  $ source <(marquee completion bash)
  $ marquee completion zsh > "${fpath[1]}/_marquee"
  $ marquee completion fish > ~/.config/fish/completions/marquee.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

// completeCategory completes the leading <movie|tv> argument.
func completeCategory(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{string(tmdb.Movie), string(tmdb.TV)}, cobra.ShellCompDirectiveNoFileComp
}

// completeType completes --type for the category already typed.
func completeType(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, t := range tmdb.TypesFor(tmdb.Category(args[0])) {
		out = append(out, string(t))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(completionCmd)

	for _, c := range []*cobra.Command{browseCmd, genresCmd, detailCmd, trailerCmd, watchCmd} {
		c.ValidArgsFunction = completeCategory
	}
	_ = browseCmd.RegisterFlagCompletionFunc("type", completeType)
}
