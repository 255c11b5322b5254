package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/kzmaps/internal/config"
	"github.com/pfrederiksen/kzmaps/internal/globalmap"
	"github.com/pfrederiksen/kzmaps/internal/kz"
	"github.com/pfrederiksen/kzmaps/internal/logger"
	"github.com/pfrederiksen/kzmaps/internal/timefmt"
	"github.com/pfrederiksen/kzmaps/internal/workshop"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitNotFound = 2
)

// options are the flags shared by every subcommand
type options struct {
	format  string
	verbose bool
	all     bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "kzmaps",
		Short: "Look up global KZ maps",
		Long: `A CLI tool to look up Counter-Strike KZ maps.
Merges map data from the GlobalAPI and the SchnoseAPI into one record per map.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text, json or yaml")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newMapsCmd(opts),
		newSearchCmd(opts),
		newTimeCmd(opts),
		newWorkshopCmd(opts),
	)

	return cmd
}

// setup validates shared flags, loads configuration and points the default
// logger at logOut
func (o *options) setup(logOut io.Writer) (*config.Config, OutputFormat, error) {
	format := OutputFormat(strings.ToLower(o.format))
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return nil, "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", o.format)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Level()
	if o.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, logOut))

	return cfg, format, nil
}

// fetch aggregates maps using the configured upstream clients
func (o *options) fetch(ctx context.Context, cfg *config.Config) ([]globalmap.GlobalMap, error) {
	maps, err := globalmap.Fetch(ctx, !o.all, cfg.GlobalAPI(), cfg.SchnoseAPI())
	logger.Debug("Fetch metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
	if err != nil {
		return nil, fmt.Errorf("fetching maps: %w", err)
	}
	return maps, nil
}

func newMapsCmd(opts *options) *cobra.Command {
	var (
		sortBy string
		mode   string
		tier   int
	)

	cmd := &cobra.Command{
		Use:   "maps",
		Short: "List maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, format, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			order := SortOrder(strings.ToLower(sortBy))
			if !order.Valid() {
				return fmt.Errorf("invalid sort order: %s (must be 'name', 'tier', 'id' or 'created')", sortBy)
			}

			var modeFilter *kz.Mode
			if mode != "" {
				m, err := parseMode(mode)
				if err != nil {
					return err
				}
				modeFilter = &m
			}

			maps, err := opts.fetch(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			maps = filterMaps(maps, modeFilter, kz.Tier(tier))
			sortMaps(maps, order)

			return WriteMaps(cmd.OutOrStdout(), maps, format, opts.verbose)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "Include maps that are not validated")
	cmd.Flags().StringVar(&sortBy, "sort", string(SortByName), "Sort by: name, tier, id or created")
	cmd.Flags().StringVar(&mode, "mode", "", "Only maps with a leaderboard in this mode (kzt, skz, vnl)")
	cmd.Flags().IntVar(&tier, "tier", 0, "Only maps of this tier (1-7)")

	return cmd
}

func newSearchCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <name|id>",
		Short: "Fuzzy-search maps by name, or look one up by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, format, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			maps, err := opts.fetch(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			ident := kz.ParseMapIdentifier(args[0])
			var results []globalmap.GlobalMap
			if ident.IsID() {
				if m, ok := globalmap.FuzzySearch(maps, ident); ok {
					results = append(results, m)
				}
			} else {
				results = bestFirst(globalmap.ScoreMatches(ident.Name, maps), limit)
			}

			if len(results) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "No map matches %q\n", args[0])
				return errNotFound
			}

			return WriteMaps(cmd.OutOrStdout(), results, format, opts.verbose)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "Include maps that are not validated")
	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of matches to show (0 for all)")

	return cmd
}

func newTimeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "time <seconds>",
		Short: "Format a run time given in seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseFloat(args[0], 64)
			if err != nil || seconds < 0 {
				return fmt.Errorf("invalid run time: %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), timefmt.Format(seconds))
			return nil
		},
	}
}

func newWorkshopCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workshop <name|id>",
		Short: "Show a map's Steam Workshop page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, format, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			maps, err := opts.fetch(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			m, ok := bestMatch(maps, kz.ParseMapIdentifier(args[0]))
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "No map matches %q\n", args[0])
				return errNotFound
			}
			if m.WorkshopLink == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s has no workshop page\n", m.Name)
				return errNotFound
			}

			details, err := workshop.New(cfg.HTTPClient()).Details(cmd.Context(), *m.WorkshopLink)
			if err != nil {
				return fmt.Errorf("fetching workshop page: %w", err)
			}

			return WriteWorkshop(cmd.OutOrStdout(), details, format)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "Include maps that are not validated")

	return cmd
}

// errNotFound makes Execute exit with ExitNotFound
var errNotFound = errors.New("not found")

func parseMode(s string) (kz.Mode, error) {
	for _, m := range kz.Modes {
		if strings.EqualFold(s, m.Short()) || strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid mode: %s (must be 'kzt', 'skz' or 'vnl')", s)
}

// filterMaps keeps maps with a leaderboard in mode (if set) and of tier (if non-zero)
func filterMaps(maps []globalmap.GlobalMap, mode *kz.Mode, tier kz.Tier) []globalmap.GlobalMap {
	filtered := make([]globalmap.GlobalMap, 0, len(maps))
	for _, m := range maps {
		if mode != nil && !m.HasFilter(*mode) {
			continue
		}
		if tier != 0 && m.Tier != tier {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

// bestMatch resolves ident to a single map: the exact id, or the highest
// scoring name match
func bestMatch(maps []globalmap.GlobalMap, ident kz.MapIdentifier) (globalmap.GlobalMap, bool) {
	if ident.IsID() {
		return globalmap.FuzzySearch(maps, ident)
	}
	matches := bestFirst(globalmap.ScoreMatches(ident.Name, maps), 1)
	if len(matches) == 0 {
		return globalmap.GlobalMap{}, false
	}
	return matches[0], true
}

// bestFirst orders matches by descending score and applies limit. Equal
// scores keep their input order, which for fetched maps is by name.
func bestFirst(matches []globalmap.Match, limit int) []globalmap.GlobalMap {
	sorted := make([]globalmap.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]globalmap.GlobalMap, 0, len(sorted))
	for _, m := range sorted {
		out = append(out, m.Map)
	}
	return out
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().ExecuteContext(context.Background())
	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case err == errNotFound:
		os.Exit(ExitNotFound)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
