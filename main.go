// Package main provides the daylight command line: rank world cities by the
// length of their day on a given date, usually the June solstice.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/devskill-org/daylight/analysis"
	"github.com/devskill-org/daylight/catalog"
	"github.com/devskill-org/daylight/report"
	"github.com/devskill-org/daylight/solar"
	"github.com/devskill-org/daylight/utils"
)

var (
	configFile string
	noAPI      bool
	noColor    bool
	v          = analysis.NewViper()
)

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"date":           "date",
	"solstice-year":  "solstice_year",
	"catalog":        "catalog",
	"catalog-file":   "catalog_file",
	"min-population": "min_population",
	"sample-size":    "sample_size",
	"top":            "top",
	"output":         "output",
	"breakdown":      "breakdown",
	"api-url":        "api_url",
	"api-timeout":    "api_timeout",
	"rate-limit":     "rate_limit",
	"engine":         "engine",
	"polar-policy":   "polar_policy",
	"cache-size":     "cache_size",
	"metrics-file":   "metrics_file",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-file":       "log_file",
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "daylight",
		Short: "Rank cities by daylight duration",
		Long: "Compute sunrise, sunset and day length for a catalog of cities using a remote\n" +
			"time service with a local solar calculation as fallback, then rank them by\n" +
			"daylight and write the result to CSV.",
		SilenceUsage: true,
		RunE:         runRank,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file path (YAML or JSON)")
	flags.String("date", "", "target date, YYYY-MM-DD (default 2024-06-20)")
	flags.Int("solstice-year", 0, "use the June solstice of this year as the target date")
	flags.String("catalog", "", "embedded catalog: "+fmt.Sprint(catalog.Names()))
	flags.String("catalog-file", "", "CSV file to use instead of the embedded catalog")
	flags.Int64("min-population", 0, "drop cities below this population (default 200000)")
	flags.Int("sample-size", 0, "process only the first N cities after filtering")
	flags.Int("top", 0, "number of ranked cities to write (default 20)")
	flags.StringP("output", "o", "", "output CSV path (default cities_with_sunrise_sunset.csv)")
	flags.String("breakdown", "", "console breakdown: none, country, region")
	flags.BoolVar(&noAPI, "no-api", false, "skip the remote time service and compute locally")
	flags.String("api-url", "", "remote time service endpoint")
	flags.Duration("api-timeout", 0, "remote time service timeout")
	flags.Float64("rate-limit", 0, "remote requests per second")
	flags.String("engine", "", "local solar engine: suncalc, sunrise")
	flags.String("polar-policy", "", "polar day/night policy: latitude, declination")
	flags.Int("cache-size", 0, "result cache entries")
	flags.String("metrics-file", "", "write Prometheus metrics to this textfile")
	flags.BoolVar(&noColor, "no-color", false, "disable coloured console output")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text, json")
	flags.String("log-file", "", "also append logs to this file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd.Flags())
	}

	rootCmd.AddCommand(rankCmd())
	rootCmd.AddCommand(computeCmd())
	rootCmd.AddCommand(catalogsCmd())
	rootCmd.AddCommand(solsticeCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bindFlags copies explicitly set flags into viper so they override the
// config file and environment.
func bindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	if flags.Changed("no-api") {
		v.Set("use_api", !noAPI)
	}
	if flags.Changed("no-color") {
		v.Set("color", !noColor)
	}
	return nil
}

func loadConfig() (*analysis.Config, error) {
	cfg, err := analysis.LoadConfig(v, configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func rankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Rank the catalog by daylight (default command)",
		RunE:  runRank,
	}
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := cfg.OpenLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	analyzer, err := analysis.NewAnalyzer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	outcome, err := analyzer.Run(ctx)
	if err != nil {
		return err
	}

	report.NewConsole(cmd.OutOrStdout(), cfg.Color).Render(report.Report{
		Title:     cfg.Title,
		Date:      outcome.Date,
		Ranked:    outcome.Ranked,
		All:       outcome.All,
		Breakdown: cfg.Breakdown,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "\nResults saved to %s\n", cfg.Output)
	return nil
}

func computeCmd() *cobra.Command {
	var (
		lat, lng float64
		name     string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute daylight for a single coordinate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger, closeLog, err := cfg.OpenLogger(os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			analyzer, err := analysis.NewAnalyzer(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			r := analyzer.Compute(ctx, lat, lng, name)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Location:    %s (%.4f, %.4f)\n", name, lat, lng)
			fmt.Fprintf(out, "Date:        %s\n", utils.ISODate(r.Date))
			fmt.Fprintf(out, "Status:      %s\n", r.Status)
			fmt.Fprintf(out, "Source:      %s\n", r.Source)
			fmt.Fprintf(out, "Sunrise:     %s UTC\n", utils.ClockString(r.Sunrise))
			fmt.Fprintf(out, "Sunset:      %s UTC\n", utils.ClockString(r.Sunset))
			if !r.SolarNoon.IsZero() {
				fmt.Fprintf(out, "Solar noon:  %s UTC\n", utils.ClockString(r.SolarNoon))
			}
			if !r.Dawn.IsZero() && !r.Dusk.IsZero() {
				fmt.Fprintf(out, "Civil dawn:  %s UTC\n", utils.ClockString(r.Dawn))
				fmt.Fprintf(out, "Civil dusk:  %s UTC\n", utils.ClockString(r.Dusk))
			}
			fmt.Fprintf(out, "Day length:  %s (%.4f h)\n", r.DayLength, r.DaylightHours)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude in degrees")
	cmd.Flags().StringVar(&name, "name", "", "location name for logs and output")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func catalogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List embedded city catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := catalog.Count()
			if err != nil {
				return err
			}
			for _, name := range catalog.Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %4d cities\n", name, counts[name])
			}
			return nil
		},
	}
}

func solsticeCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "solstice",
		Short: "Print the solstice instants for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			june := solar.JuneSolstice(year)
			december := solar.DecemberSolstice(year)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "June solstice:     %s\n", june.Format(time.RFC3339))
			fmt.Fprintf(out, "December solstice: %s\n", december.Format(time.RFC3339))
			fmt.Fprintf(out, "Target date:       %s\n", utils.ISODate(solar.JuneSolsticeDate(year)))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year")
	return cmd
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cfg.SaveConfigToWriter(cmd.OutOrStdout())
		},
	}
}
