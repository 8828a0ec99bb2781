package commands

import (
	"fmt"

	"github.com/de-tools/demand-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/demand-atlas/pkg/services/analysis"
	configsvc "github.com/de-tools/demand-atlas/pkg/services/config"
	"github.com/de-tools/demand-atlas/pkg/services/timegrid"
	"github.com/de-tools/demand-atlas/pkg/store/csv"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	input       string
	profilePath string
	frequency   string
	fillPolicy  string
	method      string
	window      int
	horizon     int
	alpha       float64
	period      int
	percentile  float64
	reporter    *export.Reporter
}

func NewAnalyzeCmd(reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full demand analysis over a dataset",
		Long: "Validates the series against its expected grid, fills gaps, " +
			"produces a baseline forecast, scores it and derives a safety stock recommendation.",
		RunE: ac.run,
	}

	defaults := analysis.DefaultParams()
	cmd.Flags().StringVar(&ac.input, "input", "", "Path to the demand dataset (CSV, optionally gzipped)")
	cmd.Flags().StringVar(&ac.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&ac.frequency, "freq", string(defaults.Frequency), "Expected frequency (hourly or daily)")
	cmd.Flags().StringVar(&ac.fillPolicy, "fill", string(defaults.FillPolicy), "Gap fill policy (forward, backward or interpolate)")
	cmd.Flags().StringVar(&ac.method, "method", string(defaults.Method), "Forecast method (moving_average, exponential or seasonal_naive)")
	cmd.Flags().IntVar(&ac.window, "window", defaults.Window, "Trailing window size for the moving average")
	cmd.Flags().IntVar(&ac.horizon, "horizon", defaults.Horizon, "Forecast horizon in steps")
	cmd.Flags().Float64Var(&ac.alpha, "alpha", defaults.Alpha, "Smoothing parameter for the exponential method")
	cmd.Flags().IntVar(&ac.period, "period", defaults.SeasonalPeriod, "Seasonal period for the seasonal naive method")
	cmd.Flags().Float64Var(&ac.percentile, "percentile", defaults.Percentile, "Service percentile for the safety stock")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	params, input, err := ac.resolve()
	if err != nil {
		return err
	}

	series, err := csv.LoadSeries(input)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	result, err := analysis.Run(cmd.Context(), series, params)
	if err != nil {
		return err
	}

	return ac.reporter.Handle(result.Report("Demand Analysis"))
}

// resolve merges the profile config (when given) with the flag values;
// flags win because cobra applied their defaults already.
func (ac *AnalyzeCmd) resolve() (analysis.Params, string, error) {
	input := ac.input
	params := analysis.Params{
		Window:         ac.window,
		Horizon:        ac.horizon,
		Alpha:          ac.alpha,
		SeasonalPeriod: ac.period,
		Percentile:     ac.percentile,
	}

	frequency, fillPolicy, method := ac.frequency, ac.fillPolicy, ac.method
	if ac.profilePath != "" {
		cfg, err := configsvc.LoadConfig(ac.profilePath)
		if err != nil {
			return params, "", err
		}
		if input == "" {
			input = cfg.Dataset
		}
		frequency, fillPolicy, method = cfg.Frequency, cfg.FillPolicy, cfg.Method
		params.Window = cfg.Window
		params.Horizon = cfg.Horizon
		params.Alpha = cfg.Alpha
		params.SeasonalPeriod = cfg.SeasonalPeriod
		params.Percentile = cfg.Percentile
	}

	if input == "" {
		return params, "", fmt.Errorf("an input dataset is required; pass --input or set dataset in the profile")
	}

	freq, err := domain.ParseFrequency(frequency)
	if err != nil {
		return params, "", err
	}
	policy, err := timegrid.ParseFillPolicy(fillPolicy)
	if err != nil {
		return params, "", err
	}
	m, err := analysis.ParseMethod(method)
	if err != nil {
		return params, "", err
	}

	params.Frequency = freq
	params.FillPolicy = policy
	params.Method = m
	return params, input, nil
}
