package commands

import (
	"fmt"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/demand-atlas/pkg/services/timegrid"
	"github.com/de-tools/demand-atlas/pkg/store/csv"
	"github.com/spf13/cobra"
)

type ValidateCmd struct {
	input     string
	frequency string
	reporter  *export.Reporter
}

func NewValidateCmd(reporter *export.Reporter) *cobra.Command {
	vc := &ValidateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a dataset for gaps and duplicates",
		RunE:  vc.run,
	}

	cmd.Flags().StringVar(&vc.input, "input", "", "Path to the demand dataset (CSV, optionally gzipped)")
	cmd.Flags().StringVar(&vc.frequency, "freq", "hourly", "Expected frequency (hourly or daily)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (vc *ValidateCmd) run(_ *cobra.Command, _ []string) error {
	freq, err := domain.ParseFrequency(vc.frequency)
	if err != nil {
		return err
	}

	series, err := csv.LoadSeries(vc.input)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	v := timegrid.Validate(series, freq)
	report := &domain.Report{
		Title: "Time Grid Validation",
		Period: domain.TimePeriod{
			Start:    v.Start,
			End:      v.End,
			Duration: int(v.End.Sub(v.Start).Hours()/24) + 1,
		},
		Sections: []domain.ReportSection{{
			Title: fmt.Sprintf("Completeness (%s)", freq),
			Details: []domain.ReportDetail{
				{Name: "Observed", Value: v.ObservedCount, Unit: "records"},
				{Name: "Expected", Value: v.ExpectedCount, Unit: "records"},
				{Name: "Missing", Value: v.MissingCount, Unit: "records"},
				{Name: "Duplicates", Value: v.DuplicateCount, Unit: "records"},
				{Name: "Completeness", Value: fmt.Sprintf("%.2f", v.Completeness), Unit: "%"},
			},
		}},
	}

	return vc.reporter.Handle(report)
}
