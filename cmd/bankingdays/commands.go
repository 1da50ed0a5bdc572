package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bankingdays/bankingdays/pkg/bankingday"
	"github.com/bankingdays/bankingdays/pkg/dateutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// dateArg parses args[0] or falls back to today
func dateArg(args []string) (time.Time, error) {
	if len(args) == 0 {
		return dateutil.Today(), nil
	}
	return dateutil.ParseDate(args[0])
}

func countArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid day count %q: %w", arg, err)
	}
	return n, nil
}

func formatDay(date time.Time) string {
	return date.Format("2006-01-02 Mon")
}

func checkOutput(output string) error {
	if output != outputText && output != outputYAML {
		return fmt.Errorf("--output must be '%s' or '%s', got '%s'", outputText, outputYAML, output)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [date]",
		Short: "Report whether a date is a banking day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args)
			if err != nil {
				return err
			}

			info := a.calendar.GetDayInfo(date)
			out := cmd.OutOrStdout()
			if info.IsBankingDay {
				fmt.Fprintf(out, "%s: banking day\n", formatDay(date))
				return nil
			}
			if info.Note != "" {
				fmt.Fprintf(out, "%s: not a banking day (%s, %s)\n", formatDay(date), info.Type, info.Note)
			} else {
				fmt.Fprintf(out, "%s: not a banking day (%s)\n", formatDay(date), info.Type)
			}
			return nil
		},
	}
}

func holidayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "holiday [date]",
		Short: "Report whether a date is a bank holiday",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if name, ok := a.calendar.Registry().HolidayName(date); ok {
				fmt.Fprintf(out, "%s: %s\n", formatDay(date), name)
			} else {
				fmt.Fprintf(out, "%s: not a holiday\n", formatDay(date))
			}
			return nil
		},
	}
}

func stepCmd(a *app, use, short string, sign int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <date> <n>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}
			n, err := countArg(args[1])
			if err != nil {
				return err
			}

			result := a.calendar.AddBankingDays(date, sign*n)
			a.logger.Debug("Stepped",
				zap.String("command", use),
				zap.String("from", dateutil.FormatDate(date)),
				zap.Int("n", n),
				zap.String("to", dateutil.FormatDate(result)))

			fmt.Fprintln(cmd.OutOrStdout(), dateutil.FormatDate(result))
			return nil
		},
	}
}

func addCmd(a *app) *cobra.Command {
	return stepCmd(a, "add", "Add n banking days to a date", 1)
}

func subtractCmd(a *app) *cobra.Command {
	return stepCmd(a, "subtract", "Subtract n banking days from a date", -1)
}

func nextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "next [date]",
		Short: "Print the next banking day after a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dateutil.FormatDate(a.calendar.NextBankingDay(date)))
			return nil
		},
	}
}

func prevCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "prev [date]",
		Aliases: []string{"previous"},
		Short:   "Print the previous banking day before a date",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dateutil.FormatDate(a.calendar.PreviousBankingDay(date)))
			return nil
		},
	}
}

type holidayEntry struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

func holidaysCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "holidays [year]",
		Short: "List the bank holidays of a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}

			year := dateutil.Today().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q: %w", args[0], err)
				}
				year = y
			}

			observances := a.calendar.Registry().HolidaysInYear(year)
			out := cmd.OutOrStdout()

			if output == outputYAML {
				entries := make([]holidayEntry, 0, len(observances))
				for _, o := range observances {
					entries = append(entries, holidayEntry{Date: dateutil.FormatDate(o.Date), Name: o.Name})
				}
				return writeYAML(out, entries)
			}

			for _, o := range observances {
				fmt.Fprintf(out, "%s  %s\n", formatDay(o.Date), o.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or yaml")
	return cmd
}

type monthReport struct {
	Month       string     `yaml:"month"`
	BankingDays int        `yaml:"banking_days"`
	Weekends    int        `yaml:"weekends"`
	Holidays    int        `yaml:"holidays"`
	Days        []dayEntry `yaml:"days"`
}

type dayEntry struct {
	Date string             `yaml:"date"`
	Type bankingday.DayType `yaml:"type"`
	Note string             `yaml:"note,omitempty"`
}

func monthCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show banking days, weekends and holidays of a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}

			today := dateutil.Today()
			year, month := today.Year(), today.Month()
			if len(args) == 1 {
				var err error
				year, month, err = dateutil.ParseMonth(args[0])
				if err != nil {
					return err
				}
			}

			info := a.calendar.GetMonthInfo(year, month)
			report := monthReport{
				Month:       fmt.Sprintf("%d-%02d", info.Year, int(info.Month)),
				BankingDays: info.BankingDays,
				Weekends:    info.Weekends,
				Holidays:    info.Holidays,
				Days:        make([]dayEntry, 0, len(info.Days)),
			}
			for _, day := range info.Days {
				report.Days = append(report.Days, dayEntry{
					Date: dateutil.FormatDate(day.Date),
					Type: day.Type,
					Note: day.Note,
				})
			}

			out := cmd.OutOrStdout()
			if output == outputYAML {
				return writeYAML(out, report)
			}

			fmt.Fprintf(out, "%s: %d banking days, %d weekend days, %d holidays\n",
				report.Month, report.BankingDays, report.Weekends, report.Holidays)
			for _, day := range info.Days {
				line := fmt.Sprintf("  %s  %-11s", formatDay(day.Date), day.Type)
				if day.Note != "" {
					line += "  " + day.Note
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or yaml")
	return cmd
}
