package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/datenorm/internal/exitcode"
	"github.com/gyeh/datenorm/internal/logging"
	"github.com/gyeh/datenorm/internal/model"
	"github.com/gyeh/datenorm/internal/normalize"
)

var (
	parseNumeric bool
	parseStrict  bool
	parseLayouts bool
)

var parseCmd = &cobra.Command{
	Use:   "parse VALUE...",
	Short: "Normalize ad-hoc values and show which rule matched",
	Args: func(cmd *cobra.Command, args []string) error {
		if parseLayouts {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runParse,
}

func init() {
	f := parseCmd.Flags()
	f.StringVar(&cfg.OutputPattern, "pattern", string(model.DefaultPattern), "Output date format")
	f.BoolVar(&parseNumeric, "numeric", false, "Treat numeric arguments as numeric cells (serial or Unix seconds)")
	f.BoolVar(&parseStrict, "strict", false, "Accept only the explicit layouts (no locale or free-form parsing)")
	f.BoolVar(&parseLayouts, "layouts", false, "List the explicit layouts in the order they are tried")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	pattern, err := cfg.Pattern()
	if err != nil {
		log.Error().Err(err).Msg("invalid pattern")
		os.Exit(exitcode.UsageError)
	}

	if parseLayouts {
		for i, l := range normalize.Layouts() {
			fmt.Printf("%2d  %s\n", i+1, l)
		}
		return nil
	}

	failed := 0
	fmt.Printf("%-32s %-12s %-10s %s\n", "VALUE", "RESULT", "STRATEGY", "LAYOUT")
	for _, arg := range args {
		v := model.Text(arg)
		if parseNumeric {
			if f, err := strconv.ParseFloat(strings.TrimSpace(arg), 64); err == nil {
				v = model.Numeric(f)
			}
		}
		var out model.ParseOutcome
		if parseStrict && v.Kind == model.KindText {
			out = strictOutcome(arg, pattern)
		} else {
			out = normalize.Normalize(v, pattern)
		}
		strategy := string(out.Strategy)
		if !out.Succeeded() {
			strategy = "-"
			failed++
		}
		fmt.Printf("%-32q %-12s %-10s %s\n", arg, out.Display, strategy, out.Layout)
	}

	if failed > 0 {
		os.Exit(exitcode.NormalizeError)
	}
	return nil
}

// strictOutcome reports arg against the explicit layouts alone.
func strictOutcome(arg string, pattern model.DatePattern) model.ParseOutcome {
	d := normalize.ParseDate(arg)
	if d == nil {
		return model.ParseOutcome{Display: arg}
	}
	return model.ParseOutcome{
		Date:      d,
		Display:   d.Format(pattern.Layout()),
		Canonical: d.Format(normalize.CanonicalLayout),
		Strategy:  model.StrategyPattern,
	}
}
