package main

import (
	"fmt"

	"github.com/EVAnunit1307/citysync/pkg/batch"
	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.ConfigPath != "" {
				fmt.Printf("    -> %s = %v\n", e.ConfigPath, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.ConfigPath != "" {
				fmt.Printf("    -> %s = %v\n", w.ConfigPath, w.ActualValue)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printDistribution(total int, mix batch.Mix, counts batch.Counts) {
	fmt.Printf("Mix %d/%d/%d over %d buildings:\n",
		mix.DetachedPct, mix.TownhousePct, mix.MidrisePct, total)
	fmt.Printf("%-12s %8s %10s %12s\n", "Type", "Count", "Radius", "Min spacing")

	rows := []struct {
		t building.Type
		n int
	}{
		{building.Detached, counts.Detached},
		{building.Townhouse, counts.Townhouse},
		{building.Midrise, counts.Midrise},
	}
	for _, row := range rows {
		fmt.Printf("%-12s %8d %9.1fm %11.1fm\n",
			row.t, row.n, building.FootprintRadius(row.t), building.MinSpacing(row.t))
	}
	fmt.Printf("%-12s %8d\n", "TOTAL", counts.Total())
}
