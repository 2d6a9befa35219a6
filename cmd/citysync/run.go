package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/EVAnunit1307/citysync/internal/server"
	"github.com/EVAnunit1307/citysync/pkg/batch"
	"github.com/EVAnunit1307/citysync/pkg/geo"
	"github.com/EVAnunit1307/citysync/pkg/placement"
	"github.com/EVAnunit1307/citysync/pkg/registry"
	"github.com/EVAnunit1307/citysync/pkg/site"
	"github.com/EVAnunit1307/citysync/pkg/validation"
)

// loadAndValidate loads the site config and runs schema validation.
func loadAndValidate(projectPath string) (*site.Config, *validation.Report, error) {
	cfg, err := site.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading site config: %w", err)
	}
	report := validation.ValidateConfig(cfg)
	return cfg, report, nil
}

func runValidate(projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

type generateOptions struct {
	total   int
	spacing float64
	scale   float64
	mix     string
	at      string
}

func runGenerate(projectPath string, opts generateOptions) error {
	cfg, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("site config has validation errors")
	}

	mix, err := parseMix(opts.mix)
	if err != nil {
		return err
	}
	origin, err := parsePoint(opts.at)
	if err != nil {
		return err
	}

	bcfg := batch.Config{
		TotalBuildings: opts.total,
		Spacing:        opts.spacing,
		FootprintScale: opts.scale,
		Mix:            mix,
	}
	proposals := batch.GenerateCluster(origin, bcfg, cfg.WorldBound)
	kept, summary := batch.FilterValid(proposals, placement.ConfigFromSite(cfg, nil))

	output := map[string]any{
		"buildings": kept,
		"summary":   summary,
		"message":   summary.String(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func runDistribute(total int, mixArg string) error {
	mix, err := parseMix(mixArg)
	if err != nil {
		return err
	}
	printDistribution(total, mix, batch.Distribute(total, mix))
	return nil
}

func runServe(projectPath string, port int, dbPath string) error {
	cfg, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("site config has validation errors; fix before serving")
	}
	for _, warn := range report.Warnings {
		logger.Warn(warn.Message, "path", warn.ConfigPath)
	}

	if dbPath == "" {
		dbPath = filepath.Join(projectPath, "registry.db")
	}
	reg, err := registry.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("opening registry: %w", err)
	}
	defer reg.Close()

	srv := server.New(cfg, reg, port, logger)
	return srv.Start()
}

// parseMix reads "60,30,10" into a batch.Mix.
func parseMix(s string) (batch.Mix, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return batch.Mix{}, fmt.Errorf("mix must be three comma-separated percentages, got %q", s)
	}
	var pcts [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return batch.Mix{}, fmt.Errorf("parsing mix %q: %w", s, err)
		}
		pcts[i] = n
	}
	return batch.Mix{DetachedPct: pcts[0], TownhousePct: pcts[1], MidrisePct: pcts[2]}, nil
}

// parsePoint reads "x,z" into a ground point.
func parsePoint(s string) (geo.Point2D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Point2D{}, fmt.Errorf("point must be x,z, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Point2D{}, fmt.Errorf("parsing point %q: %w", s, err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Point2D{}, fmt.Errorf("parsing point %q: %w", s, err)
	}
	return geo.Pt(x, z), nil
}
