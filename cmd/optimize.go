package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gasgrid/lcv-dispatch/api/optimize"
	"github.com/gasgrid/lcv-dispatch/config"
	coreingest "github.com/gasgrid/lcv-dispatch/core/ingest"
	coremetrics "github.com/gasgrid/lcv-dispatch/core/metrics"
	"github.com/gasgrid/lcv-dispatch/core/plan"
	"github.com/gasgrid/lcv-dispatch/infra/ingest"
	"github.com/gasgrid/lcv-dispatch/infra/logger"
)

var (
	optDate string
	optSite string
	optIDs  []string
	optSeed int64
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Run one planning pass and print the result as JSON",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optDate, "date", "", "scheduling date (YYYY-MM-DD)")
	optimizeCmd.Flags().StringVar(&optSite, "site", "", "origin site (MGS)")
	optimizeCmd.Flags().StringSliceVar(&optIDs, "ids", nil, "request ids to schedule")
	optimizeCmd.Flags().Int64Var(&optSeed, "seed", 0, "random seed (0 = clock-derived)")
	_ = optimizeCmd.MarkFlagRequired("date")
	_ = optimizeCmd.MarkFlagRequired("site")
	_ = optimizeCmd.MarkFlagRequired("ids")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	day, err := time.Parse(optimize.DateLayout, optDate)
	if err != nil {
		return fmt.Errorf("invalid date %q, use YYYY-MM-DD", optDate)
	}

	src, err := ingest.New(cfg.Source)
	if err != nil {
		return fmt.Errorf("request source: %w", err)
	}
	dataset, err := src.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	requests, err := dataset.Filter(coreingest.Scope{
		Date:       day,
		OriginSite: optSite,
		RequestIDs: optIDs,
	})
	if err != nil {
		return err
	}

	plannerCfg := cfg.Planner
	if optSeed != 0 {
		plannerCfg.Seed = optSeed
	}
	planner := plan.New(plannerCfg, logger.New("optimize-command"), coremetrics.NopSink{})
	res := planner.Plan(day, requests, dataset.Fleet)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
