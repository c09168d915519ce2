package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkapoor/netsales-dashboard/internal/config"
	"github.com/dkapoor/netsales-dashboard/internal/dataclient"
	"github.com/dkapoor/netsales-dashboard/internal/logger"
	"github.com/dkapoor/netsales-dashboard/internal/pipeline"
	"github.com/dkapoor/netsales-dashboard/internal/warehouse"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "metrics":
		runMetrics(log)
	case "sales":
		runSales(log)
	case "aum":
		runAUM(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Net Sales Dashboard CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  metrics   Print the summary metrics")
	fmt.Println("  sales     Print the net-sales time series")
	fmt.Println("  aum       Print the RM-wise AUM series")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nEach command accepts -api URL to go through a running gateway")
	fmt.Println("instead of querying the warehouse directly.")
}

// newGateway picks the row source: a running gateway when -api is set,
// otherwise a direct warehouse client built from the environment.
func newGateway(ctx context.Context, apiURL string, log zerolog.Logger) pipeline.Gateway {
	if apiURL != "" {
		return dataclient.New(apiURL)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	client, err := warehouse.NewClient(ctx, cfg.WarehouseOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create warehouse client")
	}
	return client
}

func runMetrics(log zerolog.Logger) {
	fs := flag.NewFlagSet("metrics", flag.ExitOnError)
	apiURL := fs.String("api", "", "Base URL of a running gateway")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	rows, err := newGateway(ctx, *apiURL, log).FetchRows(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetch failed")
	}

	m := pipeline.Aggregate(rows, pipeline.NetSalesFields, pipeline.ColAUMRMName)

	fmt.Printf("Total positive amount:  %s\n", pipeline.FormatCurrency(m.TotalPositive))
	fmt.Printf("Total negative amount:  %s\n", pipeline.FormatCurrency(m.TotalNegative))
	fmt.Printf("Relationship managers:  %d\n", m.DistinctEntities)
	if math.IsNaN(m.GrowthPercent) {
		fmt.Println("Revenue growth:         n/a")
	} else {
		fmt.Printf("Revenue growth:         %.1f%%\n", m.GrowthPercent)
	}
}

func runSales(log zerolog.Logger) {
	fs := flag.NewFlagSet("sales", flag.ExitOnError)
	apiURL := fs.String("api", "", "Base URL of a running gateway")
	branch := fs.String("branch", pipeline.BranchAll, "Branch code filter")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	view := pipeline.NewView(newGateway(ctx, *apiURL, log), pipeline.NetSalesFields)
	if err := view.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("Fetch failed")
	}
	view.SetBranch(*branch)

	snap := view.Snapshot()
	if snap.Empty {
		fmt.Println("No data available.")
		return
	}

	fmt.Printf("Net sales (branch %s):\n", snap.Branch)
	for _, p := range snap.Series {
		fmt.Printf("  %s  %s\n", p.Label, p.Display)
	}
}

func runAUM(log zerolog.Logger) {
	fs := flag.NewFlagSet("aum", flag.ExitOnError)
	apiURL := fs.String("api", "", "Base URL of a running gateway")
	limit := fs.Int("limit", pipeline.DefaultCategoryLimit, "Maximum raw rows to chart")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	rows, err := newGateway(ctx, *apiURL, log).FetchRows(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetch failed")
	}

	series := pipeline.BuildCategorySeries(rows, pipeline.ColAUMRMName, pipeline.ColAUMAmount, *limit)
	if len(series) == 0 {
		fmt.Println("No data available.")
		return
	}

	fmt.Println("RM-wise AUM:")
	for _, p := range series {
		fmt.Printf("  %-24s %s\n", p.Label, p.Display)
	}
}
