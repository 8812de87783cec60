package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"fundrebalance/cmd"
	"fundrebalance/internal"
	"fundrebalance/internal/domain"
	"fundrebalance/internal/service"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

type assetRow struct {
	Symbol string  `csv:"symbol"`
	Mcap   float64 `csv:"mcap"`
}

var (
	csvPath      string
	assetCap     float64
	totalCapital float64
)

var rootCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Run one capped mcap-weighted allocation from a CSV asset list",
	RunE: func(c *cobra.Command, args []string) error {
		secrets, err := internal.LoadSecrets()
		if err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
		priceRepository, err := cmd.NewPriceRepository(secrets)
		if err != nil {
			return err
		}

		f, err := os.Open(csvPath)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", csvPath, err)
		}
		defer f.Close()

		rows := []assetRow{}
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			return fmt.Errorf("failed to parse %s: %w", csvPath, err)
		}

		assets := []domain.AssetSpec{}
		for _, row := range rows {
			assets = append(assets, domain.AssetSpec{
				Symbol:    row.Symbol,
				MarketCap: row.Mcap,
			})
		}

		allocationService := service.NewAllocationService(priceRepository)
		allocations, err := allocationService.Allocate(context.Background(), domain.AllocationRequest{
			AssetCap:     assetCap,
			TotalCapital: totalCapital,
			Assets:       assets,
		})
		if err != nil {
			return err
		}

		internal.Pprint(allocations)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&csvPath, "csv", "assets.csv", "csv file with symbol,mcap columns")
	rootCmd.Flags().Float64Var(&assetCap, "cap", 0.5, "max fractional weight per asset")
	rootCmd.Flags().Float64Var(&totalCapital, "capital", 0, "total capital to allocate")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
