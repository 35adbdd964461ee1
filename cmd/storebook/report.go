// Report commands for the storebook CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate reports",
}

var (
	reportFrom string
	reportTo   string
)

var reportSalesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Generate a sales report workbook for a date range",
	Long: `Sales aggregates Completed orders in the inclusive date range into a
new workbook in the data directory, with daily summary, per-line
detail, per-product and per-customer sheets.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDate(reportFrom)
		if err != nil {
			return err
		}
		to, err := parseDate(reportTo)
		if err != nil {
			return err
		}

		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		report, err := store.GenerateSalesReport(from, to)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(report)
		}
		if report.NoData {
			fmt.Printf("No completed orders between %s and %s; no report written\n",
				formatDate(report.From), formatDate(report.To))
			return nil
		}
		fmt.Printf("Report written: %s (%d orders, revenue %s)\n",
			report.Path, report.Orders, report.Revenue)
		return nil
	},
}

func init() {
	reportSalesCmd.Flags().StringVar(&reportFrom, "from", "", "start date YYYY-MM-DD (required)")
	reportSalesCmd.Flags().StringVar(&reportTo, "to", "", "end date YYYY-MM-DD (required)")
	reportSalesCmd.MarkFlagRequired("from")
	reportSalesCmd.MarkFlagRequired("to")

	reportCmd.AddCommand(reportSalesCmd)
}
