// Quote commands for the storebook CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opal-works/storebook/pkg/types"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Manage quotes",
}

var (
	quoteCustomer string
	quoteDate     string
	quoteValidity int
	quoteNotes    string
	quoteItems    []string
	quoteStatus   string
	quoteFrom     string
	quoteTo       string
)

var quoteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new quote",
	Long: `Create builds a quote from repeatable --item specs of the form
description:quantity:price[:discount]. Descriptions must not contain
colons.

Example:
  storebook quote create --customer 1a2b3c4d --item "Site survey:1:250" --item "Cabling:20:4.5:10"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDate(quoteDate)
		if err != nil {
			return err
		}
		if date.IsZero() {
			date = time.Now()
		}

		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		q := types.Quote{
			CustomerID:   quoteCustomer,
			Date:         date,
			ValidityDays: quoteValidity,
			Notes:        quoteNotes,
		}
		for _, spec := range quoteItems {
			line, err := parseQuoteItem(spec)
			if err != nil {
				return err
			}
			if err := q.AddLine(line); err != nil {
				return fmt.Errorf("item %q: %w", spec, err)
			}
		}

		if err := store.Quotes().Save(&q); err != nil {
			return err
		}

		if flagJSON {
			return printJSON(q)
		}
		fmt.Printf("Created quote: %s (total %s)\n", q.ID, q.Total())
		return nil
	},
}

var quoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quotes with optional filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDate(quoteFrom)
		if err != nil {
			return err
		}
		to, err := parseDate(quoteTo)
		if err != nil {
			return err
		}

		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		quotes, err := store.Quotes().List(types.QuoteFilter{
			Status:     quoteStatus,
			CustomerID: quoteCustomer,
			DateFrom:   from,
			DateTo:     to,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(quotes)
		}
		now := time.Now()
		w := newTabWriter()
		fmt.Fprintln(w, "ID\tDATE\tCUSTOMER\tSTATUS\tEXPIRED\tTOTAL")
		for _, q := range quotes {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
				q.ID, formatDate(q.Date), q.CustomerID, q.Status, q.Expired(now), q.Total())
		}
		return w.Flush()
	},
}

var quoteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display a quote with its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		q, err := store.Quotes().Get(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(q)
		}
		fmt.Printf("ID:       %s\n", q.ID)
		fmt.Printf("Customer: %s\n", q.CustomerID)
		fmt.Printf("Date:     %s\n", formatDate(q.Date))
		fmt.Printf("Status:   %s\n", q.Status)
		fmt.Printf("Validity: %d days (expired: %t)\n", q.ValidityDays, q.Expired(time.Now()))
		if q.Notes != "" {
			fmt.Printf("Notes:    %s\n", q.Notes)
		}
		fmt.Println()
		w := newTabWriter()
		fmt.Fprintln(w, "#\tDESCRIPTION\tQTY\tUNIT\tDISC%\tSUBTOTAL")
		for _, l := range q.Lines {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
				l.ID, l.Description, l.Quantity, l.UnitPrice, l.DiscountPercent, l.Subtotal())
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\nTotal: %s\n", q.Total())
		return nil
	},
}

var quoteAcceptCmd = &cobra.Command{
	Use:   "accept <id>",
	Short: "Accept a pending quote and create its order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		o, err := store.Quotes().Accept(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(o)
		}
		fmt.Printf("Accepted quote %s, created order %s (total %s)\n", args[0], o.ID, o.Total())
		return nil
	},
}

var quoteRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending quote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.Quotes().Reject(args[0]); err != nil {
			return err
		}
		if !flagJSON {
			fmt.Println("Rejected quote:", args[0])
		}
		return nil
	},
}

var quoteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a quote and its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.Quotes().Delete(args[0]); err != nil {
			return err
		}
		if !flagJSON {
			fmt.Println("Deleted quote:", args[0])
		}
		return nil
	},
}

func init() {
	quoteCreateCmd.Flags().StringVar(&quoteCustomer, "customer", "", "customer id (required)")
	quoteCreateCmd.Flags().StringVar(&quoteDate, "date", "", "quote date YYYY-MM-DD (default today)")
	quoteCreateCmd.Flags().IntVar(&quoteValidity, "validity", 0, "validity in days (default 15)")
	quoteCreateCmd.Flags().StringVar(&quoteNotes, "notes", "", "free-form notes")
	quoteCreateCmd.Flags().StringArrayVar(&quoteItems, "item", nil, "quote line description:quantity:price[:discount], repeatable")
	quoteCreateCmd.MarkFlagRequired("customer")
	quoteCreateCmd.MarkFlagRequired("item")

	quoteListCmd.Flags().StringVar(&quoteStatus, "status", "", "filter by status")
	quoteListCmd.Flags().StringVar(&quoteCustomer, "customer", "", "filter by customer id")
	quoteListCmd.Flags().StringVar(&quoteFrom, "from", "", "filter from date YYYY-MM-DD")
	quoteListCmd.Flags().StringVar(&quoteTo, "to", "", "filter to date YYYY-MM-DD")

	quoteCmd.AddCommand(quoteCreateCmd)
	quoteCmd.AddCommand(quoteListCmd)
	quoteCmd.AddCommand(quoteShowCmd)
	quoteCmd.AddCommand(quoteAcceptCmd)
	quoteCmd.AddCommand(quoteRejectCmd)
	quoteCmd.AddCommand(quoteDeleteCmd)
}
