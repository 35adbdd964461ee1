// Order commands for the storebook CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opal-works/storebook/pkg/types"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage orders",
}

var (
	orderCustomer string
	orderDate     string
	orderNotes    string
	orderItems    []string
	orderStatus   string
	orderFrom     string
	orderTo       string
)

var orderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new order",
	Long: `Create builds an order from repeatable --item specs of the form
product:quantity[:discount]. The product's name and sale price become
the line's description and unit price.

Example:
  storebook order create --customer 1a2b3c4d --item 9f8e7d6c:3 --item 5a6b7c8d:1:10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDate(orderDate)
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

		o := types.Order{
			CustomerID: orderCustomer,
			Date:       date,
			Notes:      orderNotes,
		}
		for _, spec := range orderItems {
			productID, quantity, discount, err := parseOrderItem(spec)
			if err != nil {
				return err
			}
			p, err := store.Products().Get(productID)
			if err != nil {
				return fmt.Errorf("item %q: %w", spec, err)
			}
			line := types.OrderLine{
				ProductID:       p.ID,
				Description:     p.Name,
				Quantity:        quantity,
				UnitPrice:       p.SalePrice,
				DiscountPercent: discount,
			}
			if err := o.AddLine(line); err != nil {
				return fmt.Errorf("item %q: %w", spec, err)
			}
		}

		if err := store.Orders().Save(&o); err != nil {
			return err
		}

		if flagJSON {
			return printJSON(o)
		}
		fmt.Printf("Created order: %s (total %s)\n", o.ID, o.Total())
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders with optional filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDate(orderFrom)
		if err != nil {
			return err
		}
		to, err := parseDate(orderTo)
		if err != nil {
			return err
		}

		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		orders, err := store.Orders().List(types.OrderFilter{
			Status:     orderStatus,
			CustomerID: orderCustomer,
			DateFrom:   from,
			DateTo:     to,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(orders)
		}
		w := newTabWriter()
		fmt.Fprintln(w, "ID\tDATE\tCUSTOMER\tSTATUS\tLINES\tTOTAL")
		for _, o := range orders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				o.ID, formatDate(o.Date), o.CustomerID, o.Status, len(o.Lines), o.Total())
		}
		return w.Flush()
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display an order with its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		o, err := store.Orders().Get(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(o)
		}
		fmt.Printf("ID:       %s\n", o.ID)
		fmt.Printf("Customer: %s\n", o.CustomerID)
		fmt.Printf("Date:     %s\n", formatDate(o.Date))
		fmt.Printf("Status:   %s\n", o.Status)
		if o.Notes != "" {
			fmt.Printf("Notes:    %s\n", o.Notes)
		}
		fmt.Println()
		w := newTabWriter()
		fmt.Fprintln(w, "#\tDESCRIPTION\tQTY\tUNIT\tDISC%\tSUBTOTAL")
		for _, l := range o.Lines {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
				l.ID, l.Description, l.Quantity, l.UnitPrice, l.DiscountPercent, l.Subtotal())
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\nTotal: %s\n", o.Total())
		return nil
	},
}

var orderStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Set an order's status",
	Long:  "Set an order's status. Valid values: Pending, InProgress, Completed, Cancelled.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.Orders().SetStatus(args[0], args[1]); err != nil {
			return err
		}
		if !flagJSON {
			fmt.Printf("Order %s is now %s\n", args[0], args[1])
		}
		return nil
	},
}

var orderDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an order and its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.Orders().Delete(args[0]); err != nil {
			return err
		}
		if !flagJSON {
			fmt.Println("Deleted order:", args[0])
		}
		return nil
	},
}

func init() {
	orderCreateCmd.Flags().StringVar(&orderCustomer, "customer", "", "customer id (required)")
	orderCreateCmd.Flags().StringVar(&orderDate, "date", "", "order date YYYY-MM-DD (default today)")
	orderCreateCmd.Flags().StringVar(&orderNotes, "notes", "", "free-form notes")
	orderCreateCmd.Flags().StringArrayVar(&orderItems, "item", nil, "order line product:quantity[:discount], repeatable")
	orderCreateCmd.MarkFlagRequired("customer")
	orderCreateCmd.MarkFlagRequired("item")

	orderListCmd.Flags().StringVar(&orderStatus, "status", "", "filter by status")
	orderListCmd.Flags().StringVar(&orderCustomer, "customer", "", "filter by customer id")
	orderListCmd.Flags().StringVar(&orderFrom, "from", "", "filter from date YYYY-MM-DD")
	orderListCmd.Flags().StringVar(&orderTo, "to", "", "filter to date YYYY-MM-DD")

	orderCmd.AddCommand(orderCreateCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderStatusCmd)
	orderCmd.AddCommand(orderDeleteCmd)
}
