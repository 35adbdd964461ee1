// Customer commands for the storebook CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opal-works/storebook/pkg/types"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

var (
	customerFirstName string
	customerLastName  string
	customerEmail     string
	customerPhone     string
	customerAddress   string
)

var customerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new customer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		c := types.Customer{
			FirstName: customerFirstName,
			LastName:  customerLastName,
			Email:     customerEmail,
			Phone:     customerPhone,
			Address:   customerAddress,
		}
		if err := store.Customers().Save(&c); err != nil {
			return err
		}

		if flagJSON {
			return printJSON(c)
		}
		fmt.Println("Created customer:", c.ID)
		return nil
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers with optional name filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		customers, err := store.Customers().List(types.CustomerFilter{
			FirstName: customerFirstName,
			LastName:  customerLastName,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(customers)
		}
		w := newTabWriter()
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
		for _, c := range customers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.FullName(), c.Email, c.Phone)
		}
		return w.Flush()
	},
}

var customerShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		c, err := store.Customers().Get(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(c)
		}
		fmt.Printf("ID:      %s\n", c.ID)
		fmt.Printf("Name:    %s\n", c.FullName())
		fmt.Printf("Email:   %s\n", c.Email)
		fmt.Printf("Phone:   %s\n", c.Phone)
		fmt.Printf("Address: %s\n", c.Address)
		return nil
	},
}

var customerUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a customer's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		c, err := store.Customers().Get(args[0])
		if err != nil {
			return err
		}

		if customerFirstName != "" {
			c.FirstName = customerFirstName
		}
		if customerLastName != "" {
			c.LastName = customerLastName
		}
		c.Update(customerEmail, customerPhone, customerAddress)

		if err := store.Customers().Save(&c); err != nil {
			return err
		}

		if flagJSON {
			return printJSON(c)
		}
		fmt.Println("Updated customer:", c.ID)
		return nil
	},
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.Customers().Delete(args[0]); err != nil {
			return err
		}
		if !flagJSON {
			fmt.Println("Deleted customer:", args[0])
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{customerAddCmd, customerUpdateCmd} {
		c.Flags().StringVar(&customerFirstName, "first", "", "first name")
		c.Flags().StringVar(&customerLastName, "last", "", "last name")
		c.Flags().StringVar(&customerEmail, "email", "", "email address")
		c.Flags().StringVar(&customerPhone, "phone", "", "phone number")
		c.Flags().StringVar(&customerAddress, "address", "", "postal address")
	}
	customerAddCmd.MarkFlagRequired("first")
	customerAddCmd.MarkFlagRequired("last")

	customerListCmd.Flags().StringVar(&customerFirstName, "first", "", "first name contains")
	customerListCmd.Flags().StringVar(&customerLastName, "last", "", "last name contains")

	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerListCmd)
	customerCmd.AddCommand(customerShowCmd)
	customerCmd.AddCommand(customerUpdateCmd)
	customerCmd.AddCommand(customerDeleteCmd)
}
