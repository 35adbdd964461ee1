// Product commands for the storebook CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opal-works/storebook/pkg/types"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage the product catalogue",
}

var (
	productName        string
	productDescription string
	productPurchase    string
	productSale        string
	productMinPrice    string
	productMaxPrice    string
)

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		purchase, err := parsePrice(productPurchase)
		if err != nil {
			return err
		}
		sale, err := parsePrice(productSale)
		if err != nil {
			return err
		}

		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		p := types.Product{
			Name:          productName,
			Description:   productDescription,
			PurchasePrice: purchase,
			SalePrice:     sale,
		}
		if err := store.Products().Save(&p); err != nil {
			return err
		}

		if flagJSON {
			return printJSON(p)
		}
		fmt.Println("Created product:", p.ID)
		return nil
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products with optional name and price filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := types.ProductFilter{Name: productName}
		if productMinPrice != "" {
			min, err := parsePrice(productMinPrice)
			if err != nil {
				return err
			}
			filter.MinPrice = &min
		}
		if productMaxPrice != "" {
			max, err := parsePrice(productMaxPrice)
			if err != nil {
				return err
			}
			filter.MaxPrice = &max
		}

		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		products, err := store.Products().List(filter)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(products)
		}
		w := newTabWriter()
		fmt.Fprintln(w, "ID\tNAME\tPURCHASE\tSALE\tMARGIN%")
		for _, p := range products {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.Name, p.PurchasePrice, p.SalePrice, p.Margin().Round(2))
		}
		return w.Flush()
	},
}

var productShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		p, err := store.Products().Get(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(p)
		}
		fmt.Printf("ID:          %s\n", p.ID)
		fmt.Printf("Name:        %s\n", p.Name)
		fmt.Printf("Description: %s\n", p.Description)
		fmt.Printf("Purchase:    %s\n", p.PurchasePrice)
		fmt.Printf("Sale:        %s\n", p.SalePrice)
		fmt.Printf("Margin:      %s%%\n", p.Margin().Round(2))
		return nil
	},
}

var productUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a product's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		p, err := store.Products().Get(args[0])
		if err != nil {
			return err
		}

		if productName != "" {
			p.Name = productName
		}
		if productDescription != "" {
			p.Description = productDescription
		}
		if productPurchase != "" {
			p.PurchasePrice, err = parsePrice(productPurchase)
			if err != nil {
				return err
			}
		}
		if productSale != "" {
			p.SalePrice, err = parsePrice(productSale)
			if err != nil {
				return err
			}
		}

		if err := store.Products().Save(&p); err != nil {
			return err
		}

		if flagJSON {
			return printJSON(p)
		}
		fmt.Println("Updated product:", p.ID)
		return nil
	},
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachBackend()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.Products().Delete(args[0]); err != nil {
			return err
		}
		if !flagJSON {
			fmt.Println("Deleted product:", args[0])
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{productAddCmd, productUpdateCmd} {
		c.Flags().StringVar(&productName, "name", "", "product name")
		c.Flags().StringVar(&productDescription, "description", "", "product description")
		c.Flags().StringVar(&productPurchase, "purchase", "", "purchase price")
		c.Flags().StringVar(&productSale, "sale", "", "sale price")
	}
	productAddCmd.MarkFlagRequired("name")
	productAddCmd.MarkFlagRequired("purchase")
	productAddCmd.MarkFlagRequired("sale")

	productListCmd.Flags().StringVar(&productName, "name", "", "name contains")
	productListCmd.Flags().StringVar(&productMinPrice, "min-price", "", "minimum sale price")
	productListCmd.Flags().StringVar(&productMaxPrice, "max-price", "", "maximum sale price")

	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productShowCmd)
	productCmd.AddCommand(productUpdateCmd)
	productCmd.AddCommand(productDeleteCmd)
}
