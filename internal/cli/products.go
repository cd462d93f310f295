package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fakestore/internal/models"
)

// ProductsOptions holds flags for the products command.
type ProductsOptions struct {
	*RootOptions
	Category string
}

func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, optionally filtered by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProducts(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "filter by category")

	return cmd
}

func runProducts(cmd *cobra.Command, opts *ProductsOptions) error {
	a, err := buildApp(opts.RootOptions)
	if err != nil {
		return err
	}

	var products []models.Product
	if opts.Category != "" {
		products, err = a.Products.FetchByCategory(cmd.Context(), opts.Category)
	} else {
		products, err = a.Products.Fetch(cmd.Context())
	}
	if err != nil {
		return err
	}

	for _, p := range products {
		printProduct(cmd, p)
	}
	return nil
}

func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show a single product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("product id must be an integer: %q", args[0])
			}

			a, err := buildApp(rootOpts)
			if err != nil {
				return err
			}

			p, err := a.Products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			printProduct(cmd, p)
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p.Description)
			return nil
		},
	}

	return cmd
}

func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(rootOpts)
			if err != nil {
				return err
			}

			categories, err := a.Products.Categories(cmd.Context())
			if err != nil {
				return err
			}

			for _, c := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func printProduct(cmd *cobra.Command, p models.Product) {
	title := color.New(color.Bold).Sprint(p.Title)
	price := color.New(color.FgGreen).Sprintf("$%s", p.Price.StringFixed(2))
	fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s  %s  [%s]  %.1f★ (%d)\n",
		p.Id, title, price, p.Category, p.Rating.Rate, p.Rating.Count)
}
