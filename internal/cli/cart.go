package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fakestore/internal/app"
)

// CartOptions holds flags shared by the cart subcommands. UserId
// selects whose cart to load; carts carry no local persistence, so each
// invocation initializes from the remote before mutating.
type CartOptions struct {
	*RootOptions
	UserId int
}

func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CartOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and mutate the active cart",
	}

	cmd.PersistentFlags().IntVar(&opts.UserId, "user", 0, "user id owning the cart (required)")
	_ = cmd.MarkPersistentFlagRequired("user")

	cmd.AddCommand(newCartShowCommand(opts))
	cmd.AddCommand(newCartAddCommand(opts))
	cmd.AddCommand(newCartSetCommand(opts))
	cmd.AddCommand(newCartRemoveCommand(opts))

	return cmd
}

func newCartShowCommand(opts *CartOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the user's active cart with prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadCart(cmd, opts)
			if err != nil {
				return err
			}
			return printCart(cmd, a)
		},
	}
}

func newCartAddCommand(opts *CartOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <productId> <quantity>",
		Short: "Add quantity of a product to the cart",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productId, quantity, err := parseItemArgs(args)
			if err != nil {
				return err
			}

			a, err := loadCart(cmd, opts)
			if err != nil {
				return err
			}

			if err := a.Carts.AddItem(cmd.Context(), productId, quantity); err != nil {
				return err
			}
			return printCart(cmd, a)
		},
	}
}

func newCartSetCommand(opts *CartOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <productId> <quantity>",
		Short: "Set a product's quantity (zero removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productId, quantity, err := parseItemArgs(args)
			if err != nil {
				return err
			}

			a, err := loadCart(cmd, opts)
			if err != nil {
				return err
			}

			if err := a.Carts.SetQuantity(cmd.Context(), productId, quantity); err != nil {
				return err
			}
			return printCart(cmd, a)
		},
	}
}

func newCartRemoveCommand(opts *CartOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <productId>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productId, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("product id must be an integer: %q", args[0])
			}

			a, err := loadCart(cmd, opts)
			if err != nil {
				return err
			}

			if err := a.Carts.RemoveItem(cmd.Context(), productId); err != nil {
				return err
			}
			return printCart(cmd, a)
		},
	}
}

func loadCart(cmd *cobra.Command, opts *CartOptions) (*app.App, error) {
	a, err := buildApp(opts.RootOptions)
	if err != nil {
		return nil, err
	}

	if err := a.Carts.InitializeForUser(cmd.Context(), opts.UserId); err != nil {
		return nil, err
	}
	return a, nil
}

func printCart(cmd *cobra.Command, a *app.App) error {
	state := a.Carts.State()
	if state.Cart == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no active cart")
		return nil
	}

	// catalog needed for the price join
	if _, err := a.Products.Fetch(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cart %d (user %d, %s)\n",
		state.Cart.Id, state.Cart.UserId, state.Cart.Date.Format("2006-01-02"))

	for _, row := range a.Products.Join(state.Cart) {
		if row.Unknown {
			fmt.Fprintf(out, "  %4d  (unknown product)  x%d\n", row.ProductId, row.Quantity)
			continue
		}
		fmt.Fprintf(out, "  %4d  %-40s  $%s x%d = $%s\n",
			row.ProductId, row.Title, row.UnitPrice.StringFixed(2),
			row.Quantity, row.LineTotal.StringFixed(2))
	}

	total := color.New(color.Bold, color.FgGreen).Sprintf("$%s", a.Products.Total(state.Cart).StringFixed(2))
	fmt.Fprintf(out, "total: %s\n", total)
	return nil
}

func parseItemArgs(args []string) (int, int, error) {
	productId, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("product id must be an integer: %q", args[0])
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("quantity must be an integer: %q", args[1])
	}
	return productId, quantity, nil
}
