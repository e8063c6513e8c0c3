// Command farmctl administers a running farm marketplace through its JSON API.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/AkshayGangurde12/farm-management-system/internal/models"
)

const defaultServer = "http://localhost:8080"

type options struct {
	server string
	token  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "farmctl",
		Short:        "Manage a farm marketplace server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", envOr("FARMCTL_SERVER", defaultServer), "marketplace base URL")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("FARMCTL_TOKEN"), "API bearer token")

	root.AddCommand(
		newLoginCmd(opts),
		newProductsCmd(opts),
		newFarmersCmd(opts),
		newFarmingTypesCmd(opts),
	)
	return root
}

func newLoginCmd(opts *options) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print an API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := NewClient(opts.server, "").Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", auth.User.Username, auth.User.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "export FARMCTL_TOKEN=%s\n", auth.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newProductsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Work with agro products",
	}

	var mine bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := NewClient(opts.server, opts.token).Products(cmd.Context(), mine)
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), products)
			return nil
		},
	}
	list.Flags().BoolVar(&mine, "mine", false, "only products owned by the token's user")

	cmd.AddCommand(list)
	return cmd
}

func newFarmersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "farmers",
		Short: "Work with farmer records",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List farmer records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			farmers, err := NewClient(opts.server, opts.token).Farmers(cmd.Context())
			if err != nil {
				return err
			}
			renderFarmers(cmd.OutOrStdout(), farmers)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a farmer record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid farmer id %q", args[0])
			}
			if err := NewClient(opts.server, opts.token).DeleteFarmer(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Farmer record %d deleted\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}

func newFarmingTypesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "farming-types",
		Short: "Work with the farming type catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List farming types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := NewClient(opts.server, opts.token).FarmingTypes(cmd.Context())
			if err != nil {
				return err
			}
			renderFarmingTypes(cmd.OutOrStdout(), types)
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a farming type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := NewClient(opts.server, opts.token).AddFarmingType(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Farming type %q added with id %d\n", ft.Name, ft.ID)
			return nil
		},
	}

	cmd.AddCommand(list, add)
	return cmd
}

func newTable(out io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func renderProducts(out io.Writer, products []models.Product) {
	t := newTable(out, table.Row{"ID", "Name", "Category", "Price", "Quantity", "Owner", "Available"})
	for _, p := range products {
		t.AppendRow(table.Row{p.ID, p.Name, p.Category, p.Price, p.Quantity, p.OwnerEmail, yesNo(p.Available)})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(products)})
	t.Render()
}

func renderFarmers(out io.Writer, farmers []models.FarmerRecord) {
	t := newTable(out, table.Row{"ID", "Name", "National ID", "Age", "Gender", "Phone", "Farming Type"})
	for _, f := range farmers {
		t.AppendRow(table.Row{f.ID, f.FarmerName, f.NationalID, f.Age, f.Gender, f.Phone, f.FarmingType})
	}
	t.Render()
}

func renderFarmingTypes(out io.Writer, types []models.FarmingType) {
	t := newTable(out, table.Row{"ID", "Name"})
	for _, ft := range types {
		t.AppendRow(table.Row{ft.ID, ft.Name})
	}
	t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
