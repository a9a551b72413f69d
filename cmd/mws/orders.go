package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gurre/mws/sections"
)

// newOrdersCmd lists and inspects orders.
func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Query the Orders section",
	}
	cmd.AddCommand(newOrdersListCmd())
	cmd.AddCommand(newOrdersItemsCmd())
	return cmd
}

func newOrdersListCmd() *cobra.Command {
	var (
		createdAfter string
		statuses     []string
		nextToken    string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders in the client's marketplace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := newClient(ctx)
			if err != nil {
				return err
			}
			orders := sections.NewOrders(c)

			if nextToken != "" {
				res, err := orders.ListOrdersByNextToken(ctx, nextToken)
				if err != nil {
					return err
				}
				return printParsed(res)
			}

			filter := sections.ListOrdersFilter{OrderStatuses: statuses}
			if createdAfter != "" {
				t, err := time.Parse(time.RFC3339, createdAfter)
				if err != nil {
					return fmt.Errorf("invalid --created-after value: %w", err)
				}
				filter.CreatedAfter = t
			} else {
				filter.CreatedAfter = time.Now().AddDate(0, 0, -7)
			}
			res, err := orders.ListOrders(ctx, nil, filter)
			if err != nil {
				return err
			}
			return printParsed(res)
		},
	}
	cmd.Flags().StringVar(&createdAfter, "created-after", "", "RFC3339 lower bound on order creation (default 7 days ago)")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "order statuses to include")
	cmd.Flags().StringVar(&nextToken, "next-token", "", "continue a previous listing")
	return cmd
}

func newOrdersItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items <amazon-order-id>",
		Short: "List the line items of one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := newClient(ctx)
			if err != nil {
				return err
			}
			res, err := sections.NewOrders(c).ListOrderItems(ctx, args[0])
			if err != nil {
				return err
			}
			return printParsed(res)
		},
	}
}
