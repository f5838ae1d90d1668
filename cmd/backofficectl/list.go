package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finhr/backoffice/internal/adapters/api"
	"github.com/finhr/backoffice/internal/core/domain"
	"github.com/finhr/backoffice/internal/core/ports"
	"github.com/finhr/backoffice/internal/core/workflows"
	"github.com/finhr/backoffice/internal/utils"
)

func listCommand(a *app) *cobra.Command {
	var (
		page    int
		perPage int
		search  string
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Fetch one page of records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			if perPage <= 0 {
				perPage = a.cfg.DefaultPerPage
			}

			q := ports.ListQuery{Page: page, PerPage: perPage, Search: search, Filters: map[string]string{}}
			for _, f := range filters {
				name, value, ok := strings.Cut(f, "=")
				if !ok {
					return fmt.Errorf("invalid filter %q, expected name=value", f)
				}
				q.Filters[name] = value
			}

			resource := api.NewResource[map[string]any](a.client, info.path)
			result, err := resource.List(context.Background(), q)
			if err != nil {
				a.bridge.Bus().PublishError(err.Error())
				consoleToasts{}.ShowError(err.Error())
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result.Items); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "page %d/%d, %d total\n", result.CurrentPage, result.LastPage, result.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "page size (default from config)")
	cmd.Flags().StringVar(&search, "search", "", "search term")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as name=value, repeatable")

	return cmd
}

func trialBalanceCommand(a *app) *cobra.Command {
	var periodID string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance for a financial period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			lister := api.NewResource[domain.TrialBalanceRow](a.client, workflows.TrialBalancePath)

			w := workflows.NewTrialBalance(ctx, lister, a.bridge, a.logger, periodID)
			defer w.Close()

			w.Records.Refresh()
			result := w.Records.Result()
			for _, row := range result.Items {
				fmt.Fprintf(os.Stdout, "%-12s %-30s %14s %14s\n",
					utils.Dash(row.AccountCode),
					utils.Dash(row.AccountName),
					utils.AmountString(row.TotalDebit),
					utils.AmountString(row.TotalCredit))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&periodID, "period", "", "financial period id")
	return cmd
}
