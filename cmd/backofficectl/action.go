package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finhr/backoffice/internal/adapters/api"
	"github.com/finhr/backoffice/internal/core/ports"
	"github.com/finhr/backoffice/internal/core/workflows"
)

func actionCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "action <resource> <action> <record-id>",
		Short: "Run a record action (delete, toggle-status, post, accept, close)",
		Long: "Destructive actions ask for confirmation before anything is sent.\n" +
			"Pass --yes to confirm without the prompt.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			action := ports.Action(args[1])
			recordID := args[2]

			ctx := context.Background()
			collab := api.NewResource[map[string]any](a.client, info.path)
			w := workflows.New[map[string]any](ctx, collab, a.bridge, a.logger, workflows.Config{
				ListRoute:        info.path,
				GatedActions:     info.gated,
				ImmediateActions: info.immediate,
			})
			defer w.Close()

			if err := w.RequestAction(action, recordID); err != nil {
				return fmt.Errorf("action %q is not available on %s", action, args[0])
			}

			gate := w.Gate(action)
			if gate == nil {
				// Immediate action, already executed.
				return nil
			}

			if !yes && !promptConfirm(action, recordID) {
				_ = w.Cancel(action)
				fmt.Fprintln(os.Stderr, "cancelled, nothing was sent")
				return nil
			}
			return w.Confirm(action)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func promptConfirm(action ports.Action, recordID string) bool {
	fmt.Fprintf(os.Stderr, "%s record %s? [y/N] ", action, recordID)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
