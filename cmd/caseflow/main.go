// Package main provides the caseflow binary: it runs a single support ticket
// through the workflow engine and prints the final payload, the execution log
// and a short summary.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/telaro/caseflow"
	"github.com/telaro/caseflow/engine"
	"github.com/telaro/caseflow/model"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "caseflow",
		Short:         "Customer-support case workflow engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCommand())
	return root
}

func newRunCommand() *cobra.Command {
	var (
		configURL string
		mock      bool
		commonURL string
		atlasURL  string
		verbose   bool
		input     = model.Input{
			CustomerName: "John Smith",
			Email:        "john.smith@email.com",
			Query:        "I have a billing issue with my premium account. The charge seems incorrect for last month.",
			Priority:     "high",
			TicketID:     "12345",
		}
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one ticket through the workflow and print the final payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			options := []caseflow.Option{caseflow.WithLogger(logger)}
			if configURL != "" {
				options = append(options, caseflow.WithConfigURL(configURL))
			} else {
				config := caseflow.DefaultConfig()
				config.Providers.Common.URL = commonURL
				config.Providers.Atlas.URL = atlasURL
				options = append(options, caseflow.WithConfig(config))
			}
			if mock {
				options = append(options, caseflow.WithMockGateway())
			}

			service, err := caseflow.New(options...)
			if err != nil {
				return err
			}
			record, err := service.Run(cmd.Context(), input)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), record)
		},
	}

	cmd.Flags().StringVar(&configURL, "config", "", "configuration URL (YAML)")
	cmd.Flags().BoolVar(&mock, "mock", false, "use the in-process mock ability backend")
	cmd.Flags().StringVar(&commonURL, "common-url", "http://localhost:8001", "COMMON provider base URL")
	cmd.Flags().StringVar(&atlasURL, "atlas-url", "http://localhost:8002", "ATLAS provider base URL")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringVar(&input.CustomerName, "customer", input.CustomerName, "customer name")
	cmd.Flags().StringVar(&input.Email, "email", input.Email, "customer email")
	cmd.Flags().StringVar(&input.Query, "query", input.Query, "free-text query")
	cmd.Flags().StringVar(&input.Priority, "priority", input.Priority, "ticket priority")
	cmd.Flags().StringVar(&input.TicketID, "ticket", input.TicketID, "ticket identifier")
	return cmd
}

func report(w io.Writer, record *model.CaseRecord) error {
	payload, err := json.MarshalIndent(record.FinalPayload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Final payload:")
	fmt.Fprintln(w, string(payload))

	fmt.Fprintln(w, "\nExecution summary:")
	fmt.Fprintf(w, "  Stages completed: %d\n", len(record.CompletedStages))
	fmt.Fprintf(w, "  Current stage:    %s\n", record.CurrentStage)
	fmt.Fprintf(w, "  Escalation:       %v\n", record.EscalationRequired)
	fmt.Fprintf(w, "  Solution score:   %d\n", engine.EffectiveScore(record))
	fmt.Fprintf(w, "  Status:           %s\n", record.FinalPayload.Status)

	fmt.Fprintln(w, "\nExecution log:")
	for _, entry := range record.ExecutionLog {
		fmt.Fprintf(w, "  %s\n", entry)
	}
	return nil
}
