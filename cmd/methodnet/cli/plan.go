package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ackbas/methodnet/internal/planner"
	"github.com/ackbas/methodnet/internal/render"
)

func newPlanCmd() *cobra.Command {
	var catalogueFile, requestFile, format string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a procedure from a catalogue and a request file and print the solution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, catalogueFile, requestFile, format, timeout)
		},
	}

	cmd.Flags().StringVar(&catalogueFile, "catalogue", "", "Path to the catalogue YAML document (required)")
	cmd.Flags().StringVar(&requestFile, "request", "", "Path to the planning request YAML file (required)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or transcript")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Search deadline; 0 means no deadline")
	cmd.MarkFlagRequired("catalogue")
	cmd.MarkFlagRequired("request")

	return cmd
}

func runPlan(cmd *cobra.Command, catalogueFile, requestFile, format string, timeout time.Duration) error {
	if v := viper.GetDuration("timeout"); v > 0 {
		timeout = v
	}

	catalogueYAML, err := os.ReadFile(catalogueFile)
	if err != nil {
		return fmt.Errorf("read catalogue: %w", err)
	}
	req, err := readRequest(requestFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	proc, target, err := planner.PlanProcedure(ctx, catalogueYAML, req, logger)
	if err != nil {
		if target.Type == nil {
			return err // LoadError or BadRequestError
		}
		// NoSolution/Cancelled/ResourceExhausted: a normal negative
		// result, not an error exit (spec.md §7).
		if format == "transcript" {
			fmt.Fprintln(cmd.OutOrStdout(), err)
			return nil
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(render.EmptyResponse())
	}

	if format == "transcript" {
		fmt.Fprint(cmd.OutOrStdout(), render.Transcript(proc))
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(render.Render(proc, target))
}
