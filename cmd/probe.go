package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/marsdash/internal/fetcher"
	"github.com/ziadkadry99/marsdash/internal/progress"
	"github.com/ziadkadry99/marsdash/internal/rover"
)

var probeCmd = &cobra.Command{
	Use:   "probe [rover...]",
	Short: "Fetch each rover once and report what the backend returns",
	Long: `Fetches every rover in the catalog (or the ones named) through the same
client the dashboard uses and prints the photo count and mission status
for each. Exits non-zero when any rover fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newFetcherFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating fetcher: %w", err)
		}

		rovers := cfg.Rovers
		if len(args) > 0 {
			rovers = args
		}

		results := runProbe(cmd.Context(), client, rovers, progress.NewReporter(cmd.ErrOrStderr()))
		printProbeResults(cmd.OutOrStdout(), results)

		failed := 0
		for _, r := range results {
			if r.Err != nil && !errors.Is(r.Err, rover.ErrNoPhotos) {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d rovers failed", failed, len(results))
		}
		return nil
	},
}

// probeResult is the outcome of fetching one rover.
type probeResult struct {
	Rover   string
	Payload *rover.Payload
	Err     error
}

// runProbe fetches each rover in order, reporting progress as it goes.
func runProbe(ctx context.Context, f fetcher.Fetcher, rovers []string, rep progress.Reporter) []probeResult {
	if ctx == nil {
		ctx = context.Background()
	}
	rep.Start(len(rovers))
	defer rep.Finish()

	results := make([]probeResult, 0, len(rovers))
	for i, name := range rovers {
		payload, err := f.Fetch(ctx, name)
		results = append(results, probeResult{Rover: name, Payload: payload, Err: err})
		rep.Update(i+1, name)
	}
	return results
}

func printProbeResults(w io.Writer, results []probeResult) {
	for _, r := range results {
		switch {
		case errors.Is(r.Err, rover.ErrNoPhotos):
			fmt.Fprintf(w, "%-12s no photos\n", r.Rover)
		case r.Err != nil:
			fmt.Fprintf(w, "%-12s FAILED: %v\n", r.Rover, r.Err)
		default:
			m, _ := r.Payload.Mission()
			fmt.Fprintf(w, "%-12s %d photos, status %s, taken %s\n",
				r.Rover, len(r.Payload.Photos), m.Status, r.Payload.CaptureDate())
		}
	}
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
