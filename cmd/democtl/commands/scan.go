package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"funnelzip-demo/internal/common/config"
	"funnelzip-demo/internal/demo/sequencer"
	"funnelzip-demo/internal/models"

	ds "funnelzip-demo/internal/handlers/demo/demo-session"
)

type scanFlags struct {
	sample    int
	platforms []string
	auto      bool
	plain     bool
	interval  time.Duration
}

// scan: run the simulated compliance scan for one sample.
func scanCmd(e *env) *cobra.Command {
	var f scanFlags
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run the simulated compliance scan and show the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.interval <= 0 {
				f.interval = config.GetDuration(e.cfg.Demo.TickInterval)
			}
			if e.remote != nil {
				return runRemoteScan(cmd.Context(), e, f, cmd.OutOrStdout())
			}
			return runLocalScan(e, f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&f.sample, "sample", 0, "sample product index")
	cmd.Flags().StringSliceVar(&f.platforms, "platforms", nil, "platform ids (default: the sample's defaults)")
	cmd.Flags().BoolVar(&f.auto, "auto", false, "go to results as soon as the scan completes")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "print progress lines instead of the interactive view")
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "time per percent (default from config)")
	return cmd
}

// prepare builds a manually driven sequencer already on the scanning step.
func prepare(e *env, f scanFlags) (*sequencer.Sequencer, error) {
	seq := sequencer.New(e.catalog, sequencer.Options{
		Config: sequencer.Config{AutoAdvance: f.auto},
		Logger: e.log,
	})
	if err := seq.ChooseSample(f.sample); err != nil {
		seq.Close()
		return nil, err
	}
	if f.platforms != nil {
		if err := seq.Select(models.Selection{SampleIndex: f.sample, PlatformIDs: f.platforms}); err != nil {
			seq.Close()
			return nil, err
		}
	}
	if _, moved := seq.Advance(); !moved {
		seq.Close()
		return nil, fmt.Errorf("selection is not valid: pick a sample and at least one known platform")
	}
	return seq, nil
}

func runLocalScan(e *env, f scanFlags, out io.Writer) error {
	seq, err := prepare(e, f)
	if err != nil {
		return err
	}
	defer seq.Close()
	sample, _ := e.catalog.Sample(f.sample)

	if f.plain {
		runPlain(seq, e.catalog.Checks(), f.interval, out)
	} else {
		final, err := tea.NewProgram(newScanModel(seq, sample, e.catalog.Checks(), f.interval), tea.WithOutput(out)).Run()
		if err != nil {
			return err
		}
		if m := final.(scanModel); m.Cancelled() || m.Step() != models.StepResults {
			fmt.Fprintln(out, "scan cancelled")
			return nil
		}
	}

	renderResults(out, e.catalog.Results(), false)
	return nil
}

// runPlain drives seq to results, printing each check as it starts.
func runPlain(seq *sequencer.Sequencer, checks []models.CheckDescriptor, interval time.Duration, out io.Writer) {
	last := -1
	for {
		st := seq.Snapshot()
		if st.Step == models.StepResults {
			break
		}
		if st.Progress.Complete {
			seq.Advance()
			continue
		}
		if idx := st.Progress.CurrentCheckIndex; idx != last && idx < len(checks) {
			fmt.Fprintf(out, "[%3d%%] %s %s\n", st.Progress.Percent, checks[idx].Icon, checks[idx].Text)
			last = idx
		}
		time.Sleep(interval)
		seq.Tick()
	}
	fmt.Fprintln(out, "[100%] scan complete")
}

func runRemoteScan(ctx context.Context, e *env, f scanFlags, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var sess ds.SessionOutput
	if err := e.remote.PostJSON(ctx, ds.Route, nil, &sess); err != nil {
		return err
	}
	path := ds.Route + "/" + sess.SessionID
	defer func() { _ = e.remote.Delete(context.Background(), path) }()

	sample := f.sample
	if err := e.remote.PutJSON(ctx, path+"/selection", ds.SelectionInput{SampleIndex: &sample, PlatformIDs: f.platforms}, &sess); err != nil {
		return err
	}
	var adv ds.AdvanceOutput
	if err := e.remote.PostJSON(ctx, path+"/advance", nil, &adv); err != nil {
		return err
	}
	if !adv.Advanced {
		return fmt.Errorf("selection is not valid: pick a sample and at least one known platform")
	}

	last := -1
	for !adv.Progress.Complete && adv.Step == models.StepScanning {
		if idx := adv.Progress.CurrentCheckIndex; idx != last {
			fmt.Fprintf(out, "[%3d%%] %s\n", adv.Progress.Percent, adv.CurrentCheck)
			last = idx
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.interval * 5):
		}
		if err := e.remote.GetJSON(ctx, path, &adv.SessionOutput); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "[100%] scan complete")

	if adv.Step != models.StepResults {
		if err := e.remote.PostJSON(ctx, path+"/advance", nil, &adv); err != nil {
			return err
		}
	}
	var panel models.ResultsPanel
	if err := e.remote.GetJSON(ctx, "/api/results", &panel); err != nil {
		return err
	}
	renderResults(out, panel, false)
	return nil
}
