package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"funnelzip-demo/internal/models"
)

// results: print the canned results panel.
func resultsCmd(e *env) *cobra.Command {
	var (
		asJSON  bool
		details bool
	)
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show the scan results panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel := e.catalog.Results()
			if e.remote != nil {
				if err := e.remote.GetJSON(cmd.Context(), "/api/results", &panel); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(panel)
			}
			renderResults(out, panel, details)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the panel as JSON")
	cmd.Flags().BoolVar(&details, "details", false, "expand critical issues and the optimization summary")
	return cmd
}

func renderResults(out io.Writer, panel models.ResultsPanel, details bool) {
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Step %d of 3: Results", models.StepResults.Number())))
	fmt.Fprintln(out)

	cards := make([]string, 0, len(panel.Summary))
	for _, c := range panel.Summary {
		cards = append(cards, cardStyle.Render(fmt.Sprintf("%s %s\n%s\n%s", c.Icon, c.Value, c.Label, dimStyle.Render(c.Caption))))
	}
	fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	fmt.Fprintln(out)

	fmt.Fprintln(out, criticalStyle.Render(fmt.Sprintf("Critical Issues (%d)", len(panel.CriticalIssues))))
	for _, is := range panel.CriticalIssues {
		fmt.Fprintf(out, "  [%s] %s  %s\n", is.Severity, is.Title, dimStyle.Render(is.Platform))
		fmt.Fprintf(out, "      %s\n", is.Teaser)
		if details {
			fmt.Fprintf(out, "      %s\n", is.Description)
			fmt.Fprintf(out, "      Impact:   %s\n", is.Impact)
			fmt.Fprintf(out, "      Solution: %s\n", is.Solution)
			for _, line := range strings.Split(is.Code, "\n") {
				fmt.Fprintf(out, "        %s\n", dimStyle.Render(line))
			}
		}
	}
	fmt.Fprintln(out)

	opt := panel.Optimizations
	fmt.Fprintln(out, activeStyle.Render("Optimization Summary"))
	if !details {
		fmt.Fprintf(out, "  %d title rewrites, %d keyword opportunities, %d platform playbooks\n",
			len(opt.TitleOptimization), len(opt.KeywordAnalysis), len(opt.PlatformRecommendations))
	} else {
		for _, t := range opt.TitleOptimization {
			fmt.Fprintf(out, "  %-16s %s -> %s (%s, limit %s)\n", t.Platform, t.Current, t.Optimized, t.Improvement, t.Limit)
		}
		for _, k := range opt.KeywordAnalysis {
			fmt.Fprintf(out, "  %-26s %-6s %s, %s, competition %s\n", k.Keyword, k.Opportunity, k.Potential, k.SearchVolume, k.Competition)
		}
		for _, p := range opt.PlatformRecommendations {
			fmt.Fprintf(out, "  %s %s\n", p.Icon, p.Platform)
			for _, r := range p.Recommendations {
				fmt.Fprintf(out, "      - %s\n", r)
			}
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, helpStyle.Render("Request a demo: democtl submit inquiry --type partnership"))
}
