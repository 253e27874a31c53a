package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"funnelzip-demo/internal/models"
	"funnelzip-demo/internal/submission"
)

// log <kind>: list recorded submissions.
func logCmd(e *env) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:       "log <partnership|investment|access-request>",
		Short:     "List recorded form submissions",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(models.KindPartnership), string(models.KindInvestment), string(models.KindAccessRequest)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := models.SubmissionKind(args[0])
			if args[0] == "access" {
				kind = models.KindAccessRequest
			}
			if !kind.Valid() {
				return fmt.Errorf("unknown submission type %q", args[0])
			}

			backend, closeFn, err := openLeads(cmd.Context(), e)
			if err != nil {
				return err
			}
			defer closeFn()

			recs, err := backend.History(cmd.Context(), kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if recs == nil {
					recs = []models.SubmissionRecord{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(recs)
			}
			if len(recs) == 0 {
				fmt.Fprintln(out, dimStyle.Render("no submissions yet"))
				return nil
			}
			for _, r := range recs {
				fmt.Fprintf(out, "%s  %s  %s\n", r.SubmittedAt.Format(models.TimestampLayout), r.ID, formatFields(kind, r.Fields))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}

func formatFields(kind models.SubmissionKind, fields map[string]string) string {
	names := submission.FieldsFor(kind)
	if names == nil {
		for k := range fields {
			names = append(names, k)
		}
		sort.Strings(names)
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if v := fields[n]; v != "" {
			parts = append(parts, n+"="+v)
		}
	}
	return strings.Join(parts, " ")
}
