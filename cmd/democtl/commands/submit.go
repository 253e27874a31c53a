package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"funnelzip-demo/internal/common/config"
	"funnelzip-demo/internal/models"
	"funnelzip-demo/internal/submission"
)

type submitFlags struct {
	inquiryType string
	fields      map[string]*string
	asJSON      bool
}

// submit inquiry|access: fill in a lead form and submit it.
func submitCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a lead-capture form",
	}
	cmd.AddCommand(
		formCmd(e, "inquiry", "Send a partnership or investment inquiry", models.KindPartnership),
		formCmd(e, "access", "Request access to the platform", models.KindAccessRequest),
	)
	return cmd
}

func formCmd(e *env, use, short string, kind models.SubmissionKind) *cobra.Command {
	f := submitFlags{fields: map[string]*string{}}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := kind
			if kind.IsInquiry() {
				kind = models.SubmissionKind(f.inquiryType)
				if !kind.IsInquiry() {
					return fmt.Errorf("--type must be partnership or investment")
				}
			}

			backend, closeFn, err := openLeads(cmd.Context(), e)
			if err != nil {
				return err
			}
			defer closeFn()

			form := submission.NewForm(kind, backend, config.GetDuration(e.cfg.Submission.SuccessWindow))
			defer form.Close()
			form.Open()
			for name, v := range f.fields {
				if err := form.Set(name, *v); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if err := form.Submit(cmd.Context()); err != nil {
				st := form.State()
				if st.Error != nil && st.Error.Field != "" {
					return fmt.Errorf("%s: %s", st.Error.Field, st.Error.Message)
				}
				if st.Error != nil {
					fmt.Fprintln(out, st.Error.Message)
				}
				return err
			}

			st := form.State()
			if f.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st.Record)
			}
			fmt.Fprintln(out, doneStyle.Render("Thank you! We'll be in touch within 24 hours."))
			fmt.Fprintf(out, "  id:        %s\n", st.Record.ID)
			fmt.Fprintf(out, "  type:      %s\n", st.Record.Kind)
			fmt.Fprintf(out, "  timestamp: %s\n", st.Record.SubmittedAt.Format(models.TimestampLayout))
			return nil
		},
	}

	names := submission.FieldsFor(kind)
	sort.Strings(names)
	for _, name := range names {
		v := new(string)
		f.fields[name] = v
		usage := name
		if name == "role" {
			usage = fmt.Sprintf("role (one of %v)", submission.Roles)
		}
		cmd.Flags().StringVar(v, name, "", usage)
	}
	if kind.IsInquiry() {
		cmd.Flags().StringVar(&f.inquiryType, "type", string(models.KindPartnership), "partnership or investment")
	}
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the stored record as JSON")
	return cmd
}
