package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	rosterService "github.com/m04kA/SMC-RescheduleService/internal/service/roster"
)

func newStaffCmd(configPath *string) *cobra.Command {
	var all bool

	c := &cobra.Command{
		Use:   "staff",
		Short: "Print staff options (any staff first, then the roster)",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(*configPath)
			if err != nil {
				return err
			}
			defer d.close()

			result, err := rosterService.NewService(d.staff, d.log).ListOptions(context.Background(), all)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STAFF_ID\tNAME\tACTIVE\tWORKING_DAYS")
			for _, opt := range result.Options {
				if opt.Staff == nil {
					fmt.Fprintf(tw, "%s\t%s\t-\t-\n", opt.Selection, opt.Label)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", opt.Selection, opt.Label, opt.Staff.IsActive, opt.Staff.WorkingDays)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if result.Dropped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d entries with reserved id were skipped\n", result.Dropped)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&all, "all", false, "include inactive staff")
	return c
}
