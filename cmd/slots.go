package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	computeSlotsUC "github.com/m04kA/SMC-RescheduleService/internal/usecase/compute_slots"
)

func newSlotsCmd(configPath *string) *cobra.Command {
	var (
		staff string
		date  string
	)

	c := &cobra.Command{
		Use:   "slots",
		Short: "Print bookable time slots for a staff member (or any staff) on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := domain.ParseStaffSelection(staff)
			if err != nil {
				return fmt.Errorf("invalid --staff (want 'any' or staff id): %w", err)
			}

			d, err := loadDeps(*configPath)
			if err != nil {
				return err
			}
			defer d.close()

			day, err := domain.ParseDate(date, d.location)
			if err != nil {
				return fmt.Errorf("invalid --date (want DD/MM/YYYY)")
			}

			uc := computeSlotsUC.NewUseCase(
				d.staff,
				nil,
				&computeSlotsUC.RealTimeProvider{Location: d.location},
				nil,
				time.Duration(d.cfg.StaffService.FetchTimeout)*time.Second,
				0,
				d.log,
			)

			result, err := uc.Compute(context.Background(), selection, day)
			if err != nil {
				return err
			}
			if result.FetchErr != nil {
				return fmt.Errorf("availability unavailable: %w", result.FetchErr)
			}

			out := cmd.OutOrStdout()
			if len(result.Slots) == 0 {
				fmt.Fprintf(out, "no slots for staff=%s on %s\n", selection, day.Format(domain.DateFormat))
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tSTAFF")
			for _, slot := range result.Slots {
				ids := make([]string, len(slot.Staffs))
				for i, id := range slot.Staffs {
					ids[i] = fmt.Sprint(id)
				}
				fmt.Fprintf(tw, "%s\t%s\n", slot.Time, strings.Join(ids, ","))
			}
			return tw.Flush()
		},
	}

	c.Flags().StringVar(&staff, "staff", "any", "staff id or 'any'")
	c.Flags().StringVar(&date, "date", "", "date DD/MM/YYYY")
	_ = c.MarkFlagRequired("date")

	return c
}
