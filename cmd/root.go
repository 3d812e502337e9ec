package main

import "github.com/spf13/cobra"

const defaultConfigPath = "config.toml"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "reschedule",
		Short:         "Reservation reschedule service: available slots and staff resolution for salon bookings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config.toml")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newSlotsCmd(&configPath))
	root.AddCommand(newStaffCmd(&configPath))
	root.AddCommand(newVersionCmd())

	return root
}
