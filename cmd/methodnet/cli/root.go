// Package cli is the methodnet command-line surface: a runnable entry
// point over the planning engine, standing in for the out-of-scope HTTP
// request surface named in spec.md §1 (grounded on openconfig/ygot's
// gnmidiff/cmd package, which pairs cobra with viper the same way).
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute builds and runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:   "methodnet",
		Short: "methodnet plans a procedure of domain methods from start artifacts to a target description",
	}

	cfgFile := root.PersistentFlags().String("config", "", "Path to a config file (supplies values for flags not given on the command line, e.g. the plan timeout).")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *cfgFile != "" {
			viper.SetConfigFile(*cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return err
			}
		}
		viper.BindPFlags(cmd.Flags())
		viper.AutomaticEnv()
		return nil
	}

	root.AddCommand(newPlanCmd())
	root.AddCommand(newValidateCmd())

	return root.Execute()
}
