package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/frustumview/internal/config"
)

func newConfigCmd(flags *config.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "inspect or write configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Long:  "Write the default configuration to path, or to the user config directory when no path is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if len(args) == 0 {
				if err := cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s/config.yaml\n", config.ConfigDir())
				return nil
			}
			if err := cfg.SaveTo(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(show, initCmd)
	return cmd
}
