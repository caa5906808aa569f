package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jgaura/aura/internal/config"
)

// configCmd groups the config file commands
func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Create and edit the jgaura configuration file.

The file stores the account email, API host, refresh rate, hot-water
support, logging preferences and thermostat nicknames. The password is
never stored.`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Example: `  jgaura config init --email me@example.com
  jgaura config init --email me@example.com --force`,
		Args: cobra.NoArgs,
		RunE: a.runConfigInit,
	}
	initCmd.Flags().BoolVar(&a.force, "force", false, "Overwrite an existing configuration file")

	cmd.AddCommand(
		initCmd,
		&cobra.Command{
			Use:   "show",
			Short: "Print the configuration",
			Args:  cobra.NoArgs,
			RunE:  a.runConfigShow,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file location",
			Args:  cobra.NoArgs,
			RunE:  a.runConfigPath,
		},
		&cobra.Command{
			Use:   "set-email <email>",
			Short: "Set the account email",
			Args:  cobra.ExactArgs(1),
			RunE: a.updateConfig(func(reg *config.Registry, args []string) error {
				reg.Email = args[0]
				return nil
			}),
		},
		&cobra.Command{
			Use:   "set-host <url>",
			Short: "Set the API base URL",
			Args:  cobra.ExactArgs(1),
			RunE: a.updateConfig(func(reg *config.Registry, args []string) error {
				reg.Host = args[0]
				return nil
			}),
		},
		&cobra.Command{
			Use:   "set-refresh <seconds>",
			Short: "Set the watch refresh rate",
			Args:  cobra.ExactArgs(1),
			RunE: a.updateConfig(func(reg *config.Registry, args []string) error {
				seconds, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid refresh rate %q", args[0])
				}
				reg.RefreshRate = seconds
				return nil
			}),
		},
		&cobra.Command{
			Use:   "set-hot-water <on|off>",
			Short: "Enable or disable the hot water relay",
			Args:  cobra.ExactArgs(1),
			RunE: a.updateConfig(func(reg *config.Registry, args []string) error {
				on, err := parseOnOff(args[0])
				if err != nil {
					return err
				}
				reg.HotWater = on
				return nil
			}),
		},
		&cobra.Command{
			Use:   "nickname <device-id> [name]",
			Short: "Set or clear a thermostat nickname",
			Long: `Give a thermostat a local name shown instead of the name configured
in the JG Aura app. Omit the name to clear it.`,
			Example: `  jgaura config nickname AB01 Lounge
  jgaura config nickname AB01`,
			Args: cobra.RangeArgs(1, 2),
			RunE: a.updateConfig(func(reg *config.Registry, args []string) error {
				name := ""
				if len(args) == 2 {
					name = args[1]
				}
				return reg.SetNickname(args[0], name)
			}),
		},
	)

	return cmd
}

func (a *app) runConfigInit(cmd *cobra.Command, args []string) error {
	email := firstNonEmpty(a.email, a.getenv(EnvEmail))

	path := a.configFile
	var err error
	if path != "" {
		err = config.CreateDefaultConfigAt(path, email, a.force)
	} else {
		path, err = config.CreateDefaultConfig(email, a.force)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	if email == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Set your account with 'jgaura config set-email <email>'")
	}
	return nil
}

func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	reg, err := a.config()
	if err != nil {
		return err
	}
	if a.format == FormatJSON {
		return writeJSON(cmd.OutOrStdout(), reg)
	}

	data, err := yaml.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func (a *app) runConfigPath(cmd *cobra.Command, args []string) error {
	path := a.configFile
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// updateConfig returns a RunE that applies change to the loaded config and saves it.
func (a *app) updateConfig(change func(reg *config.Registry, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		reg, err := a.config()
		if err != nil {
			return err
		}
		if err := change(reg, args); err != nil {
			return err
		}

		path, err := a.saveRegistry(reg)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
		return nil
	}
}
