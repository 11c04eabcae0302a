package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gallerist/internal/config"
	"gallerist/internal/flags"
	"gallerist/internal/ui/prompt"
	"gallerist/pkg/formatter"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long:  `Manage configuration settings for providers and gallery defaults. You can set, get, list, and delete configuration values.`,
		// Config repair has to keep working even when the stored file no
		// longer loads, so this subtree skips the shared app container.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	configSetCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration key-value pair",
		Long:  `Sets a configuration value. For example: 'gallerist config set gcp.project my-gcp-123'`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			value := args[1]

			if err := config.SetValue(key, value); err != nil {
				return fmt.Errorf("error setting configuration: %w", err)
			}
			fmt.Printf("Configuration set: %s = %s\n", key, value)
			return nil
		},
	}

	configGetCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value by key",
		Long:  `Retrieves a configuration value for a given key. For example: 'gallerist config get gcp.project'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			value, exists, err := config.GetValue(key)
			if err != nil {
				return err
			}

			if !exists || value == "" {
				return fmt.Errorf("configuration key '%s' not found or not set", key)
			}
			fmt.Printf("%s = %s\n", key, value)
			return nil
		},
	}

	configDeleteCmd := &cobra.Command{
		Use:   "delete [key]",
		Short: "Delete a configuration value by key",
		Long:  `Deletes a configuration value for a given key. For example: 'gallerist config delete gcp.project'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			deleted, err := config.DeleteValue(key)
			if err != nil {
				return fmt.Errorf("error deleting configuration: %w", err)
			}

			if !deleted {
				return fmt.Errorf("configuration key '%s' not found", key)
			}
			fmt.Printf("Configuration key '%s' deleted\n", key)
			return nil
		},
	}

	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all current configuration values",
		Long:  `Displays all the key-value pairs currently stored in the configuration file. Secret values are masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := config.ListValues()
			if err != nil {
				return err
			}

			if len(values) == 0 {
				fmt.Println("No configuration values set. Use 'gallerist config set <key> <value>'.")
				return nil
			}

			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}

			fmt.Printf("Configuration file: %s\n\n", path)
			fmt.Println(formatter.NewStorageFormatter().FormatConfigList(values))
			return nil
		},
	}

	var initForce bool
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long:  `Creates the configuration file with commented examples for every provider. An existing file is only replaced after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteStarterConfig(initForce)
			if errors.Is(err, config.ErrConfigExists) {
				prompter := prompt.NewStandardPrompter(os.Stdin, os.Stdout)
				overwrite, perr := prompter.Confirm(fmt.Sprintf("Configuration file already exists at %s. Overwrite it?", path))
				if perr != nil {
					return perr
				}
				if !overwrite {
					fmt.Println("Aborted.")
					return nil
				}
				path, err = config.WriteStarterConfig(true)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Wrote starter configuration to %s\n", path)
			fmt.Println("Edit it, or use 'gallerist config set <key> <value>'.")
			return nil
		},
	}
	configInitCmd.Flags().BoolVarP(&initForce, flags.Force, flags.ForceShort, false, "Overwrite an existing configuration file without asking")

	configCmd.AddCommand(configSetCmd, configGetCmd, configDeleteCmd, configListCmd, configInitCmd)
	return configCmd
}
