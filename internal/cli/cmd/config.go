package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/infrastructure/config"
)

var configWriteSchema bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file and database paths",
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print a JSON schema describing every config key.

With --write the schema is stored next to the config file instead, where
editors with TOML schema support pick it up.`,
	RunE: runConfigSchema,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configShowCmd)
	configSchemaCmd.Flags().BoolVarP(&configWriteSchema, "write", "w", false, "write the schema next to the config file")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	configFile := ""
	if mgr := a.ConfigManager(); mgr != nil {
		configFile = mgr.GetConfigFile()
	} else if configFile, err = config.GetConfigFile(); err != nil {
		return err
	}
	fmt.Printf("config   %s\n", configFile)
	fmt.Printf("database %s\n", a.Config.Database.Path)
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if configWriteSchema {
		mgr := a.ConfigManager()
		if mgr == nil {
			return fmt.Errorf("no config directory available")
		}
		path, err := mgr.WriteSchemaFile()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}
	schema, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	fmt.Println(string(schema))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	out, err := toml.Marshal(a.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
