package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmcomets/fd/pkg/config"
)

var genConfigWrite bool

var genConfigCmd = &cobra.Command{
	Use:   "gen-config",
	Short: MsgGenConfigShort,
	Long:  MsgGenConfigLong,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.Generate()
		if err != nil {
			return err
		}

		if !genConfigWrite {
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		}

		path := config.Path()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	genConfigCmd.Flags().BoolVarP(&genConfigWrite, "write", "w", false, "Write config to file instead of stdout")
}
