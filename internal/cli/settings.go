package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/existflow/mandarina/internal/config"
	"github.com/existflow/mandarina/internal/logger"
	"github.com/existflow/mandarina/internal/theme"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show or change settings stored in the config file.

Examples:
  mandarina settings show
  mandarina settings set palette "Olive Yards"
  mandarina settings set hour_format 24
  mandarina settings palettes`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", cfg.File(), out)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long:  "Change one setting. Keys: " + strings.Join(config.Keys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		logger.Info("Setting changed", logger.F("key", args[0]), logger.F("value", args[1]))
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])
		return nil
	},
}

var settingsPalettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List the color palettes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printPalettes(cmd.OutOrStdout(), configFrom(cmd).Palette)
		return nil
	},
}

func printPalettes(w io.Writer, current string) {
	for _, p := range theme.All() {
		marker := "  "
		if strings.EqualFold(p.Name, current) {
			marker = "* "
		}
		fmt.Fprintf(w, "%s%-20s light %s/%s  dark %s/%s  accent %s %s\n",
			marker, p.Name, p.BG, p.FG, p.DarkBG, p.DarkFG, p.Accent, p.SecAccent)
	}
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPalettesCmd)
}
