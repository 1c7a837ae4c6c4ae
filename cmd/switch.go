package cmd

import (
	"github.com/mlyden/inputsource-cli/internal/output"
	"github.com/mlyden/inputsource-cli/internal/platform"
	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:   "switch <source-id>",
	Short: "Switch the active keyboard input source",
	Long: `Switch the system-wide keyboard input source to the one whose
InputSourceID matches the given identifier. The identifier must name an
input source the user has enabled in System Settings.

Identifiers come from the platform namespace, for example:
  com.apple.keylayout.US
  com.apple.keylayout.French
  com.apple.inputmethod.Kotoeri.Japanese

Examples:
  inputsource-cli switch com.apple.keylayout.French
  inputsource-cli switch com.apple.inputmethod.Kotoeri.Japanese`,
	Args: cobra.ExactArgs(1),
	RunE: runSwitch,
}

func init() {
	rootCmd.AddCommand(switchCmd)
}

func runSwitch(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	id := args[0]
	if err := provider.Switcher.SwitchInputSource(id); err != nil {
		return err
	}

	return output.Print(output.SwitchResult{
		OK:     true,
		Action: "switch",
		Source: id,
	})
}
