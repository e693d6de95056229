package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/totonoo/action"
	"github.com/iw2rmb/totonoo/hotkey"
	"github.com/iw2rmb/totonoo/internal/config"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List action shortcuts",
	Long:  `Lists every catalog action with its shortcut on the configured platform.`,
	Args:  cobra.NoArgs,
	RunE:  runKeys,
}

func init() {
	keysCmd.Flags().Bool("toolbar", false, "Show toolbar button labels instead")
}

func runKeys(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return err
	}
	p, err := config.Platform()
	if err != nil {
		return err
	}
	catalog := action.NewCatalog()
	out := cmd.OutOrStdout()

	if tb, _ := cmd.Flags().GetBool("toolbar"); tb {
		for _, it := range hotkey.DefaultToolbar(catalog).Items() {
			fmt.Fprintln(out, it.Label(p))
		}
		return nil
	}

	keys := hotkey.DefaultMap(p)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, a := range catalog.Actions() {
		shortcut, ok := keys.ShortcutFor(a.Name)
		if !ok {
			shortcut = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.Name, shortcut, a.Title)
	}
	return w.Flush()
}
