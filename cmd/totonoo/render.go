package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dimchansky/utfbom"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/totonoo/internal/config"
	"github.com/iw2rmb/totonoo/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render Markdown to HTML",
	Long: `Renders a Markdown file, or standard input when no file is given,
to HTML on standard output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.Bool("html", true, "Pass raw HTML through")
	f.Bool("xhtml", false, "Close void elements XHTML style")
	f.Bool("breaks", false, "Render soft line breaks as <br>")
	f.Bool("linkify", false, "Turn bare URLs into links")
	f.Bool("typographer", false, "Replace quotes, dashes and ellipses")
	f.String("quotes", render.DefaultQuotes, "Quote glyphs used by --typographer")
	f.Bool("tasklist", false, "Render clickable task-list checkboxes")
	f.Bool("tasklist-label", false, "Wrap task-list items in <label>")
	f.Bool("tasklist-label-after", false, "Put only the item text in the label")
	f.Bool("tasklist-lines", false, "Add data-line to task-list items")

	viper.BindPFlag("html", f.Lookup("html"))
	viper.BindPFlag("xhtml_out", f.Lookup("xhtml"))
	viper.BindPFlag("breaks", f.Lookup("breaks"))
	viper.BindPFlag("linkify", f.Lookup("linkify"))
	viper.BindPFlag("typographer", f.Lookup("typographer"))
	viper.BindPFlag("quotes", f.Lookup("quotes"))
	viper.BindPFlag("tasklist.enabled", f.Lookup("tasklist"))
	viper.BindPFlag("tasklist.label", f.Lookup("tasklist-label"))
	viper.BindPFlag("tasklist.label_after", f.Lookup("tasklist-label-after"))
	viper.BindPFlag("tasklist.line_number", f.Lookup("tasklist-lines"))
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return err
	}
	opts, err := config.RenderOptions()
	if err != nil {
		return err
	}
	p, err := render.New(opts)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		defer f.Close()
		in = f
	}
	src, err := readSource(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return p.RenderTo(cmd.OutOrStdout(), src)
}

// readSource reads Markdown, dropping a UTF-8 byte order mark.
func readSource(r io.Reader) (string, error) {
	b, err := io.ReadAll(utfbom.SkipOnly(r))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
