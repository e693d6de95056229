package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/totonoo/editor"
	"github.com/iw2rmb/totonoo/internal/config"
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a Markdown file",
	Long: `Opens a Markdown file in the terminal editor. The file is created on
the first save when it does not exist.

Ctrl+S saves, Ctrl+Q quits.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	f := editCmd.Flags()
	f.Bool("preview", false, "Open the HTML preview pane")
	f.Bool("read-only", false, "Open without editing")
	f.Bool("line-numbers", true, "Show line numbers")

	viper.BindPFlag("editor.preview", f.Lookup("preview"))
	viper.BindPFlag("editor.read_only", f.Lookup("read-only"))
	viper.BindPFlag("editor.line_numbers", f.Lookup("line-numbers"))
}

func runEdit(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return err
	}
	cfg, err := config.EditorConfig()
	if err != nil {
		return err
	}

	path := args[0]
	f, err := os.Open(path)
	switch {
	case err == nil:
		cfg.Text, err = readSource(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("read %s: %w", path, err)
	}
	cfg.Clipboard = editor.SystemClipboard{}

	m := newApp(cfg, path)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.state.err
}

type saveState struct {
	saves int
	err   error
}

type app struct {
	editor editor.Model
	path   string
	state  *saveState
}

func newApp(cfg editor.Config, path string) app {
	m := app{
		editor: editor.New(cfg),
		path:   path,
		state:  &saveState{},
	}
	m.editor.Subscribe(func(ev editor.Event) {
		if ev.Kind != editor.EventSave {
			return
		}
		m.state.err = os.WriteFile(m.path, []byte(ev.Text), 0o644)
		if m.state.err == nil {
			m.state.saves++
		}
	})
	return m
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+q", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m app) View() string { return m.editor.View() }
