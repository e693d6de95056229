// Package config loads totonoo settings from totonoo.yaml, the environment
// and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/iw2rmb/totonoo/editor"
	"github.com/iw2rmb/totonoo/hotkey"
	"github.com/iw2rmb/totonoo/render"
)

// Config holds the application configuration
type Config struct {
	Platform string `mapstructure:"platform"`
	Theme    string `mapstructure:"theme"`

	HTML        bool   `mapstructure:"html"`
	XHTMLOut    bool   `mapstructure:"xhtml_out"`
	Breaks      bool   `mapstructure:"breaks"`
	Linkify     bool   `mapstructure:"linkify"`
	Typographer bool   `mapstructure:"typographer"`
	Quotes      string `mapstructure:"quotes"`
	VideoAttrs  string `mapstructure:"video_attrs"`
	AudioAttrs  string `mapstructure:"audio_attrs"`

	TaskList TaskList `mapstructure:"tasklist"`
	Editor   Editor   `mapstructure:"editor"`
}

type TaskList struct {
	Enabled    bool `mapstructure:"enabled"`
	Label      bool `mapstructure:"label"`
	LabelAfter bool `mapstructure:"label_after"`
	LineNumber bool `mapstructure:"line_number"`
}

type Editor struct {
	LineNumbers  bool `mapstructure:"line_numbers"`
	TabWidth     int  `mapstructure:"tab_width"`
	HistoryLimit int  `mapstructure:"history_limit"`
	Preview      bool `mapstructure:"preview"`
	Fullscreen   bool `mapstructure:"fullscreen"`
	ReadOnly     bool `mapstructure:"read_only"`
}

// C is the global config instance
var C Config

// SetDefaults registers the built-in values. Render defaults mirror
// render.DefaultOptions.
func SetDefaults() {
	d := render.DefaultOptions()
	viper.SetDefault("platform", "default")
	viper.SetDefault("theme", string(editor.ThemeLight))

	viper.SetDefault("html", d.HTML)
	viper.SetDefault("xhtml_out", d.XHTMLOut)
	viper.SetDefault("breaks", d.Breaks)
	viper.SetDefault("linkify", d.Linkify)
	viper.SetDefault("typographer", d.Typographer)
	viper.SetDefault("quotes", d.Quotes)
	viper.SetDefault("video_attrs", d.VideoAttrs)
	viper.SetDefault("audio_attrs", d.AudioAttrs)

	viper.SetDefault("tasklist.enabled", d.TaskList.Enabled)
	viper.SetDefault("tasklist.label", d.TaskList.Label)
	viper.SetDefault("tasklist.label_after", d.TaskList.LabelAfter)
	viper.SetDefault("tasklist.line_number", d.TaskList.LineNumber)

	viper.SetDefault("editor.line_numbers", true)
	viper.SetDefault("editor.tab_width", 4)
	viper.SetDefault("editor.history_limit", 1000)
	viper.SetDefault("editor.preview", false)
	viper.SetDefault("editor.fullscreen", false)
	viper.SetDefault("editor.read_only", false)
}

// Init initializes configuration with viper. A non-empty file replaces the
// search for totonoo.yaml.
func Init(file string) error {
	SetDefaults()

	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("totonoo")
		viper.SetConfigType("yaml")

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "totonoo"))
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("TOTONOO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return Load()
}

// Load refreshes C from viper's current state.
func Load() error {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	C = c
	return nil
}

// RenderOptions returns the configured render options.
func RenderOptions() (render.Options, error) {
	o := render.Options{
		HTML:        C.HTML,
		XHTMLOut:    C.XHTMLOut,
		Breaks:      C.Breaks,
		Linkify:     C.Linkify,
		Typographer: C.Typographer,
		Quotes:      C.Quotes,
		VideoAttrs:  C.VideoAttrs,
		AudioAttrs:  C.AudioAttrs,
		TaskList: render.TaskListOptions{
			Enabled:    C.TaskList.Enabled,
			Label:      C.TaskList.Label,
			LabelAfter: C.TaskList.LabelAfter,
			LineNumber: C.TaskList.LineNumber,
		},
	}
	if err := o.Validate(); err != nil {
		return render.Options{}, fmt.Errorf("config: %w", err)
	}
	return o, nil
}

// Platform returns the configured shortcut platform.
func Platform() (hotkey.Platform, error) {
	p, err := hotkey.ParsePlatform(C.Platform)
	if err != nil {
		return hotkey.PlatformDefault, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

// EditorConfig returns an editor configuration with the preview pipeline,
// the hotkey platform and the theme resolved.
func EditorConfig() (editor.Config, error) {
	opts, err := RenderOptions()
	if err != nil {
		return editor.Config{}, err
	}
	pipeline, err := render.New(opts)
	if err != nil {
		return editor.Config{}, fmt.Errorf("config: %w", err)
	}
	platform, err := Platform()
	if err != nil {
		return editor.Config{}, err
	}
	theme, err := editor.ParseTheme(C.Theme)
	if err != nil {
		return editor.Config{}, fmt.Errorf("config: %w", err)
	}

	return editor.Config{
		ShowLineNums: C.Editor.LineNumbers,
		TabWidth:     C.Editor.TabWidth,
		HistoryLimit: C.Editor.HistoryLimit,
		Preview:      C.Editor.Preview,
		Fullscreen:   C.Editor.Fullscreen,
		ReadOnly:     C.Editor.ReadOnly,
		Theme:        theme,
		Platform:     platform,
		Pipeline:     pipeline,
	}, nil
}

// Set overrides key at runtime and refreshes C.
func Set(key string, value any) error {
	viper.Set(key, value)
	return Load()
}
