package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"wordslot/announce"
	"wordslot/board"
)

// Config holds application configuration.
type Config struct {
	Puzzle        PuzzleConfig `mapstructure:"puzzle"`
	Timing        TimingConfig `mapstructure:"timing"`
	Export        ExportConfig `mapstructure:"export"`
	Confirmations bool         `mapstructure:"confirmations"`
	Log           LogConfig    `mapstructure:"log"`
}

// PuzzleConfig describes the exercise. Placed maps slot IDs to words that
// start in them.
type PuzzleConfig struct {
	Prompt           string            `mapstructure:"prompt"`
	Slots            []string          `mapstructure:"slots"`
	Words            []string          `mapstructure:"words"`
	Target           []string          `mapstructure:"target"`
	Placed           map[string]string `mapstructure:"placed"`
	Shuffle          bool              `mapstructure:"shuffle"`
	CorrectMessage   string            `mapstructure:"correct_message"`
	IncorrectMessage string            `mapstructure:"incorrect_message"`
}

type TimingConfig struct {
	AnnounceDelay time.Duration `mapstructure:"announce_delay"`
	FlashDelay    time.Duration `mapstructure:"flash_delay"`
	FocusDelay    time.Duration `mapstructure:"focus_delay"`
}

type ExportConfig struct {
	Directory string `mapstructure:"directory"`
}

// LogConfig selects the log file. Logging is off without a file because
// the terminal belongs to the board.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

const defaultPrompt = "Place each state in its dropzone."

func setDefaults(v *viper.Viper) {
	def := board.DefaultConfig()
	v.SetDefault("puzzle.prompt", defaultPrompt)
	v.SetDefault("puzzle.slots", slotStrings(def.Slots))
	v.SetDefault("puzzle.words", tokenStrings(def.Tokens))
	v.SetDefault("puzzle.target", tokenStrings(def.Target))
	v.SetDefault("puzzle.placed", map[string]string{})
	v.SetDefault("puzzle.shuffle", false)
	v.SetDefault("puzzle.correct_message", def.Messages.Correct)
	v.SetDefault("puzzle.incorrect_message", def.Messages.Incorrect)
	v.SetDefault("timing.announce_delay", announce.DefaultDelay)
	v.SetDefault("timing.flash_delay", board.DefaultFlashDelay)
	v.SetDefault("timing.focus_delay", board.DefaultFocusDelay)
	v.SetDefault("export.directory", "")
	v.SetDefault("confirmations", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// loadConfig reads configuration from file and env. Env var overrides use
// prefix WORDSLOT_. An explicit path must exist; the default location is
// optional.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "wordslot"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("WORDSLOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Export.Directory = expandHome(c.Export.Directory)
	c.Log.File = expandHome(c.Log.File)
	return &c, nil
}

// Board converts the puzzle section into a board configuration.
func (c *Config) Board() board.Config {
	words := make([]board.Token, len(c.Puzzle.Words))
	for i, w := range c.Puzzle.Words {
		words[i] = board.Token(w)
	}
	if c.Puzzle.Shuffle {
		rand.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	}
	slots := make([]board.SlotID, len(c.Puzzle.Slots))
	for i, s := range c.Puzzle.Slots {
		slots[i] = board.SlotID(s)
	}
	target := make([]board.Token, len(c.Puzzle.Target))
	for i, t := range c.Puzzle.Target {
		target[i] = board.Token(t)
	}
	var placed map[board.SlotID]board.Token
	if len(c.Puzzle.Placed) > 0 {
		placed = make(map[board.SlotID]board.Token, len(c.Puzzle.Placed))
		for id, w := range c.Puzzle.Placed {
			placed[board.SlotID(id)] = board.Token(w)
		}
	}
	return board.Config{
		Slots:   slots,
		Tokens:  words,
		Target:  target,
		Initial: placed,
		Messages: board.Messages{
			Correct:   c.Puzzle.CorrectMessage,
			Incorrect: c.Puzzle.IncorrectMessage,
		},
		AnnounceDelay: c.Timing.AnnounceDelay,
		FlashDelay:    c.Timing.FlashDelay,
		FocusDelay:    c.Timing.FocusDelay,
	}
}

// GetSavePath places filename in the export directory, creating it when
// needed. Absolute names are used as given.
func (c *Config) GetSavePath(filename string) (string, error) {
	filename = expandHome(filename)
	if c.Export.Directory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.Export.Directory, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	return filepath.Join(c.Export.Directory, filename), nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func slotStrings(ids []board.SlotID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func tokenStrings(toks []board.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Label()
	}
	return out
}
