package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wordslot/board"
)

var (
	cfgFile string
	logFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wordslot",
	Short: "Put words in order, by mouse or keyboard",
	Long: `wordslot is a terminal word-ordering exercise.

Drag words from the word bank into the numbered dropzones with the mouse,
or grab them with Enter/Space and drop them on a dropzone. Every slot has
a menu ([v]) listing the words that can go there. Each change is narrated
on the bottom line.`,
	SilenceUsage: true,
	RunE:         runBoard,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: <user config dir>/wordslot/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (logging is off without one)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	logger, err := newLogger(cfg.Log, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("session", uuid.NewString()))

	sess, err := board.New(cfg.Board(),
		board.WithLogger(logger),
		board.WithSink(logSink{log: logger.Named("live")}))
	if err != nil {
		return fmt.Errorf("puzzle: %w", err)
	}

	p := tea.NewProgram(
		initialModel(sess, cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("session ended", zap.Stringer("outcome", sess.Outcome()))
	return nil
}

func newLogger(c LogConfig, verbose bool) (*zap.Logger, error) {
	if c.File == "" {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{c.File}
	config.ErrorOutputPaths = []string{c.File}
	if c.Level != "" {
		level, err := zap.ParseAtomicLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		config.Level = level
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func initialModel(sess *board.Session, cfg *Config, logger *zap.Logger) model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := model{
		session:   sess,
		config:    cfg,
		log:       logger.Named("ui"),
		width:     80,
		height:    24,
		mode:      ModeNormal,
		helpModel: help.New(),
		keys:      defaultKeyMap(),
	}
	m.syncFocus()
	m.relayout()
	return m
}

func (m model) Init() tea.Cmd {
	return m.scheduleTimers()
}

// scheduleTimers turns every newly armed session timer into a tick that
// comes back as a timerMsg.
func (m *model) scheduleTimers() tea.Cmd {
	timers := m.session.Timers()
	if len(timers) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(timers))
	for i, t := range timers {
		cmds[i] = tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return timerMsg{timer: t}
		})
	}
	return tea.Batch(cmds...)
}

func (m *model) renderWidth() int {
	if m.width < 1 {
		return 80
	}
	return m.width
}

func (m *model) relayout() {
	m.layout = buildLayout(m.session, m.renderWidth())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpModel.Width = msg.Width
	case timerMsg:
		m.session.Fire(msg.timer)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	if req, ok := m.session.TakeFocusRequest(); ok {
		m.applyFocusRequest(req)
	}
	m.syncFocus()
	m.relayout()
	return m, tea.Batch(cmd, m.scheduleTimers())
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if k == "ctrl+c" {
		return tea.Quit
	}
	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKey(k)
	case ModeFileInput:
		m.handleFileInputKey(msg)
		return nil
	}
	if m.help {
		switch k {
		case "esc", "q", "?":
			m.help = false
		}
		return nil
	}

	m.errorMessage = ""
	m.successMessage = ""

	if _, open := m.session.OpenMenu(); open {
		consumed, err := m.session.MenuKey(k)
		m.noteError(err)
		if consumed {
			return nil
		}
		// Tab closes the menu and still moves focus; other keys stay
		// with the menu.
		if k != "tab" && k != "shift+tab" {
			return nil
		}
	}

	switch {
	case k == "down" && m.focus.kind == focusMenuButton:
		m.noteError(m.session.ShowMenu(m.focus.slot, true))
	case key.Matches(msg, m.keys.Quit):
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return nil
		}
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help = true
	case key.Matches(msg, m.keys.Activate):
		m.activateFocused()
	case key.Matches(msg, m.keys.Cancel):
		m.session.CloseMenus(false)
		m.session.Cancel()
	case key.Matches(msg, m.keys.Return):
		m.returnFocused()
	case key.Matches(msg, m.keys.Menu):
		if id, ok := m.focusedSlot(); ok {
			m.focus = focusItem{kind: focusMenuButton, slot: id}
			m.noteError(m.session.ShowMenu(id, true))
		}
	case key.Matches(msg, m.keys.PNG):
		m.startFileInput(FileOpSavePNG)
	case key.Matches(msg, m.keys.Text):
		m.startFileInput(FileOpSaveVisualTXT)
	case key.Matches(msg, m.keys.Copy):
		if err := m.copyArrangement(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Arrangement copied"
		}
	default:
		m.handleNavigation(msg)
	}
	return nil
}

func (m *model) activateFocused() {
	switch m.focus.kind {
	case focusToken:
		m.noteError(m.session.ActivateToken(m.focus.token))
	case focusSlot:
		m.noteError(m.session.ActivateSlot(m.focus.slot))
	case focusMenuButton:
		m.noteError(m.session.ToggleMenu(m.focus.slot, true))
	}
}

func (m *model) returnFocused() {
	switch m.focus.kind {
	case focusToken:
		m.noteError(m.session.ReturnToPool(m.focus.token))
	case focusSlot:
		m.noteError(m.session.ClearSlot(m.focus.slot))
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.mode != ModeNormal || m.help {
		return
	}
	hit := m.layout.HitTest(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.errorMessage = ""
		m.successMessage = ""
		if open, ok := m.session.OpenMenu(); ok {
			switch {
			case hit.Kind == HitMenuItem:
				m.noteError(m.session.ChooseMenuItem(hit.Slot, hit.Item))
				return
			case hit.Kind == HitMenu:
				return
			case hit.Kind == HitMenuButton && hit.Slot == open:
				// ToggleMenu below closes it
			default:
				m.session.CloseMenus(false)
			}
		}
		m.setFocusFromHit(hit)
		switch hit.Kind {
		case HitToken:
			m.drag = &dragState{token: hit.Token, startX: msg.X, startY: msg.Y}
		case HitSlot:
			m.noteError(m.session.ActivateSlot(hit.Slot))
		case HitMenuButton:
			m.noteError(m.session.ToggleMenu(hit.Slot, false))
		}

	case tea.MouseActionMotion:
		if m.drag == nil || m.drag.active {
			return
		}
		if msg.X == m.drag.startX && msg.Y == m.drag.startY {
			return
		}
		m.drag.active = true
		m.noteError(m.session.SelectToken(m.drag.token, board.ModalityPointer))

	case tea.MouseActionRelease:
		d := m.drag
		m.drag = nil
		if d == nil {
			return
		}
		if d.active {
			m.noteError(m.session.Drop(hit.DropTarget()))
		} else {
			m.noteError(m.session.ActivateToken(d.token))
		}
		m.focus = focusItem{kind: focusToken, token: d.token}
	}
}

func (m *model) handleConfirmKey(k string) tea.Cmd {
	switch k {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmOverwriteFile:
			m.doExport(m.exportPath)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return nil
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = defaultTXTName
	if op == FileOpSavePNG {
		m.filename = defaultPNGName
	}
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.errorMessage = ""
	case tea.KeyEnter:
		if m.filename == "" {
			m.errorMessage = "filename is empty"
			return
		}
		path, err := m.config.GetSavePath(m.filename)
		if err != nil {
			m.errorMessage = err.Error()
			return
		}
		m.mode = ModeNormal
		m.exportPath = path
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			m.errorMessage = err.Error()
			return
		}
		m.doExport(path)
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filename += string(msg.Runes)
	}
}

func (m *model) doExport(path string) {
	var err error
	switch m.fileOp {
	case FileOpSavePNG:
		err = ExportToPNG(path, buildLayout(m.session, m.renderWidth()), m.session, m.config.Puzzle.Prompt)
	case FileOpSaveVisualTXT:
		err = m.exportVisualTXT(path)
	}
	if err != nil {
		m.errorMessage = err.Error()
		m.log.Warn("export failed", zap.String("path", path), zap.Error(err))
		return
	}
	m.successMessage = "Exported " + path
	m.log.Info("exported", zap.String("path", path))
}

func (m *model) noteError(err error) {
	if err != nil {
		m.errorMessage = err.Error()
	}
}
