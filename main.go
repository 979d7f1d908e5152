package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"go-tetris/internal/game"
	"go-tetris/internal/shape"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
)

var cellColors = map[shape.Variant]lipgloss.Color{
	shape.I: lipgloss.Color("14"),
	shape.O: lipgloss.Color("11"),
	shape.T: lipgloss.Color("130"),
	shape.J: lipgloss.Color("13"),
	shape.L: lipgloss.Color("208"),
	shape.S: lipgloss.Color("10"),
	shape.Z: lipgloss.Color("9"),
}

const cellWidth = 2

type LocalState struct {
	Session *game.Session
	Help    help.Model
	Markers bool // draw emoji markers instead of colored blocks
}

type TickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (s *LocalState) Init() tea.Cmd {
	return tickCmd(s.Session.Options.Speed)
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	g := s.Session.CurrentGame

	switch msg := msg.(type) {
	case TickMsg:
		g.HandleTick()
		return s, tickCmd(s.Session.Options.Speed)
	case tea.WindowSizeMsg:
		s.Help.Width = msg.Width
	case tea.KeyMsg:
		ch := msg.String()

		if game.Matches(ch, s.Session.Keys.Quit) {
			return s, tea.Quit
		}

		if g.IsOver() && game.Matches(ch, s.Session.Keys.Restart) {
			if err := s.Session.Restart(); err != nil {
				return s, tea.Quit
			}
			return s, nil
		}

		g.HandleKeyPress(ch)
	}

	return s, nil
}

func (s *LocalState) renderCell(v shape.Variant) string {
	if v == shape.Empty {
		return emptyStyle.Render(" ·")
	}
	if s.Markers {
		return v.Marker()
	}
	return lipgloss.NewStyle().Background(cellColors[v]).Render(strings.Repeat(" ", cellWidth))
}

func (s *LocalState) RenderBoard() string {
	var b strings.Builder
	board := s.Session.CurrentGame.Board
	for pos := range board.Positions() {
		b.WriteString(s.renderCell(board.Get(pos)))
		if pos.X == board.Width()-1 && pos.Y < board.Height()-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *LocalState) View() string {
	g := s.Session.CurrentGame

	display := borderStyle.Render(s.RenderBoard())

	statusLine := fmt.Sprintf("GAME: %d | SPEED: %s", s.Session.GamesPlayed, s.Session.Options.Speed)
	display += "\n" + statusStyle.Render(statusLine)

	if g.IsOver() {
		display += "\n" + redStyle.Render("Game over! Press r to play again.")
	}

	display += "\n" + s.Help.View(s.Session.Keys) + "\n"
	return display
}

// dimensionFlag only accepts positive integers.
type dimensionFlag int

func (d *dimensionFlag) String() string {
	return fmt.Sprint(int(*d))
}

func (d *dimensionFlag) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("must be positive, got %d", v)
	}
	*d = dimensionFlag(v)
	return nil
}

// newLogger writes debug logs to path when debug is set. The terminal
// belongs to the UI, so nothing is ever logged to stderr.
func newLogger(debug bool, path string) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func main() {
	width := dimensionFlag(10)
	height := dimensionFlag(20)
	var speed time.Duration
	var seed uint64
	var layoutPath string
	var prune bool
	var markers bool
	var debug bool
	var logPath string

	flag.Var(&width, "width", "Board width in cells")
	flag.Var(&width, "w", "Board width in cells (shorthand)")
	flag.Var(&height, "height", "Board height in cells")
	flag.Var(&height, "ht", "Board height in cells (shorthand)")
	flag.DurationVar(&speed, "speed", 500*time.Millisecond, "Time between drops")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 picks one)")
	flag.StringVar(&layoutPath, "layout", "", "File with pre-settled cells")
	flag.BoolVar(&prune, "prune", false, "Drop settled pieces left empty by line clears")
	flag.BoolVar(&markers, "markers", false, "Draw pieces with emoji markers")
	flag.BoolVar(&debug, "debug", false, "Write a debug log")
	flag.StringVar(&logPath, "log", "go-tetris.log", "Debug log path")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if speed <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -speed must be positive\n")
		os.Exit(2)
	}

	logger, err := newLogger(debug, logPath)
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := game.Options{
		Width:      int(width),
		Height:     int(height),
		Speed:      speed,
		LayoutPath: layoutPath,
		PruneEmpty: prune,
	}

	sess, err := game.NewSession(opts, newRand(seed), logger)
	if err != nil {
		fmt.Printf("Error initializing game: %v\n", err)
		os.Exit(1)
	}

	model := &LocalState{
		Session: sess,
		Help:    help.New(),
		Markers: markers,
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program failed", zap.Error(err))
		fmt.Printf("Error starting the program: %v\n", err)
		os.Exit(1)
	}
}
