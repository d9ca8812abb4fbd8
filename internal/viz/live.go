package viz

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/BonnyAD9/stick-ants/internal/rod"
)

const historyCapacity = 600

type TickMsg time.Time

// Model is the interactive bubbletea view of one simulation. It owns the
// rod state exclusively and re-creates it on reset.
type Model struct {
	cfg        rod.Config
	seed       int64
	state      *rod.State
	cells      []rod.Kind
	delay      time.Duration
	running    bool
	showHelp   bool
	history    []float64
	resolution int
	err        error
}

// NewModel builds the initial view. The seed reproduces the same random
// placement on every reset.
func NewModel(cfg rod.Config, seed int64, delay time.Duration, resolution int) (Model, error) {
	state, err := rod.NewState(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return Model{}, err
	}
	if resolution < 10 {
		resolution = 10
	}
	return Model{
		cfg:        cfg,
		seed:       seed,
		state:      state,
		cells:      make([]rod.Kind, resolution),
		delay:      delay,
		running:    true,
		history:    make([]float64, 0, historyCapacity),
		resolution: resolution,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset(m.seed)
		case "n":
			m.reset(time.Now().UnixNano())
		case "up", "k":
			if m.delay > 5*time.Millisecond {
				m.delay -= 5 * time.Millisecond
			}
		case "down", "j":
			m.delay += 5 * time.Millisecond
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.state.Terminated() {
			m.state.Step()
			m.history = append(m.history, float64(len(m.state.Ants)))
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		if msg.Width > 20 && msg.Width-10 != m.resolution {
			m.resolution = msg.Width - 10
			m.cells = make([]rod.Kind, m.resolution)
		}
	}
	return m, nil
}

func (m *Model) reset(seed int64) {
	state, err := rod.NewState(m.cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		m.err = err
		return
	}
	m.seed = seed
	m.state = state
	m.history = m.history[:0]
	m.running = true
}

func (m Model) View() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}

	snap := m.state.Snapshot()
	snap.Raster(m.cells)

	header := headerStyle.Render("stick ants")

	rodRow := RenderCells(m.cells)

	var stats string
	stats += statLine("tick", fmt.Sprintf("%d", snap.Tick))
	stats += statLine("time", fmt.Sprintf("%.1fs", snap.Time*100))
	stats += statLine("ants", fmt.Sprintf("%d", len(snap.Ants)))
	if pos, ok := snap.Molly(); ok {
		stats += statLine("molly", fmt.Sprintf("%.3f", pos))
	} else {
		stats += statLine("molly", "gone")
	}
	status := StatusRunning.Render("running")
	if m.state.Terminated() {
		status = StatusDone.Render("rod clear")
	} else if !m.running {
		status = StatusPaused.Render("paused")
	}
	stats += status

	graph := ""
	if len(m.history) > 1 {
		graph = graphStyle.Render(asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(min(len(m.history), m.resolution-10)),
			asciigraph.Caption("ants on the rod"),
		))
	}

	help := helpStyle.Render("space pause · r replay · n new seed · j/k speed · q quit")
	if m.showHelp {
		help = helpStyle.Render(fmt.Sprintf(
			"space pause · r replay same seed · n reseed · j/k delay %v · ? less · q quit",
			m.delay))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, rodRow, stats, graph, help) + "\n"
}

func statLine(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// Run drives the interactive view until the user quits.
func Run(cfg rod.Config, seed int64, delay time.Duration, resolution int) error {
	m, err := NewModel(cfg, seed, delay, resolution)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}
