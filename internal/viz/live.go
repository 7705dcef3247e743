package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/possn/stress-strain-vni/internal/render"
	"github.com/possn/stress-strain-vni/internal/scenario"
)

const (
	graphWidth      = 46
	graphHeight     = 6
	barWidth        = 24
	historyCapacity = 600
	tickRate        = 30 // updates per second
)

type TickMsg time.Time

// Model plays a scenario in the terminal in real time.
type Model struct {
	sc       scenario.Scenario
	name     string
	t        float64
	speed    float64
	running  bool
	loop     bool
	history  []float64
	showHelp bool
}

func NewModel(sc scenario.Scenario, name string) Model {
	return Model{
		sc:      sc,
		name:    name,
		speed:   1,
		running: true,
		loop:    true,
		history: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.t = 0
			m.history = m.history[:0]
		case "left", "h":
			m.seek(-1)
		case "right", "l":
			m.seek(1)
		case "up", "k":
			m.speed *= 1.25
			if m.speed > 8 {
				m.speed = 8
			}
		case "down", "j":
			m.speed *= 0.8
			if m.speed < 0.125 {
				m.speed = 0.125
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.t += m.speed / tickRate
			if m.t >= m.sc.Duration() {
				if m.loop {
					m.t = 0
					m.history = m.history[:0]
				} else {
					m.t = m.sc.Duration()
					m.running = false
				}
			}
			fs := m.sc.Compute(m.t)
			m.history = append(m.history, fs.Strain)
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, tea.Tick(time.Second/tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) seek(ds float64) {
	m.t += ds
	if m.t < 0 {
		m.t = 0
	}
	if d := m.sc.Duration(); m.t > d {
		m.t = d
	}
}

// View renders the playback panel.
func (m Model) View() string {
	fs := m.sc.Compute(m.t)
	script := render.Script(fs.Phase)

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(fmt.Sprintf("%s  x%.2f\n\n", status, m.speed))

	s.WriteString(badgeStyle(script.BadgeColor).Render(script.Badge) + "\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("strain"))
		s.WriteString(graphStyle.Render(graph) + "\n")
	}
	s.WriteString("\n")

	s.WriteString(labelStyle.Render("Tempo") + valueStyle.Render(fmt.Sprintf("%.1fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Fase") + valueStyle.Render(script.Title) + "\n")
	s.WriteString(labelStyle.Render("CRF") + valueStyle.Render(render.FormatLiters(fs.CRF)) + "\n")
	s.WriteString(labelStyle.Render("VT") + valueStyle.Render(render.FormatLiters(fs.TidalVolume)) + "\n")

	strainStyle := safeValueStyle
	if fs.Strain > m.sc.SafeStrain {
		strainStyle = dangerValueStyle
	}
	bar := StrainBar(fs.Strain, m.sc.SafeStrain, m.sc.StrainAxisMax, barWidth)
	s.WriteString(labelStyle.Render("Strain") + strainStyle.Render(render.FormatStrain(fs.Strain)+"  "+bar) + "\n")
	if fs.RuptureVisible {
		s.WriteString(labelStyle.Render("") + dangerValueStyle.Render("!! lesão provável") + "\n")
	}

	s.WriteString("\n")
	for _, note := range script.Notes {
		s.WriteString(noteStyle.Render("• "+note) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pausa R:Reinicia ←→:Saltar ↑↓:Velocidade Q:Sair ?:Ajuda"))
	body := panelStyle.Render(s.String())

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║         TECLAS DE ATALHO             ║
╠══════════════════════════════════════╣
║  Espaço   - Pausar/retomar           ║
║  R        - Reiniciar                ║
║  ← / H    - Recuar 1s                ║
║  → / L    - Avançar 1s               ║
║  ↑ / K    - Acelerar                 ║
║  ↓ / J    - Abrandar                 ║
║  Q        - Sair                     ║
║  ?        - Mostrar/ocultar ajuda    ║
╚══════════════════════════════════════╝
` + "\n" + body
	}
	return body
}

// RunPreview starts the interactive terminal playback.
func RunPreview(sc scenario.Scenario, name string) error {
	p := tea.NewProgram(NewModel(sc, name))
	_, err := p.Run()
	return err
}
