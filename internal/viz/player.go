package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/quakeviz/quakeviz/internal/anim"
	"github.com/quakeviz/quakeviz/internal/config"
	"github.com/quakeviz/quakeviz/internal/dataset"
	"github.com/quakeviz/quakeviz/internal/render"
	"github.com/quakeviz/quakeviz/internal/video"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Player replays a loaded run in the terminal: the mass field as a
// braille curve, valves as columns shaded by intensity, events as
// transient discs. It owns the same anim primitives the video render
// uses, stepped once per tick.
type Player struct {
	ds  *dataset.Dataset
	cfg *config.Config

	stepper *anim.Stepper
	valves  []anim.Valve
	frame   int
	n       int
	t       float64
	active  []anim.Event

	canvas   *Canvas
	massMax  float64
	massHist []float64

	fps       int
	running   bool
	finished  bool
	recording bool
	rec       *video.GIF
	renderer  *render.Renderer
	err       error
	showHelp  bool
}

// NewPlayer validates the config against the dataset and prepares the
// initial state.
func NewPlayer(ds *dataset.Dataset, cfg *config.Config) (*Player, error) {
	st, err := cfg.Stepper()
	if err != nil {
		return nil, err
	}
	if st.FrameCount() > ds.Steps() {
		return nil, fmt.Errorf("%w: %d frames, %d data rows", anim.ErrShapeMismatch, st.FrameCount(), ds.Steps())
	}

	massMax := ds.MassMax()
	if massMax == 0 {
		massMax = 1
	}

	gridSize := len(ds.Mass[0])
	renderer, err := render.New(cfg.Video.Width, cfg.Video.Height, gridSize, massMax)
	if err != nil {
		return nil, err
	}

	return &Player{
		ds:       ds,
		cfg:      cfg,
		stepper:  st,
		valves:   ds.Valves(),
		n:        st.FrameCount(),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		massMax:  massMax,
		massHist: make([]float64, 0, historyCapacity),
		fps:      cfg.Video.FPS,
		running:  true,
		renderer: renderer,
	}, nil
}

func (p *Player) Init() tea.Cmd {
	return p.tick()
}

func (p *Player) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(p.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p *Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case " ":
			p.running = !p.running
		case "r":
			p.reset()
		case "right", ".":
			if !p.running && !p.finished {
				p.step()
			}
		case "+", "=":
			if p.fps < 120 {
				p.fps++
			}
		case "-":
			if p.fps > 1 {
				p.fps--
			}
		case "g":
			if p.recording {
				p.err = p.rec.Save("preview.gif")
				p.recording = false
				p.rec = nil
			} else {
				p.recording = true
				p.rec = video.NewGIF(p.fps)
			}
		case "?":
			p.showHelp = !p.showHelp
		}
	case TickMsg:
		if p.running && !p.finished {
			p.step()
		}
		p.draw()
		if p.recording {
			p.capture()
		}
		return p, p.tick()
	}
	return p, nil
}

// step advances playback by one frame, mirroring the video loop.
func (p *Player) step() {
	if p.frame >= p.n-1 {
		p.finished = true
		p.running = false
		return
	}
	p.frame++
	p.t = p.stepper.Time(p.frame)
	p.active = anim.ActiveEvents(p.ds.Events, p.t-p.cfg.EventWindow, p.t, p.cfg.FadeParams())
	if err := anim.AdvanceValves(p.frame, p.ds.Bitmap, p.valves); err != nil {
		p.err = err
		p.running = false
		return
	}

	total := 0.0
	for _, v := range p.ds.Mass[p.frame] {
		total += v
	}
	p.massHist = append(p.massHist, total)
	if len(p.massHist) > historyCapacity {
		p.massHist = p.massHist[1:]
	}
}

func (p *Player) reset() {
	st, err := p.cfg.Stepper()
	if err != nil {
		p.err = err
		return
	}
	p.stepper = st
	p.valves = p.ds.Valves()
	p.frame = 0
	p.t = 0
	p.active = nil
	p.massHist = p.massHist[:0]
	p.finished = false
	p.running = true
	p.err = nil
}

// draw repaints the braille canvas from the current frame state.
func (p *Player) draw() {
	if p.frame == 0 {
		p.canvas.Clear()
		return
	}
	DrawFrame(p.canvas, p.ds.Mass[p.frame], p.massMax, p.valves, p.active)
}

// capture renders the current frame at full video geometry for the
// GIF recording.
func (p *Player) capture() {
	if p.frame == 0 {
		return
	}
	f := &anim.Frame{
		Index:  p.frame,
		Time:   p.t,
		Mass:   p.ds.Mass[p.frame],
		Valves: p.valves,
		Events: p.active,
	}
	img, err := p.renderer.Frame(f)
	if err != nil {
		p.err = err
		return
	}
	p.rec.Add(img)
}

func (p *Player) View() string {
	canvasView := canvasStyle.Render(p.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("QUAKEVIZ PREVIEW") + "\n")

	status := "PLAYING"
	switch {
	case p.finished:
		status = "DONE"
	case !p.running:
		status = "PAUSED"
	}
	if p.recording {
		status += " " + recStyle.Render("REC")
	}
	s.WriteString(status + "\n\n")

	if len(p.massHist) > 1 {
		chart := asciigraph.Plot(p.massHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("total mass"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	phase := phaseFast.Render("FAST")
	if p.stepper.Slow() {
		phase = phaseSlow.Render("SLOW")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4fs", p.t)) + "\n")
	s.WriteString(labelStyle.Render("Phase") + phase + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d / %d", p.frame, p.n-1)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%.4gs", p.stepper.StepSize())) + "\n")
	s.WriteString(labelStyle.Render("Events") + valueStyle.Render(fmt.Sprintf("%d active", len(p.active))) + "\n")
	s.WriteString(labelStyle.Render("Rate") + valueStyle.Render(fmt.Sprintf("%d fps", p.fps)) + "\n")
	if p.err != nil {
		s.WriteString("\n" + recStyle.Render(p.err.Error()) + "\n")
	}

	if p.showHelp {
		s.WriteString(helpStyle.Render("\nSP pause/resume\n→  step one frame (paused)\n+- playback rate\nR  restart\nG  toggle GIF recording\nQ  quit"))
	} else {
		s.WriteString(helpStyle.Render("\nSP:Pause →:Step +-:Rate R:Restart G:Record ?:Help Q:Quit"))
	}

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
