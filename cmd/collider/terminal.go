package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rdck/go-collider/collider"
	"github.com/rdck/go-collider/collider/grid"
	"github.com/rdck/go-collider/collider/input"
	"github.com/rdck/go-collider/collider/input/action"
	"github.com/rdck/go-collider/collider/input/event"
	"github.com/rdck/go-collider/collider/timing"
)

// originX/originY position the grid's top-left cell inside the terminal,
// leaving a one-row status line above it.
const (
	originX = 1
	originY = 1
)

// Terminal is a tcell-based editor front: it turns keystrokes into Editor
// calls and renders the most recently published snapshot as a character
// grid. It never touches the audio thread directly.
type Terminal struct {
	screen  tcell.Screen
	engine  *collider.Engine
	manager *input.Manager
	running bool
	tempo   int32
}

// NewTerminal initializes a tcell screen bound to engine, and binds every
// non-glyph key to its editor action through a debounced Manager so a held
// key (terminal auto-repeat) doesn't flood the editor with discrete edits.
func NewTerminal(engine *collider.Engine, tempo int32) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}

	t := &Terminal{screen: screen, engine: engine, manager: input.NewManager(), running: true, tempo: tempo}
	t.bindActions()
	return t, nil
}

// bindActions registers the callback each editor action triggers.
func (t *Terminal) bindActions() {
	t.manager.On(action.CursorUp, event.Press, func() { t.engine.Editor.MoveCursor(grid.Point{Y: -1}) })
	t.manager.On(action.CursorDown, event.Press, func() { t.engine.Editor.MoveCursor(grid.Point{Y: 1}) })
	t.manager.On(action.CursorLeft, event.Press, func() { t.engine.Editor.MoveCursor(grid.Point{X: -1}) })
	t.manager.On(action.CursorRight, event.Press, func() { t.engine.Editor.MoveCursor(grid.Point{X: 1}) })
	t.manager.On(action.ClearCell, event.Press, func() { t.engine.Editor.ClearCellAtCursor() })
	t.manager.On(action.TogglePower, event.Press, func() { t.engine.Editor.TogglePowerAtCursor() })
	reverbOn := false
	t.manager.On(action.ReverbToggle, event.Press, func() {
		reverbOn = !reverbOn
		t.engine.Editor.SetReverbOn(reverbOn)
	})
	t.manager.On(action.TempoDecrease, event.Press, func() {
		if t.tempo > 5 {
			t.tempo -= 5
		}
		t.engine.Editor.SetTempo(t.tempo)
	})
	t.manager.On(action.TempoIncrease, event.Press, func() {
		t.tempo += 5
		t.engine.Editor.SetTempo(t.tempo)
	})
	t.manager.On(action.Quit, event.Press, func() {
		slog.Info("quit requested", "event", event.Press)
		t.running = false
	})
}

// Run drives the editor loop until Quit fires or the process is signaled.
func (t *Terminal) Run() error {
	defer func() {
		slog.Info("finishing terminal")
		t.screen.Fini()
	}()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		slog.Info("received signal to stop")
		t.running = false
	}()

	limiter := timing.NewTickerLimiter()
	defer limiter.Stop()

	for t.running {
		limiter.WaitForNextFrame()
		t.pollEvents()
		t.render()
		t.screen.Show()
	}
	return nil
}

func (t *Terminal) pollEvents() {
	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Terminal) processKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.manager.Trigger(action.Quit, event.Press)
	case tcell.KeyUp:
		t.manager.Trigger(action.CursorUp, event.Press)
	case tcell.KeyDown:
		t.manager.Trigger(action.CursorDown, event.Press)
	case tcell.KeyLeft:
		t.manager.Trigger(action.CursorLeft, event.Press)
	case tcell.KeyRight:
		t.manager.Trigger(action.CursorRight, event.Press)
	case tcell.KeyDEL, tcell.KeyBackspace, tcell.KeyBackspace2:
		t.manager.Trigger(action.ClearCell, event.Press)
	case tcell.KeyCtrlR:
		t.manager.Trigger(action.ReverbToggle, event.Press)
	case tcell.KeyF1:
		t.manager.Trigger(action.TempoDecrease, event.Press)
	case tcell.KeyF2:
		t.manager.Trigger(action.TempoIncrease, event.Press)
	case tcell.KeyRune:
		t.processRune(ev.Rune())
	}
}

// processRune writes the grid glyph a keystroke names at the cursor. Space
// names no glyph of its own, so it instead triggers the (debounced)
// TogglePower action on the cell under the cursor.
func (t *Terminal) processRune(r rune) {
	if r == ' ' {
		t.manager.Trigger(action.TogglePower, event.Press)
		return
	}
	if v, ok := grid.CharToValue(r); ok {
		t.engine.Editor.WriteAtCursor(v)
	}
}

func (t *Terminal) render() {
	model, ok := t.engine.Editor.TakePublishedSnapshot()
	if !ok {
		return
	}

	t.screen.Clear()

	status := fmt.Sprintf(" beat %d  tempo %d bpm  cursor (%d,%d) ",
		model.Frame, t.tempo, t.engine.Editor.Cursor().X, t.engine.Editor.Cursor().Y)
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for i, ch := range status {
		t.screen.SetContent(i, 0, ch, nil, statusStyle)
	}

	cursor := t.engine.Editor.Cursor()
	for y := int32(0); y < grid.Height; y++ {
		for x := int32(0); x < grid.Width; x++ {
			p := grid.Point{X: x, Y: y}
			v := model.At(p)
			ch := grid.CharForValue(v)

			style := tcell.StyleDefault.Foreground(tcell.ColorGray)
			switch {
			case p == cursor:
				style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
			case v.Tag == grid.TagNone:
				style = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
			case v.Powered:
				style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
			case v.Pulse:
				style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
			}

			t.screen.SetContent(originX+int(x), originY+int(y), ch, nil, style)
		}
	}
}
