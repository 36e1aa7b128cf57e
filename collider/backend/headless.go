package backend

import (
	"log/slog"

	"github.com/rdck/go-collider/collider/grid"
	"github.com/rdck/go-collider/collider/input/action"
	"github.com/rdck/go-collider/collider/input/event"
)

// Headless drives the instrument for a fixed number of beats with no
// rendering surface, for batch runs and tests.
type Headless struct {
	config    Config
	maxBeats  uint64
	startBeat uint64
	haveStart bool
	log       *slog.Logger
}

// NewHeadless returns a backend that quits once the model has advanced
// maxBeats beats past wherever it started.
func NewHeadless(maxBeats uint64, log *slog.Logger) *Headless {
	if log == nil {
		log = slog.Default()
	}
	return &Headless{maxBeats: maxBeats, log: log}
}

func (h *Headless) Init(config Config) error {
	h.config = config
	h.log.Info("running headless", "beats", h.maxBeats, "tempo", config.Tempo, "sample_rate", config.SampleRate)
	return nil
}

func (h *Headless) Update(model *grid.Model) ([]InputEvent, error) {
	if !h.haveStart {
		h.startBeat = model.Frame
		h.haveStart = true
	}

	elapsed := model.Frame - h.startBeat
	if elapsed > 0 && elapsed%16 == 0 {
		h.log.Info("beat progress", "elapsed", elapsed, "total", h.maxBeats)
	}

	if elapsed >= h.maxBeats {
		h.log.Info("headless run completed", "beats", elapsed)
		return []InputEvent{{Action: action.Quit, Type: event.Press}}, nil
	}
	return nil, nil
}

func (h *Headless) Cleanup() error {
	return nil
}
