package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/rdck/go-collider/collider"
	"github.com/rdck/go-collider/collider/backend"
	"github.com/rdck/go-collider/collider/input/action"
)

func main() {
	app := cli.NewApp()
	app.Name = "collider"
	app.Description = "a live-coded grid audio instrument"
	app.Usage = "collider [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "program",
			Usage: "path to a saved program to load on startup",
		},
		cli.IntFlag{
			Name:  "tempo",
			Usage: "starting tempo, in beats per minute",
			Value: 120,
		},
		cli.IntFlag{
			Name:  "sample-rate",
			Usage: "audio sample rate, in Hz",
			Value: 44100,
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "run without a terminal editor, for batch/test use",
		},
		cli.Uint64Flag{
			Name:  "beats",
			Usage: "number of beats to run in headless mode (required for headless)",
		},
		cli.StringFlag{
			Name:  "save",
			Usage: "path to write the program to on exit",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("collider exited with error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	sampleRate := c.Int("sample-rate")
	tempo := int32(c.Int("tempo"))

	engine, err := buildEngine(c, sampleRate, tempo)
	if err != nil {
		return err
	}

	if c.Bool("headless") {
		return runHeadless(c, engine)
	}
	return runInteractive(c, engine, tempo)
}

func buildEngine(c *cli.Context, sampleRate int, tempo int32) (*collider.Engine, error) {
	path := c.String("program")
	if path == "" {
		return collider.New(sampleRate, tempo, nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program %q: %v", path, err)
	}
	engine, err := collider.NewWithProgram(sampleRate, tempo, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load program %q: %v", path, err)
	}
	return engine, nil
}

func runHeadless(c *cli.Context, engine *collider.Engine) error {
	beats := c.Uint64("beats")
	if beats == 0 {
		return errors.New("headless mode requires --beats with a positive value")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	h := backend.NewHeadless(beats, nil)
	if err := h.Init(backend.Config{Title: "collider", SampleRate: 0, Tempo: 0}); err != nil {
		return err
	}

	out := make([]float32, 512*2)
	for {
		engine.AudioStep(out, 512)

		model, ok := engine.Editor.TakePublishedSnapshot()
		if !ok {
			continue
		}

		events, err := h.Update(model)
		if err != nil {
			return err
		}
		if containsQuit(events) {
			break
		}
	}

	if err := h.Cleanup(); err != nil {
		return err
	}
	return saveIfRequested(c, engine)
}

func runInteractive(c *cli.Context, engine *collider.Engine, tempo int32) error {
	term, err := NewTerminal(engine, tempo)
	if err != nil {
		return err
	}

	device, err := NewDevice(engine, c.Int("sample-rate"))
	if err != nil {
		return fmt.Errorf("failed to open audio device: %v", err)
	}
	device.Start()
	defer device.Close()

	if err := term.Run(); err != nil {
		return err
	}
	return saveIfRequested(c, engine)
}

func containsQuit(events []backend.InputEvent) bool {
	for _, e := range events {
		if e.Action == action.Quit {
			return true
		}
	}
	return false
}

func saveIfRequested(c *cli.Context, engine *collider.Engine) error {
	path := c.String("save")
	if path == "" {
		return nil
	}
	data, ok := engine.Editor.Save()
	if !ok {
		slog.Warn("nothing to save: no snapshot has been published yet")
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save program to %q: %v", path, err)
	}
	slog.Info("saved program", "path", path)
	return nil
}
