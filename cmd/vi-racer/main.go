package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/audio"
	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/core"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/logging"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/render"
	"github.com/lixenwraith/vi-racer/session"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/vmath"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML config file")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/vi-racer.log")
	seedFlag   = flag.Int64("seed", 0, "Override the track seed (0 keeps the configured seed)")
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
)

// startCamera trails the spawn point until the follow rig takes over
var startCamera = vmath.Vec3F{Y: parameter.CameraBaseHeight, Z: parameter.CameraBaseDistance}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *seedFlag != 0 {
		cfg.Track.Seed = *seedFlag
	}

	debug := *debugFlag || cfg.Log.Debug
	if logFile := setupLogging(debug); logFile != nil {
		defer logFile.Close()
	}
	level := logging.ParseLevel(cfg.Log.Level)
	if debug {
		level = logging.LevelDebug
	}
	log := logging.Std(level)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.RegisterCrashCleanup(screen.Fini)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	// Audio is optional; a missing device leaves the manager silent
	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		log.Warnf("audio unavailable: %v", err)
	}
	defer sound.Cleanup()
	if *muteFlag {
		sound.ToggleMute()
	}

	collector := input.NewCollector()
	reg := status.NewRegistry()
	sess := session.New(cfg,
		session.WithInput(collector),
		session.WithLogger(log),
		session.WithStatus(reg),
	)
	if err := sess.Initialize(startCamera); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		os.Exit(1)
	}
	defer sess.Teardown()

	width, height := screen.Size()
	renderer := render.NewTerminalRenderer(screen, width, height)
	keys := input.DefaultKeyTable()

	// Event polling blocks on the terminal and runs on its own goroutine
	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	var (
		last      = time.Now()
		mouseX    = -1
		mouseY    = -1
		zoom      = 1.0
		resetting bool
	)

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Rune() {
				case '+', '=':
					zoom = min(zoom*1.25, 8)
					renderer.SetZoom(zoom)
					continue
				case '-', '_':
					zoom = max(zoom/1.25, 0.125)
					renderer.SetZoom(zoom)
					continue
				case 'r':
					resetting = true
					continue
				}
				action, ok := keys.Lookup(ev)
				if !ok {
					continue
				}
				switch action {
				case input.ActionQuit:
					return
				case input.ActionToggleMute:
					sound.ToggleMute()
				default:
					collector.Press(action)
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				if mouseX >= 0 {
					collector.AddMouseDelta(float64(x-mouseX), float64(y-mouseY))
				}
				mouseX, mouseY = x, y
			case *tcell.EventResize:
				width, height = ev.Size()
				renderer.Resize(width, height)
				screen.Sync()
			}

		case now := <-frameTicker.C:
			if resetting {
				resetting = false
				sess.Teardown()
				collector.Reset()
				if err := sess.Initialize(startCamera); err != nil {
					log.Errorf("reset: %v", err)
					return
				}
			}

			dt := now.Sub(last).Seconds()
			last = now
			sess.Tick(dt)

			frame := sess.Snapshot()
			sound.Update(feedback(&frame))
			renderer.RenderFrame(&frame)
		}
	}
}

// feedback derives the audio cues from a frame
func feedback(frame *render.Frame) audio.Feedback {
	fb := audio.Feedback{OffTrack: frame.Player.OffTrack}
	if frame.Player.MaxSpeed > 0 {
		fb.SpeedRatio = frame.Player.Speed / frame.Player.MaxSpeed
	}
	if kicks, ok := frame.Metrics[status.PlayerReverseKicks].(int64); ok {
		fb.ReverseKicks = kicks
	}
	return fb
}
