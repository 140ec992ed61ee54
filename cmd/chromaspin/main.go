package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-chromaspin/internal/anim"
	"github.com/coreman2200/funtimes-chromaspin/internal/config"
	diag "github.com/coreman2200/funtimes-chromaspin/internal/diagnostics"
	"github.com/coreman2200/funtimes-chromaspin/internal/led"
	"github.com/coreman2200/funtimes-chromaspin/internal/mesh"
	"github.com/coreman2200/funtimes-chromaspin/internal/palette"
	"github.com/coreman2200/funtimes-chromaspin/internal/ws"
)

func main() {
	// ---- Flags (remain usable; config.yaml can override most) ----
	var (
		meshName   = flag.String("mesh", "cube", "mesh variant: cube | prism")
		tableName  = flag.String("table", "trio", "palette table: trio | hexad")
		fps        = flag.Int("fps", 60, "target frames per second")
		brightness = flag.Float64("brightness", 0.8, "strip brightness 0..1")
		driver     = flag.String("driver", "sim", "strip driver: spi | sim")
		spiDev     = flag.String("spi-dev", "", "SPI port name (empty = first registered)")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	// ---- Effective params (config overrides flags where available) ----
	eMesh, eTable := *meshName, *tableName
	eFPS, eBright := *fps, *brightness
	osc := anim.Oscillator{}
	if cfg != nil {
		if cfg.Mesh != "" {
			eMesh = cfg.Mesh
		}
		if cfg.Table != "" {
			eTable = cfg.Table
		}
		if cfg.FPS > 0 {
			eFPS = cfg.FPS
		}
		if cfg.Brightness > 0 {
			eBright = cfg.Brightness
		}
		osc = anim.Oscillator{Floor: cfg.Scale.Floor, Ceil: cfg.Scale.Ceil, Ratio: cfg.Scale.Ratio}
	}

	m, err := mesh.ByName(eMesh)
	if err != nil {
		log.Fatal().Err(err).Msg("mesh")
	}
	table, err := palette.TableByName(eTable)
	if err != nil {
		log.Fatal().Err(err).Msg("palette table")
	}

	// ---- State ----
	state := ws.NewState(m, eTable, eFPS, eBright)
	state.ConfigPath = *configPath

	// ---- Driver selection: -sim-only overrides; otherwise config.driver then -driver ----
	selected := *driver
	if cfg != nil && cfg.Driver != "" {
		selected = cfg.Driver
	}
	if *simOnly {
		selected = "sim"
	}

	switch selected {
	case "sim":
		state.Strip = led.NewSim()

	case "spi":
		dev := *spiDev
		speedHz := 0
		if cfg != nil {
			if cfg.SPI.Dev != "" {
				dev = cfg.SPI.Dev
			}
			speedHz = cfg.SPI.SpeedHz
		}
		strip, err := led.NewStrip(dev, m.Groups, speedHz)
		if err != nil {
			log.Warn().Err(err).Str("driver", "spi").Msg("strip init failed; falling back to SIM")
			state.Strip = led.NewSim()
		} else {
			state.StripPixels = m.Groups
			if !strip.SPI {
				log.Warn().Msg("no SPI port found; strip renders to terminal")
				state.PushDiag(diag.Diagnostic{Severity: diag.Warn, Code: diag.CodeStripFallback, Summary: "No SPI port; using terminal preview"})
			}
			state.Strip = strip
		}

	default:
		log.Warn().Str("driver", selected).Msg("unknown driver; using SIM")
		selected = "sim"
		state.Strip = led.NewSim()
	}
	state.CurrentDriver = selected

	// ---- Frame driver ----
	drv := anim.NewDriver(table, m.Groups, osc, state, state)
	state.Attach(drv)

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", state.HandleFramesWS)
	mux.HandleFunc("/diag", state.HandleDiagWS)
	mux.HandleFunc("/control", state.HandleControlWS)
	mux.HandleFunc("/health", state.HandleHealth)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ---- Run frame loop & server ----
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := drv.Run(ctx, eFPS); err != nil && err != context.Canceled {
			log.Fatal().Err(err).Msg("frame loop crashed")
		}
	}()
	go func() {
		log.Info().Str("addr", *addr).Str("driver", selected).Str("mesh", m.Name).Str("table", eTable).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	_ = srv.Close()
	if state.Strip != nil {
		_ = state.Strip.Close()
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
