package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/thelolagemann/gomeboy/internal/console"
	"github.com/thelolagemann/gomeboy/internal/telemetry"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	frames := flag.Int("frames", 0, "Number of frames to run before exiting (0 runs forever)")
	pprofAddr := flag.String("pprof", "", "Address to serve net/http/pprof on, e.g. localhost:6060")
	telemetryAddr := flag.String("telemetry", "", "Address to serve the websocket telemetry endpoint on")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				fmt.Fprintf(os.Stderr, "pprof: %v\n", err)
			}
		}()
	}

	rom, err := os.ReadFile(*romFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gbcore: %v\n", err)
		os.Exit(1)
	}

	logger := log.New()

	var telServer *telemetry.Server
	if *telemetryAddr != "" {
		telServer = telemetry.NewServer(logger)
		mux := http.NewServeMux()
		mux.HandleFunc("/", telServer.Handler)
		go func() {
			if err := http.ListenAndServe(*telemetryAddr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "telemetry: %v\n", err)
			}
		}()
	}

	gb := console.New(rom, console.WithLogger(logger))

	var cycles uint64
	frame := 0
	for *frames == 0 || frame < *frames {
		if err := gb.RunFrame(); err != nil {
			fmt.Fprintf(os.Stderr, "gbcore: %v\n", err)
			os.Exit(1)
		}
		cycles += console.CyclesPerFrame
		frame++

		if telServer != nil {
			telServer.Publish(telemetry.Capture(gb, cycles))
		}
	}
}
