// Package main provides an interactive viewer for the procedural sun effect.
//
// Usage:
//
//	go run cmd/sunpreview/main.go [flags]
//
// Flags:
//
//	--config <path>   Load sun parameters from a YAML file (defaults built in)
//	--seed <n>        Override the noise/eruption seed
//	--verbose         Enable verbose logging (default off)
//
// Controls:
//
//	Space             - Spawn an eruption immediately
//	E                 - Toggle automatic eruptions
//	1-9               - Toggle corona layer on/off
//	Up/Down Arrow     - Adjust body rotation speed
//	Left/Right Arrow  - Adjust brightness
//	[ / ]             - Adjust contrast power
//	P                 - Toggle pause
//	S                 - Save current tuning
//	Q/Escape          - Quit
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/helios/pkg/app"
	"github.com/gonewx/helios/pkg/config"
)

var (
	configFlag  = flag.String("config", "", "Path to a sun YAML config file")
	seedFlag    = flag.Int64("seed", 0, "Override the noise/eruption seed (0 = use config)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	log.Println("=== Helios Sun Preview ===")

	sunCfg := config.DefaultSunConfig()
	if *configFlag != "" {
		loaded, err := config.LoadSunConfig(*configFlag)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", *configFlag, err)
		}
		sunCfg = loaded
		log.Printf("Loaded config: %s", *configFlag)
	}
	if *seedFlag != 0 {
		sunCfg.Seed = *seedFlag
	}
	log.Printf("Seed: %d, corona layers: %d", sunCfg.Seed, len(sunCfg.Corona))

	// 设置持久化；打不开就降级为内存模式继续运行
	dataManager, err := gdata.Open(gdata.Config{
		AppName: "helios",
	})
	if err != nil {
		log.Printf("Warning: gdata unavailable, tuning will not persist: %v", err)
		dataManager = nil
	}

	a, err := app.NewApp(app.Config{
		Verbose:     *verboseFlag,
		Sun:         sunCfg,
		DataManager: dataManager,
	})
	if err != nil {
		log.Fatal("Failed to initialize app:", err)
	}

	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowTitle("Helios Sun Preview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		if err.Error() != "quit requested" {
			log.Fatal(err)
		}
	}

	a.Orchestrator().Stop()
	log.Println("Sun preview closed")
	os.Exit(0)
}
