package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/supershekhar/gravitylab/common"
	"github.com/supershekhar/gravitylab/config"
	"github.com/supershekhar/gravitylab/script"
)

func main() {
	configPath := flag.String("config", "gravitylab.yaml", "tuning file (optional)")
	watch := flag.Bool("watch", false, "reload the tuning file when it changes")
	scriptPath := flag.String("script", "", "tengo demo script driving the scenes")
	debug := flag.Bool("debug", false, "enable debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	app := NewApp(cfg, *debug)

	if *watch {
		watcher, err := config.NewWatcher(*configPath)
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			app.SetWatcher(watcher, *configPath)
			defer watcher.Close()
		}
	}

	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script %s: %v", *scriptPath, err)
		}
		driver, err := script.New(src, app.ScriptHooks())
		if err != nil {
			log.Fatal(err)
		}
		app.SetScriptDriver(driver)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("gravitylab")

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
