package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spiritfox/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and logging")
	seed := flag.Int64("seed", 1, "seed for ghoul wander points")
	watch := flag.Bool("watch", false, "hot reload prefabs/world.yaml and condition scripts")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("spiritfox")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{Debug: *debug, Seed: *seed, Watch: *watch})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
