// Command gnes plays an iNES ROM in an OpenGL window.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"github.com/jyane/gnes/nes"
	"github.com/jyane/gnes/ui"
)

var (
	debug                   = flag.Bool("debug", false, "run a stdin-driven debug console instead of the GL window")
	spriteOverflowBug       = flag.Bool("sprite_overflow_bug", false, "use the alternate sprite overflow check (the PPU's diagonal scan bug is not modeled)")
	width                   = flag.Int("width", 256*3, "window width in pixels")
	height                  = flag.Int("height", 240*3, "window height in pixels")
)

func sramPath(romPath string) string {
	ext := filepath.Ext(romPath)
	return strings.TrimSuffix(romPath, ext) + ".sav"
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		glog.Fatalln("usage: gnes [flags] <rom.nes>")
	}
	romPath := flag.Arg(0)
	data, err := os.ReadFile(romPath)
	if err != nil {
		glog.Fatalln(err)
	}
	cartridge, err := nes.NewCartridge(data)
	if err != nil {
		glog.Fatalln(err)
	}
	opts := nes.DefaultOptions()
	opts.EmulateSpriteOverflowBug = *spriteOverflowBug
	console, err := nes.NewConsole(cartridge, *debug, opts)
	if err != nil {
		glog.Fatalln(err)
	}
	if err := console.Reset(); err != nil {
		glog.Fatalln(err)
	}

	savePath := sramPath(romPath)
	if saved, err := os.ReadFile(savePath); err == nil {
		if err := console.LoadSaveRAM(saved); err != nil {
			glog.Infof("not loading save RAM from %s: %v", savePath, err)
		}
	}

	if *debug {
		for {
			if _, err := console.Step(); err != nil {
				glog.Fatalln(err)
			}
		}
	}

	ui.Start(console, *width, *height)

	if sram := console.SaveRAM(); sram != nil {
		if err := os.WriteFile(savePath, sram, 0644); err != nil {
			glog.Errorf("failed to write save RAM to %s: %v", savePath, err)
		}
	}
}
