package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/tmxkit/internal/assets"
	"github.com/Faultbox/tmxkit/internal/logger"
	"github.com/Faultbox/tmxkit/pkg/tmx"
)

func flagArgs() []string {
	return flag.Args()
}

func cmdInfo(loader *tmx.Loader, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tmxtool info <file.tmx>")
		os.Exit(1)
	}

	m, err := loader.LoadMap(args[0])
	if err != nil {
		fatal("loading map", err)
	}

	fmt.Printf("Map: %s\n", m.Source)
	fmt.Printf("  Version:     %s\n", m.Version)
	fmt.Printf("  Orientation: %s\n", m.Orientation)
	if m.Infinite {
		fmt.Printf("  Size:        infinite, %dx%d px tiles\n", m.TileWidth, m.TileHeight)
	} else {
		fmt.Printf("  Size:        %dx%d tiles of %dx%d px\n", m.Width, m.Height, m.TileWidth, m.TileHeight)
	}

	fmt.Printf("  Tilesets:    %d\n", len(m.Tilesets))
	for _, ref := range m.Tilesets {
		fmt.Printf("    [%d+] %s (%s)\n", ref.FirstGID, ref.Tileset.Name, ref.Tileset.Source)
	}

	fmt.Printf("  Tile layers: %d\n", len(m.TileLayers))
	for _, l := range m.TileLayers {
		cells := len(l.Tiles)
		for _, c := range l.Chunks {
			cells += len(c.Tiles)
		}
		used := 0
		for _, c := range l.Chunks {
			for _, tile := range c.Tiles {
				if !tile.IsEmpty() {
					used++
				}
			}
		}
		for _, tile := range l.Tiles {
			if !tile.IsEmpty() {
				used++
			}
		}
		fmt.Printf("    %q: %d cells, %d used\n", l.Name, cells, used)
	}

	objects := 0
	for _, g := range m.ObjectGroups {
		objects += len(g.Objects)
	}
	fmt.Printf("  Object groups: %d (%d objects)\n", len(m.ObjectGroups), objects)
}

func cmdTileset(loader *tmx.Loader, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tmxtool tileset <file.tsx>")
		os.Exit(1)
	}

	ts, err := loader.LoadTileset(args[0])
	if err != nil {
		fatal("loading tileset", err)
	}

	fmt.Printf("Tileset: %s\n", ts.Name)
	fmt.Printf("  Tile size: %dx%d px\n", ts.TileWidth, ts.TileHeight)
	fmt.Printf("  Tiles:     %d (%d columns)\n", ts.TileCount, ts.Columns)
	if ts.Image != nil {
		fmt.Printf("  Image:     %s (%dx%d)\n", ts.Image.Source, ts.Image.Width, ts.Image.Height)
	}
	if len(ts.WangSets) > 0 {
		fmt.Printf("  Wang sets: %d\n", len(ts.WangSets))
	}
}

func cmdWorld(loader *tmx.Loader, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tmxtool world <file.world> [candidate...]")
		os.Exit(1)
	}

	w, err := loader.LoadWorld(args[0])
	if err != nil {
		fatal("loading world", err)
	}

	candidates := args[1:]
	if len(candidates) == 0 {
		fmt.Printf("World: %s\n", w.Source)
		if w.Type != "" {
			fmt.Printf("  Type: %s\n", w.Type)
		}
		for _, wm := range w.Maps {
			size := ""
			if wm.Width != nil && wm.Height != nil {
				size = fmt.Sprintf(" %dx%d", *wm.Width, *wm.Height)
			}
			fmt.Printf("  %s at (%d, %d)%s\n", wm.FileName, wm.X, wm.Y, size)
		}
		for _, p := range w.Patterns {
			fmt.Printf("  pattern %q *(%d, %d) +(%d, %d)\n",
				p.RegExp, p.MultiplierX, p.MultiplierY, p.OffsetX, p.OffsetY)
		}
		return
	}

	failed := false
	for _, result := range w.MatchPaths(candidates) {
		if result.Err != nil {
			fmt.Printf("  %v\n", result.Err)
			failed = true
			continue
		}
		wm := result.WorldMap
		fmt.Printf("  %s at (%d, %d)\n", wm.FileName, wm.X, wm.Y)
	}
	if failed {
		os.Exit(1)
	}
}

func cmdValidate(loader *tmx.Loader, reader *assets.Reader, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tmxtool validate <file.tmx>...")
		os.Exit(1)
	}

	failed := 0
	for _, path := range args {
		if _, err := loader.LoadMap(path); err != nil {
			logger.Log.Error("invalid map", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}
		logger.Log.Info("ok", zap.String("path", path))
	}

	hits, misses := reader.Stats()
	logger.Log.Debug("asset reads", zap.Int("hits", hits), zap.Int("misses", misses))

	if failed > 0 {
		fmt.Printf("%d of %d maps failed\n", failed, len(args))
		os.Exit(1)
	}
	fmt.Printf("%d maps ok\n", len(args))
}
