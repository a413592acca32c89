// tmxtool is a CLI utility for inspecting Tiled map assets.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/tmxkit/internal/assets"
	"github.com/Faultbox/tmxkit/internal/config"
	"github.com/Faultbox/tmxkit/internal/logger"
	"github.com/Faultbox/tmxkit/pkg/tmx"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	args := flagArgs()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	reader := assets.NewReader(cfg.Assets.SearchDirs...)
	loader := tmx.NewLoader(tmx.WithResourceReader(reader))

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(loader, args)
	case "tileset", "ts":
		cmdTileset(loader, args)
	case "world":
		cmdWorld(loader, args)
	case "validate":
		cmdValidate(loader, reader, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tmxtool - Tiled map asset utility

Usage:
  tmxtool [flags] <command> [args]

Commands:
  info <file.tmx>                    Show map information
  tileset <file.tsx>                 Show tileset information
  world <file.world> [candidate...]  Show world layout, or match candidates
  validate <file.tmx>...             Load maps and report the first error of each

Flags:
  -config <path>   Explicit config file
  -assets <dir>    Extra asset search directory
  -debug           Enable debug logging

Examples:
  tmxtool info overworld.tmx
  tmxtool world maps.world map_2_3.tmx
  tmxtool -assets ./data validate level1.tmx level2.tmx`)
}

func fatal(msg string, err error) {
	logger.Log.Error(msg, zap.Error(err))
	logger.Sync()
	os.Exit(1)
}
