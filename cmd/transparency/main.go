package main

import (
	"flag"
	"log"
	"runtime"

	"go.uber.org/zap"

	"github.com/leterax/go-lopgl/internal/config"
	"github.com/leterax/go-lopgl/internal/demo"
	"github.com/leterax/go-lopgl/internal/logger"
	"github.com/leterax/go-lopgl/pkg/scene"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	sc := scene.Transparency()

	// Parse command line flags
	configPath := flag.String("config", "", "TOML settings file (empty for defaults)")
	assetsPath := flag.String("assets", "", "Texture directory (overrides the config file)")
	vsync := flag.Bool("vsync", true, "Wait for vertical sync (overrides the config file)")
	flag.Parse()

	cfg := config.Default(sc.Title())
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath, cfg); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "assets":
			cfg.Assets.Path = *assetsPath
		case "vsync":
			cfg.Window.VSync = *vsync
		}
	})

	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := demo.Run(cfg, sc, "transparency"); err != nil {
		logger.Log.Fatal("Demo failed", zap.Error(err))
	}
}
