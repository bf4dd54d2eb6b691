// Package main is the entry point for the shadowmesh viewer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/shadowmesh/internal/assets"
	"github.com/Faultbox/shadowmesh/internal/config"
	"github.com/Faultbox/shadowmesh/internal/engine/animation"
	"github.com/Faultbox/shadowmesh/internal/engine/camera"
	"github.com/Faultbox/shadowmesh/internal/engine/gpu"
	"github.com/Faultbox/shadowmesh/internal/engine/input"
	"github.com/Faultbox/shadowmesh/internal/engine/lighting"
	"github.com/Faultbox/shadowmesh/internal/engine/renderer"
	"github.com/Faultbox/shadowmesh/internal/engine/window"
	"github.com/Faultbox/shadowmesh/internal/logger"
	"github.com/Faultbox/shadowmesh/internal/viewer"
)

const title = "shadowmesh"

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
	logger.Sync()
}

// run owns every resource so deferred cleanup happens before main exits.
func run(cfg *config.Config) error {
	logger.Info("=== shadowmesh ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.InitRequested() {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Info("config written", zap.String("dir", config.ConfigDir()))
		return nil
	}

	am := assets.NewManager(filepath.Join(config.ConfigDir(), "assets"))
	defer am.Close()

	scene, err := viewer.BuildScene(cfg, am)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}

	// Window first: the GL context must exist before any GPU call.
	win, err := window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	dev, err := gpu.NewOpenGL()
	if err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	width, height := win.DrawableSize()
	ctx, err := renderer.NewContext(dev, renderer.Options{
		Width:            width,
		Height:           height,
		ShadowResolution: int32(cfg.Shadow.Resolution),
		ClearColor:       cfg.Graphics.ClearColor,
		MaxTextureSize:   cfg.Graphics.MaxTextureSize,
	}, scene.Drawables)
	if err != nil {
		return fmt.Errorf("failed to create render context: %w", err)
	}
	defer ctx.Close()

	r := renderer.New(ctx, lighting.New(scene.Light), camera.New(scene.Camera))
	clock := animation.NewClock(animation.Config{
		RatePerSecond: cfg.Animation.RatePerSecond,
		ManualStep:    cfg.Animation.ManualStep,
		AutoRotate:    cfg.Animation.AutoRotate,
	})

	return viewer.New(title, win, input.New(nil), r, clock).Run()
}
