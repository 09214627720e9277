// Package main is the entry point for the scene viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/internal/viewer"
)

func main() {
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
	defer logger.Sync()

	logger.Info("=== Scene Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)
	printControls()

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		v.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func printControls() {
	fmt.Println(`=== Controls ===
W/A/S/D          move camera
Space / L-Shift  camera up / down
Mouse            look around
Scroll           zoom (field of view)
Tab              select next object
Arrows           move object on the ground plane
PgUp / PgDn      move object up / down
Q / E            shrink / grow object
X / Y / Z        rotate object 15 degrees
P                add trajectory point in front of the camera
C                clear trajectory
G                pause / resume trajectory
+ / -            trajectory speed
1-8              toggle lights
F                frame the whole scene
Left click / V   select object under the crosshair
F12              save screenshot
R                reset scene
Esc              quit`)
}
