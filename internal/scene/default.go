package scene

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Default builds the built-in scene: the three-light rig and the given
// models side by side along X. Models that fail to load are skipped.
func Default(loader MeshLoader, paths []string) *Scene {
	log := logger.Named("scene")
	s := New()
	s.Lights = lighting.DefaultRig()

	for i, path := range paths {
		if loader == nil {
			break
		}
		m, err := loader.LoadMesh(path)
		if err != nil {
			s.Warnings = multierr.Append(s.Warnings, fmt.Errorf("default model %s: %w", path, err))
			log.Warn("default model skipped", zap.String("file", path), zap.Error(err))
			continue
		}
		m.Name = fmt.Sprintf("Object%d", i)
		m.Transform.Translation = math.Vec3{X: float32(i)*2 - 3}
		s.Meshes = append(s.Meshes, m)
		log.Info("default model loaded", zap.String("file", path), zap.String("name", m.Name))
	}

	s.finish()
	return s
}

// Load builds the scene from configPath, falling back to Default with
// defaultModels when the file cannot be read or yields no meshes. It
// returns ErrNoUsableScene when both come up empty.
func Load(configPath string, defaultModels []string, loader MeshLoader) (*Scene, error) {
	log := logger.Named("scene")

	s, err := LoadConfig(configPath, loader)
	if err != nil {
		log.Warn("scene configuration unavailable, using default scene",
			zap.String("file", configPath), zap.Error(err))
	} else {
		logWarnings(s)
		if len(s.Meshes) == 0 {
			log.Warn("scene configuration has no objects, using default scene",
				zap.String("file", configPath))
		}
	}

	if s == nil || len(s.Meshes) == 0 {
		s = Default(loader, defaultModels)
		logWarnings(s)
	}
	if len(s.Meshes) == 0 {
		return nil, fmt.Errorf("%w: %s and %d default models", ErrNoUsableScene, configPath, len(defaultModels))
	}

	log.Info("scene ready",
		zap.String("source", s.Source),
		zap.Int("objects", len(s.Meshes)),
		zap.Int("lights", len(s.Lights)))
	return s, nil
}

func logWarnings(s *Scene) {
	log := logger.Named("scene")
	for _, w := range multierr.Errors(s.Warnings) {
		log.Warn("scene configuration problem", zap.String("file", s.Source), zap.Error(w))
	}
}
