package viewer

import (
	"bytes"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/shadowmesh/internal/assets"
	"github.com/Faultbox/shadowmesh/internal/config"
	"github.com/Faultbox/shadowmesh/internal/engine/camera"
	"github.com/Faultbox/shadowmesh/internal/engine/lighting"
	"github.com/Faultbox/shadowmesh/internal/engine/mesh"
	"github.com/Faultbox/shadowmesh/internal/engine/renderer"
	"github.com/Faultbox/shadowmesh/internal/logger"
	"github.com/Faultbox/shadowmesh/pkg/math"
)

// Drawable names.
const (
	ModelName  = "model"
	GroundName = "ground"
)

// Scene is everything the renderer needs, resolved from the config.
type Scene struct {
	Drawables []renderer.DrawableSpec
	Bounds    mesh.Bounds // world space, over every rotation angle
	Light     lighting.Config
	Camera    camera.Config
}

// BuildScene loads the model and lays out the drawables: the spinning model
// first, then the ground plane.
func BuildScene(cfg *config.Config, am *assets.Manager) (*Scene, error) {
	log := logger.Named("scene")
	mc := cfg.Scene.Model

	model, err := loadModel(am, mc.Path)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Camera: camera.Config{
			Position: cfg.Camera.Position,
			Yaw:      cfg.Camera.Yaw,
			Pitch:    cfg.Camera.Pitch,
			FOV:      cfg.Camera.FOV,
			Near:     cfg.Camera.Near,
			Far:      cfg.Camera.Far,
		},
	}

	s.Drawables = append(s.Drawables, renderer.DrawableSpec{
		Name:      ModelName,
		Mesh:      model,
		Transform: renderer.Spin(mc.Offset, mc.Scale),
		Material: renderer.Material{
			Color:       mc.Color,
			TexturePath: resolveTexture(am, mc.Texture),
		},
	})
	s.Bounds = spinBounds(model.Bounds(), mc.Offset, mc.Scale)

	if g := cfg.Scene.Ground; g.Enabled {
		ground := mesh.Plane(g.HalfSize, g.Height)
		s.Drawables = append(s.Drawables, renderer.DrawableSpec{
			Name:      GroundName,
			Mesh:      ground,
			Transform: renderer.Static(math.Identity()),
			Material: renderer.Material{
				Color:       g.Color,
				TexturePath: resolveTexture(am, g.Texture),
			},
		})
		s.Bounds = union(s.Bounds, ground.Bounds())
	}

	lc := cfg.Light
	s.Light = lighting.Config{
		Direction: lc.Direction,
		Distance:  lc.Distance,
		HalfSize:  lc.HalfSize,
		Near:      lc.Near,
		Far:       lc.Far,
		Color:     lc.Color,
		Ambient:   lc.Ambient,
	}
	if lc.FitScene {
		s.Light = lighting.FitBounds(s.Light, s.Bounds)
		log.Debug("light fitted to scene",
			zap.Float32("half_size", s.Light.HalfSize),
			zap.Float32("distance", s.Light.Distance),
			zap.Float32("far", s.Light.Far),
		)
	}

	log.Info("scene ready",
		zap.Int("drawables", len(s.Drawables)),
		zap.Int("triangles", model.TriangleCount()),
		zap.Float32s("bounds_min", s.Bounds.Min[:]),
		zap.Float32s("bounds_max", s.Bounds.Max[:]),
	)
	return s, nil
}

func loadModel(am *assets.Manager, path string) (*mesh.Mesh, error) {
	if path == "" {
		path = assets.DefaultModel
	}

	if assets.IsBuiltin(path) {
		data, err := am.Load(path)
		if err != nil {
			return nil, err
		}
		m, err := mesh.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return m, nil
	}

	resolved, err := am.Resolve(path)
	if err != nil {
		return nil, err
	}
	return mesh.Load(resolved)
}

// resolveTexture falls back to the configured path so the renderer can
// report the failure.
func resolveTexture(am *assets.Manager, path string) string {
	if path == "" {
		return ""
	}
	if resolved, err := am.Resolve(path); err == nil {
		return resolved
	}
	return path
}

// spinBounds bounds the model under renderer.Spin for every angle. Spin
// offsets and scales before the Y rotation is applied about the origin, so
// the XZ extent grows to the largest horizontal radius.
func spinBounds(b mesh.Bounds, offset [3]float32, scale float32) mesh.Bounds {
	var r2 float32
	for _, x := range [2]float32{b.Min[0], b.Max[0]} {
		for _, z := range [2]float32{b.Min[2], b.Max[2]} {
			x, z := (x+offset[0])*scale, (z+offset[2])*scale
			r2 = max(r2, x*x+z*z)
		}
	}
	r := math32.Sqrt(r2)
	y0, y1 := (b.Min[1]+offset[1])*scale, (b.Max[1]+offset[1])*scale
	return mesh.Bounds{
		Min: [3]float32{-r, min(y0, y1), -r},
		Max: [3]float32{r, max(y0, y1), r},
	}
}

func union(a, b mesh.Bounds) mesh.Bounds {
	for i := 0; i < 3; i++ {
		a.Min[i] = min(a.Min[i], b.Min[i])
		a.Max[i] = max(a.Max[i], b.Max[i])
	}
	return a
}
