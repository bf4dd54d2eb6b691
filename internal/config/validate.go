package config

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	g := c.Graphics
	check(g.Width > 0 && g.Height > 0, "graphics: window size %dx%d must be positive", g.Width, g.Height)
	check(g.MaxTextureSize >= 0, "graphics.max_texture_size: %d is negative", g.MaxTextureSize)
	err = multierr.Append(err, checkColor("graphics.clear_color", g.ClearColor))

	m := c.Scene.Model
	check(m.Scale > 0, "scene.model.scale: %g must be positive", m.Scale)
	err = multierr.Append(err, checkColor("scene.model.color", m.Color))

	gr := c.Scene.Ground
	if gr.Enabled {
		check(gr.HalfSize > 0, "scene.ground.half_size: %g must be positive", gr.HalfSize)
		err = multierr.Append(err, checkColor("scene.ground.color", gr.Color))
	}

	l := c.Light
	check(l.Direction != [3]float32{}, "light.direction: must not be zero")
	check(l.HalfSize > 0, "light.half_size: %g must be positive", l.HalfSize)
	check(l.Far > l.Near, "light: far %g must exceed near %g", l.Far, l.Near)
	err = multierr.Append(err, checkColor("light.color", l.Color))
	err = multierr.Append(err, checkColor("light.ambient", l.Ambient))

	cam := c.Camera
	check(cam.FOV > 0 && cam.FOV < 180, "camera.fov: %g must be in (0, 180)", cam.FOV)
	check(cam.Near > 0, "camera.near: %g must be positive", cam.Near)
	check(cam.Far > cam.Near, "camera: far %g must exceed near %g", cam.Far, cam.Near)

	a := c.Animation
	check(!math.IsNaN(a.RatePerSecond) && !math.IsInf(a.RatePerSecond, 0), "animation.rate_per_second: must be finite")
	check(a.ManualStep > 0, "animation.manual_step: %g must be positive", a.ManualStep)

	r := c.Shadow.Resolution
	check(r >= 256 && r <= 16384 && r&(r-1) == 0, "shadow.resolution: %d must be a power of two in [256, 16384]", r)

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}

	return err
}

var errColorRange = errors.New("components must be in [0, 1]")

func checkColor(name string, c Color) error {
	for _, v := range c {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s: %v: %w", name, c, errColorRange)
		}
	}
	return nil
}
