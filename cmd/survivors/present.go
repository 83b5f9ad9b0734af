package main

import (
	"github.com/l1jgo/survivors/internal/vmath"
	"go.uber.org/zap"
)

// logPresenter stands in for the UI when running headless.
type logPresenter struct {
	log *zap.Logger
}

func (p *logPresenter) GameOver() {
	p.log.Warn("GAME OVER")
}

// logCamera records the followed position and traces it at debug level.
type logCamera struct {
	log *zap.Logger
	pos vmath.Vec3
}

func (c *logCamera) Follow(pos vmath.Vec3) {
	if pos == c.pos {
		return
	}
	c.pos = pos
	c.log.Debug("camera", zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
}
