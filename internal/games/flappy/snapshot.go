package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// MaxTilt bounds the avatar's drawn rotation in radians.
const MaxTilt = 0.5

// AvatarView is the renderable view of the avatar.
type AvatarView struct {
	Avatar
	Tilt float64 // Radians, positive = nose down
}

// Snapshot is a read-only copy of the state for renderers.
type Snapshot struct {
	Phase     Phase
	Avatar    AvatarView
	Obstacles []Obstacle
	Score     int
	Speed     float64
	Frame     int
	Width     float64
	Height    float64
}

// Tilt maps a vertical velocity to a rotation angle.
func Tilt(velocity float64) float64 {
	return core.ClampF(velocity/10, -MaxTilt, MaxTilt)
}

// Snapshot returns a copy of the current state. Mutating it does not affect s.
func (s *State) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(s.obstacles))
	copy(obstacles, s.obstacles)

	return Snapshot{
		Phase: s.phase,
		Avatar: AvatarView{
			Avatar: s.avatar,
			Tilt:   Tilt(s.avatar.Velocity),
		},
		Obstacles: obstacles,
		Score:     s.score,
		Speed:     s.speed,
		Frame:     s.frame,
		Width:     s.width,
		Height:    s.height,
	}
}
