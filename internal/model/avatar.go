package model

// AvatarProgress is the gamification state for one PAEI avatar, as
// reported by the backend XP agent.
type AvatarProgress struct {
	// Name is the avatar name (Producer, Administrator,
	// Entrepreneur, Integrator).
	Name string `json:"avatar"`

	// Level is the current level, starting at 1.
	Level int `json:"level"`

	// TotalXP is the experience accumulated over all levels.
	TotalXP int `json:"total_xp"`

	// XPInLevel is the experience accumulated within the current level.
	XPInLevel int `json:"xp_in_level"`

	// XPToNext is the experience still needed to reach the next level.
	XPToNext int `json:"xp_to_next_level"`

	// ProgressPercent is XPInLevel as a percentage of the level size.
	ProgressPercent float64 `json:"progress_percent"`

	// Color is the avatar's display color name.
	Color string `json:"color"`
}
