package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds overlay colors and spacing.
type Theme struct {
	Title   rl.Color
	Text    rl.Color
	Muted   rl.Color
	Warning rl.Color
	Outline rl.Color
	Padding float32
}

// DefaultTheme returns the light-on-dark overlay theme.
func DefaultTheme() Theme {
	return Theme{
		Title:   rl.White,
		Text:    rl.LightGray,
		Muted:   rl.Gray,
		Warning: rl.Yellow,
		Outline: rl.DarkGray,
		Padding: 6,
	}
}
