package ui

// Semantic colors for the notification overlay. Each knowledge base action
// carries its own background so the player reads the verdict from color
// alone before the text registers.

import "github.com/lucasb-eyer/go-colorful"

const (
	ColorSell    = "#FFD700"
	ColorRecycle = "#00CED1"
	ColorKeep    = "#32CD32"
	ColorUse     = "#FF69B4"
	ColorTrash   = "#FF4444"
	ColorNeutral = "#888888"

	ColorWindowBg = "#1e1e1e"
	ColorTextDark = "#1a1a1a"
	ColorTextLite = "#f5f5f5"
)

// ActionColor maps a knowledge base action to its overlay background.
func ActionColor(action string) string {
	switch action {
	case "SELL":
		return ColorSell
	case "RECYCLE":
		return ColorRecycle
	case "KEEP":
		return ColorKeep
	case "USE":
		return ColorUse
	case "TRASH":
		return ColorTrash
	default:
		return ColorNeutral
	}
}

// TextColorFor picks a readable foreground for the given background. Light
// backgrounds get dark text.
func TextColorFor(background string) string {
	c, err := colorful.Hex(background)
	if err != nil {
		return ColorTextLite
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return ColorTextDark
	}
	return ColorTextLite
}
