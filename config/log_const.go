package config

import "github.com/logrusorgru/aurora"

// Color constants for component loggers
const (
	ColorGreen   = aurora.GreenFg
	ColorBlue    = aurora.BlueFg
	ColorMagenta = aurora.MagentaFg
	ColorCyan    = aurora.CyanFg
	ColorYellow  = aurora.YellowFg
)

// Level colors
const (
	LogErrorColor = aurora.RedFg
	LogWarnColor  = aurora.YellowFg
	LogInfoColor  = aurora.GreenFg
)
