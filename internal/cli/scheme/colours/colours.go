package colours

import "github.com/fatih/color"

// Color scheme for the CLI
var (
	Title   = color.New(color.FgCyan, color.Bold)
	Author  = color.New(color.FgMagenta)
	Prompt  = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Success = color.New(color.FgGreen)
	Info    = color.New(color.FgBlue)
	Warning = color.New(color.FgYellow)
)

// Sentence styles for the reader
var (
	Active    = color.New(color.FgWhite, color.Bold)
	Past      = color.New(color.FgHiBlack)
	Future    = color.New(color.FgWhite)
	Source    = color.New(color.FgHiBlack, color.Italic)
	Hoverable = color.New(color.FgCyan, color.Underline)
	Tooltip   = color.New(color.FgBlack, color.BgYellow)
)
