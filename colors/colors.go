package colors

import "github.com/fatih/color"

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()

	// Theme-dependent, see Apply
	Heading = color.New(color.FgBlack, color.Bold).SprintFunc()
	Muted   = color.New(color.FgHiBlack).SprintFunc()
	Accent  = color.New(color.FgBlue).SprintFunc()
)

// Apply switches the process-wide palette to the given theme
// ("light" or "dark"). Dark terminals need brighter foregrounds.
func Apply(theme string) {
	if theme == "dark" {
		Heading = color.New(color.FgHiWhite, color.Bold).SprintFunc()
		Muted = color.New(color.FgWhite).SprintFunc()
		Accent = color.New(color.FgHiCyan).SprintFunc()
		return
	}

	Heading = color.New(color.FgBlack, color.Bold).SprintFunc()
	Muted = color.New(color.FgHiBlack).SprintFunc()
	Accent = color.New(color.FgBlue).SprintFunc()
}
