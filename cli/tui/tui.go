package tui

import (
	"fmt"
	"slices"
)

// View types with TUI support.
const (
	ViewInspectResponse = "inspect_response"
	ViewStatsDecode     = "stats_decode"
)

// Run starts the TUI for the view type.
// Returns an error if the view type doesn't support TUI.
func Run(viewType string, data any) error {
	switch viewType {
	case ViewInspectResponse:
		return RunInspectTUI(data)
	case ViewStatsDecode:
		return RunStatsTUI(data)
	default:
		return fmt.Errorf("TUI mode is not supported for %s", viewType)
	}
}

// IsTUISupported returns true if the view type supports TUI mode.
func IsTUISupported(viewType string) bool {
	return slices.Contains(SupportedTUIViews(), viewType)
}

// SupportedTUIViews returns a list of view types that support TUI.
func SupportedTUIViews() []string {
	return []string{ViewInspectResponse, ViewStatsDecode}
}

// RenderStatic renders a view once, without starting a program. Used when
// stdout is not a terminal.
func RenderStatic(viewType string, data any) (string, error) {
	switch viewType {
	case ViewInspectResponse:
		return NewInspectModel(data).static(), nil
	case ViewStatsDecode:
		return NewStatsModel(data).static(), nil
	default:
		return "", fmt.Errorf("TUI mode is not supported for %s", viewType)
	}
}
