package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutSidebarWidth is the width of the views sidebar.
	LayoutSidebarWidth = 26

	// LayoutDetailWidth is the minimum width to show the details pane.
	LayoutDetailWidth = 100

	// LayoutDetailPaneWidth is the width of the details pane when shown.
	LayoutDetailPaneWidth = 40
)

// Log display limits.
const (
	// LogTailLines is the number of log lines loaded into the log view.
	LogTailLines = 500
)

// Timing constants.
const (
	// LogRefreshInterval is how often the log view re-reads the log file.
	LogRefreshInterval = 2 * time.Second

	// PreviewTimeout bounds loading and rendering a preview.
	PreviewTimeout = 20 * time.Second

	// SearchTimeout bounds a stock photo search.
	SearchTimeout = 15 * time.Second

	// StatusTTL is how long a status message stays in the footer.
	StatusTTL = 6 * time.Second
)
