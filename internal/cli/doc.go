// Package cli provides the terminal user interface components for
// kollect.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
//   - Browser: the record browser combining the table of loaded records,
//     the edit form, the limit control and the status bar
//   - Configure: configuration wizard with form navigation
//
// The browser is a thin shell around the pure state machine in
// internal/core: terminal input is translated into core events, the core
// transition computes the next state plus outgoing requests, and the
// requests run as tea.Cmd values against the record server client. Their
// completions come back as messages wrapping further core events, which
// is also how the once-a-second clock tick enters the loop.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
