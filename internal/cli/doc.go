// Package cli provides the terminal user interface components for Upstream.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. Components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
//   - Configure: the update settings form (update type select, repository
//     URL input, masked access token input)
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
