// Package msg defines the message types used by the TUI's Bubbletea event loop.
//
// It contains every [tea.Msg] the diagram view can receive (board changes,
// the welcome timer, pulse ticks, configuration reloads) along with the
// command factories that produce them. Centralizing them keeps message
// definitions separate from their handlers and lets the cmd layer send
// messages into a running program without importing the model.
package msg
