package tui

import "github.com/charmbracelet/lipgloss"

var (
	canvasStyle   = lipgloss.NewStyle().Padding(0, 1)
	statsStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(panelWidth)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	craftStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	graphStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	statusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	statusStopped = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	statusMessage = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Italic(true)
)
