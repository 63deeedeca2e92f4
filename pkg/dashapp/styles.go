package dashapp

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#86EFAC"))
	subtitleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	detailTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FDE047"))
	infoTextStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBD5F5"))
	errorTextStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	labelStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#A5B4FC"))
	focusedLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
	selectedOptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")).Bold(true)
	stepDoneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))
	stepActiveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")).Bold(true)
	stepPendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#475569"))
	formPanelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4C566A")).Padding(0, 1)
	listPanelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4C566A")).Padding(0, 1)
	noticeStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#F87171")).Foreground(lipgloss.Color("#FCA5A5")).Padding(0, 1).MarginTop(1)
	tabStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Padding(0, 2)
	activeTabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E7FF")).Background(lipgloss.Color("#312E81")).Bold(true).Padding(0, 2)
	statusBarStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1).MarginTop(1).Background(lipgloss.Color("#312E81")).Foreground(lipgloss.Color("#E0E7FF"))
	footerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Padding(0, 1).MarginTop(1)
	helpStyle           = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7C3AED")).Padding(1, 2).MarginTop(1)
)

func styleForWidth(base lipgloss.Style, totalWidth int) lipgloss.Style {
	style := base.Copy()
	if totalWidth <= 0 {
		return style.Width(0)
	}
	frameWidth, _ := base.GetFrameSize()
	contentWidth := totalWidth - frameWidth
	if contentWidth < 0 {
		contentWidth = 0
	}
	return style.Width(contentWidth)
}
