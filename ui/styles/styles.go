package styles

import "github.com/charmbracelet/lipgloss"

var (
	Accent = lipgloss.Color("205")
	Muted  = lipgloss.Color("241")
	Warn   = lipgloss.Color("203")
)

func InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(0, 1).
		Width(max(width-4, 10))
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true).
		Padding(1, 2)
}

// WelcomeStyle is used for program entries such as the greeting
func WelcomeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 2)
}

func UserStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1).
		MarginLeft(2)
}

func AssistantStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Accent).
		MarginLeft(2)
}

func ThinkingStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true).
		Padding(0, 2)
}

func MenuItemStyle(selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 2)
	if selected {
		return style.Foreground(Accent).Bold(true)
	}
	return style.Foreground(lipgloss.Color("252"))
}

func PromptStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Accent).
		Padding(1, 2).
		Width(min(max(width-8, 20), 60))
}

func ButtonStyle(selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	if selected {
		return style.Background(Accent).Foreground(lipgloss.Color("230")).Bold(true)
	}
	return style.Background(lipgloss.Color("237")).Foreground(lipgloss.Color("252"))
}

func AlertStyle(sounding bool) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true).Padding(1, 2)
	if sounding {
		return style.Foreground(Warn)
	}
	return style.Foreground(lipgloss.Color("252"))
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Warn).
		Padding(0, 2)
}

func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 2)
}
