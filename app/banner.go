// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"

	"rivaas.dev/navigator/history"
)

// colorWriter downsamples colors to the terminal. Production output is
// stripped of ANSI sequences.
func (a *App) colorWriter(w io.Writer) *colorprofile.Writer {
	cpw := colorprofile.NewWriter(w, os.Environ())
	if a.config.environment == EnvironmentProduction {
		cpw.Profile = colorprofile.NoTTY
	}
	return cpw
}

func (a *App) printBanner(out io.Writer) {
	w := a.colorWriter(out)

	asciiLines := figure.NewFigure(a.config.serviceName, "", false).Slicify()
	gradient := []string{"12", "14", "10", "11"}

	var art strings.Builder
	for _, line := range asciiLines {
		if strings.TrimSpace(line) == "" {
			_, _ = art.WriteString("\n")
			continue
		}
		for i, char := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(gradient[i%len(gradient)])).
				Bold(true)
			_, _ = art.WriteString(style.Render(string(char)))
		}
		_, _ = art.WriteString("\n")
	}

	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Width(14).
		PaddingLeft(2).
		Align(lipgloss.Left)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	providerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	line := func(b *strings.Builder, label, value, color string) {
		_, _ = b.WriteString(labelStyle.Render(label) + "  " +
			valueStyle.Foreground(lipgloss.Color(color)).Render(value) + "\n")
	}

	var info strings.Builder
	_, _ = info.WriteString(categoryStyle.Render("Service") + "\n")
	line(&info, "Version:", a.config.serviceVersion, "14")
	line(&info, "Environment:", a.config.environment, "11")

	_, _ = info.WriteString("\n" + categoryStyle.Render("Navigation") + "\n")
	line(&info, "History:", historyLabel(a.history, a.declaration.History.Mode), "10")
	line(&info, "Location:", a.engine.Active().FullPath(), "10")
	line(&info, "Routes:", strconv.Itoa(a.table.Len()), "13")

	_, _ = info.WriteString("\n" + categoryStyle.Render("Observability") + "\n")
	_, _ = info.WriteString(labelStyle.Render("Metrics:") + "  " +
		providerStyle.Render(fmt.Sprintf("[%s]", a.metrics.Kind())) + "\n")
	_, _ = info.WriteString(labelStyle.Render("Tracing:") + "  " +
		providerStyle.Render(fmt.Sprintf("[%s]", a.tracing.Kind())) + "\n")

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprint(w, art.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprint(w, info.String())
	_, _ = fmt.Fprintln(w)
	a.renderRoutesTable(w, 80)
}

func historyLabel(h history.Adapter, declared string) string {
	if m, ok := h.(interface{ Addresser() history.Addresser }); ok {
		addr := m.Addresser()
		base := addr.Base()
		if base == "" {
			base = "/"
		}
		return fmt.Sprintf("%s %s", addr.Mode(), base)
	}
	return declared
}

// PrintRoutes writes the route table to w.
func (a *App) PrintRoutes(w io.Writer) {
	a.renderRoutesTable(a.colorWriter(w), 100)
}

func (a *App) renderRoutesTable(w io.Writer, width int) {
	routes := a.table.Routes()
	if len(routes) == 0 {
		return
	}

	useColors := a.config.environment == EnvironmentDevelopment
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	paramStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	rows := make([][]string, 0, len(routes))
	maxName, maxPath, maxView := len("Name"), len("Path"), len("View")
	for _, r := range routes {
		name, path, view := r.Name(), r.Path(), viewLabel(r.View())
		maxName = max(maxName, len(name))
		maxPath = max(maxPath, len(path))
		maxView = max(maxView, len(view))

		if useColors {
			name = nameStyle.Render(name)
			if strings.Contains(path, ":") {
				path = paramStyle.Render(path)
			}
		}
		rows = append(rows, []string{name, path, view})
	}

	// Borders (2), separators (2) and one cell of padding each side (6).
	minWidth := 2 + 2 + 6 + maxName + maxPath + maxView

	terminalWidth := width
	if file, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(file.Fd())); err == nil && tw > 0 {
			terminalWidth = tw
		}
	}
	tableWidth := max(minWidth, width)
	if terminalWidth > 0 {
		tableWidth = min(tableWidth, terminalWidth)
	}
	tableWidth = max(60, tableWidth)

	borderStyle := lipgloss.NewStyle()
	if useColors {
		borderStyle = borderStyle.Foreground(lipgloss.Color("240"))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
			if row == table.HeaderRow && useColors {
				style = style.Bold(true).Foreground(lipgloss.Color("230"))
			}
			return style
		}).
		Headers("Name", "Path", "View").
		Rows(rows...).
		Width(tableWidth)

	_, _ = fmt.Fprintln(w, t.Render())
}

func viewLabel(v any) string {
	switch view := v.(type) {
	case nil:
		return "-"
	case string:
		return view
	case fmt.Stringer:
		return view.String()
	default:
		return fmt.Sprintf("%T", v)
	}
}
