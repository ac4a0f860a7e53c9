package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mython/internal/ast"
	"mython/internal/lexer"
	"mython/internal/parser"
	"mython/internal/token"
)

var (
	inspectAccent = lipgloss.Color("#3B82F6")
	inspectMuted  = lipgloss.Color("#6B7280")
	inspectOK     = lipgloss.Color("#10B981")
	inspectErr    = lipgloss.Color("#EF4444")

	inspectHeaderStyle = lipgloss.NewStyle().Foreground(inspectAccent).Bold(true).Padding(0, 1)
	inspectMutedStyle  = lipgloss.NewStyle().Foreground(inspectMuted)
	inspectCursorStyle = lipgloss.NewStyle().Foreground(inspectOK).Bold(true)
	inspectErrStyle    = lipgloss.NewStyle().Foreground(inspectErr)
)

// tokenStep records one emitted token alongside the lexer's indent
// bookkeeping at the moment it was produced — the state the bare
// token stream alone doesn't expose.
type tokenStep struct {
	tok         token.Token
	indentLevel int
	indentPos   int
}

type inspectMode int

const (
	modeTokens inspectMode = iota
	modeAST
)

type inspectModel struct {
	filename string
	steps    []tokenStep
	file     *ast.File
	astJSON  string
	diags    int

	idx      int
	mode     inspectMode
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func newInspectModel(source, filename string) inspectModel {
	steps := stepTokens(source, filename)
	file, diags := parser.ParseFile(source, filename)

	astJSON := ""
	if data, err := json.MarshalIndent(ast.NodeToMap(file), "", "  "); err == nil {
		astJSON = string(data)
	}

	return inspectModel{
		filename: filename,
		steps:    steps,
		file:     file,
		astJSON:  astJSON,
		diags:    len(diags),
		mode:     modeTokens,
	}
}

// stepTokens re-derives the lexer's indent_pos alongside each emitted
// token, by tracking Indent/Dedent as it walks the stream, for display
// purposes only. The lexer's indent_level (the level implied by a
// line's leading spaces) is not reconstructed: indentLevel is filled
// with the same depth, so both numbers shown are always equal.
func stepTokens(source, filename string) []tokenStep {
	toks, _ := lexer.Tokenize(source, filename)
	var steps []tokenStep
	pos := 0
	for _, t := range toks {
		switch t.Kind {
		case token.INDENT:
			pos++
		case token.DEDENT:
			if pos > 0 {
				pos--
			}
		}
		steps = append(steps, tokenStep{tok: t, indentLevel: pos, indentPos: pos})
	}
	return steps
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		m.width, m.height = msg.Width, msg.Height
		m.viewport.SetContent(m.renderBody())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.mode == modeTokens {
				m.mode = modeAST
			} else {
				m.mode = modeTokens
			}
			m.viewport.SetContent(m.renderBody())
			return m, nil
		case "right", "l", "n":
			if m.idx < len(m.steps)-1 {
				m.idx++
			}
			m.viewport.SetContent(m.renderBody())
			return m, nil
		case "left", "h", "p":
			if m.idx > 0 {
				m.idx--
			}
			m.viewport.SetContent(m.renderBody())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m inspectModel) renderBody() string {
	if m.mode == modeAST {
		return m.astJSON
	}

	var b strings.Builder
	for i, step := range m.steps {
		line := fmt.Sprintf("%4d  %-12s %-20q  indent=%d/%d",
			i, step.tok.Kind, tokenLexeme(step.tok), step.indentPos, step.indentLevel)
		if i == m.idx {
			b.WriteString(inspectCursorStyle.Render("› " + line))
		} else {
			b.WriteString(inspectMutedStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m inspectModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := inspectHeaderStyle.Render("mython inspect") + " " + inspectMutedStyle.Render(m.filename)
	modeLabel := "tokens"
	if m.mode == modeAST {
		modeLabel = "ast"
	}
	status := inspectMutedStyle.Render(fmt.Sprintf("mode=%s  token %d/%d", modeLabel, m.idx+1, len(m.steps)))
	if m.diags > 0 {
		status += "  " + inspectErrStyle.Render(fmt.Sprintf("%d diagnostic(s)", m.diags))
	}

	footer := inspectMutedStyle.Render("←/→ step   tab toggle view   q quit")

	return header + "\n" + status + "\n" + m.viewport.View() + "\n" + footer
}

func cmdInspect(source, filename string) {
	p := tea.NewProgram(newInspectModel(source, filename), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
