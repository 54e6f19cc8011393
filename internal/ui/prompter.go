package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned when the user abandons a prompt.
var ErrInterrupted = errors.New("interrupted")

// Prompter asks one question and returns the answer without its line
// ending. io.EOF means input is exhausted.
type Prompter interface {
	Prompt(ctx context.Context, label, placeholder string) (string, error)
}

// NewPrompter returns an interactive prompter when in and out are
// terminals and a plain line reader otherwise.
func NewPrompter(in *os.File, out *os.File) Prompter {
	if IsTTY(in) && IsTTY(out) {
		return &LinePrompter{In: in, Out: out}
	}
	return NewPlainPrompter(in, out)
}

// LinePrompter reads each answer with a bubbletea text input.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

// Prompt shows label and edits an answer until enter. Escape and ctrl+c
// return ErrInterrupted; ctrl+d on an empty line returns io.EOF.
func (p *LinePrompter) Prompt(ctx context.Context, label, placeholder string) (string, error) {
	model := newPromptModel(label, placeholder)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
	)
	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("prompt: %w", err)
	}
	m, ok := final.(*promptModel)
	if !ok {
		return "", fmt.Errorf("prompt: unexpected model %T", final)
	}
	return m.result()
}

type promptModel struct {
	input textinput.Model
	label string
	done  bool
	err   error
}

func newPromptModel(label, placeholder string) *promptModel {
	ti := textinput.New()
	ti.Prompt = label + " "
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()
	return &promptModel{input: ti, label: label}
}

func (m *promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrInterrupted
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.err = io.EOF
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *promptModel) View() string {
	if m.err != nil {
		return ""
	}
	if m.done {
		return m.label + " " + m.input.Value() + "\n"
	}
	return m.input.View()
}

func (m *promptModel) result() (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if !m.done {
		return "", ErrInterrupted
	}
	return m.input.Value(), nil
}

// PlainPrompter reads answers line by line, for piped input.
type PlainPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainPrompter returns a prompter reading lines from in.
func NewPlainPrompter(in io.Reader, out io.Writer) *PlainPrompter {
	return &PlainPrompter{in: bufio.NewReader(in), out: out}
}

// Prompt writes label and reads one line. The placeholder is not shown.
func (p *PlainPrompter) Prompt(ctx context.Context, label, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(p.out, label+" "); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
