package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"src.fur.dev/pkg/parse"
)

// This type is the interface that the line editor has to satisfy.
type editor interface {
	// ReadCode reads one line of input. It returns io.EOF when there is no
	// more input.
	ReadCode() (string, error)
	// AddHistory makes an input available for recall.
	AddHistory(line string)
	Close() error
}

// A line editor used when the input is not a terminal. It writes the prompt
// to out and doesn't support recalling history.
type minEditor struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func newMinEditor(in, out *os.File, prompt string) *minEditor {
	return &minEditor{bufio.NewReader(in), out, prompt}
}

func (ed *minEditor) ReadCode() (string, error) {
	fmt.Fprint(ed.out, ed.prompt)
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		// Last line without a trailing newline.
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

func (ed *minEditor) AddHistory(string) {}

func (ed *minEditor) Close() error { return nil }

// A line editor backed by liner, used when the input is a terminal.
type lineEditor struct {
	state  *liner.State
	prompt string
}

func newLineEditor(prompt string) *lineEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetWordCompleter(completeWord)
	state.SetTabCompletionStyle(liner.TabPrints)
	return &lineEditor{state, prompt}
}

func (ed *lineEditor) ReadCode() (string, error) {
	line, err := ed.state.Prompt(ed.prompt)
	if err == liner.ErrPromptAborted {
		// Ctrl-C discards the current line.
		return "", nil
	}
	return line, err
}

func (ed *lineEditor) AddHistory(line string) { ed.state.AppendHistory(line) }

func (ed *lineEditor) Close() error { return ed.state.Close() }

// Words offered by completion, in addition to the names of meta-commands.
var keywords = []string{"Int", "Trivial", "sole", "U("}

// Completes the word before pos. Meta-commands are only completed at the start
// of the line.
func completeWord(line string, pos int) (head string, completions []string, tail string) {
	head, tail = line[:pos], line[pos:]
	begin := strings.LastIndexFunc(head, func(r rune) bool {
		return !parse.IsNameRune(r)
	}) + 1
	word := head[begin:]

	candidates := keywords
	if begin == 1 && head[0] == ':' {
		begin, word = 0, head
		candidates = metaCommandNames()
	}
	for _, c := range candidates {
		if strings.HasPrefix(c, word) {
			completions = append(completions, c)
		}
	}
	return head[:begin], completions, tail
}
