package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"src.fur.dev/pkg/diag"
	"src.fur.dev/pkg/eval"
	"src.fur.dev/pkg/store/storedefs"
	"src.fur.dev/pkg/sys"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	// Prompt is shown before each input.
	Prompt string
	// HistorySize is the number of saved inputs to load into the line editor.
	HistorySize int
	// Store keeps the history of inputs. It may be nil, in which case the
	// history is not saved.
	Store storedefs.Store
}

// State of an interactive session.
type session struct {
	fds    [3]*os.File
	ed     editor
	store  storedefs.Store
	cmdNum int
}

// Interact runs an interactive session, reading one input per line until the
// input is exhausted or the user quits.
func Interact(fds [3]*os.File, cfg *InteractConfig) {
	var ed editor
	if sys.IsATTYFile(fds[0]) {
		ed = newLineEditor(cfg.Prompt)
	} else {
		ed = newMinEditor(fds[0], fds[2], cfg.Prompt)
	}
	defer ed.Close()

	s := &session{fds: fds, ed: ed, store: cfg.Store}
	s.loadHistory(cfg.HistorySize)

	for {
		line, err := ed.ReadCode()
		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isMinEditor := ed.(*minEditor); isMinEditor {
				break
			}
			fmt.Fprintln(fds[2], "Falling back to basic line editor")
			ed.Close()
			ed = newMinEditor(fds[0], fds[2], cfg.Prompt)
			s.ed = ed
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := s.runMetaCommand(line); quit {
				break
			}
			continue
		}
		s.ed.AddHistory(line)
		s.saveHistory(line)
		s.evalInput(line)
	}
}

func (s *session) evalInput(code string) {
	out, err := eval.Eval(s.nextSource(code))
	if err != nil {
		diag.ShowError(s.fds[2], err)
		return
	}
	fmt.Fprintln(s.fds[1], out.String())
}

func (s *session) loadHistory(size int) {
	if s.store == nil || size <= 0 {
		return
	}
	next, err := s.store.NextCmdSeq()
	if err != nil {
		logger.Println("cannot get next command sequence:", err)
		return
	}
	cmds, err := s.store.CmdsWithSeq(next-size, next)
	if err != nil {
		logger.Println("cannot load history:", err)
		return
	}
	for _, cmd := range cmds {
		s.ed.AddHistory(cmd.Text)
	}
	logger.Printf("loaded %d history entries", len(cmds))
}

func (s *session) saveHistory(line string) {
	if s.store == nil {
		return
	}
	if _, err := s.store.AddCmd(line); err != nil {
		fmt.Fprintln(s.fds[2], "Warning: cannot save input to history:", err)
	}
}
