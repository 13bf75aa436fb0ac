package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"src.fur.dev/pkg/core"
	"src.fur.dev/pkg/diag"
	"src.fur.dev/pkg/eval"
	"src.fur.dev/pkg/parse"
	"src.fur.dev/pkg/store/storedefs"
)

// A command starting with ":" that is handled by the shell itself instead of
// being evaluated.
type metaCommand struct {
	args string
	desc string
	fn   func(s *session, arg string) error
}

var metaCommands map[string]*metaCommand

func init() {
	quit := &metaCommand{"", "leave the shell", func(*session, string) error { return errQuit }}
	metaCommands = map[string]*metaCommand{
		":q":       quit,
		":quit":    quit,
		":help":    {"", "show this help", (*session).help},
		":history": {"[prefix]", "list saved inputs starting with prefix", (*session).history},
		":redo":    {"[seq]", "evaluate the saved input seq again, the last one by default", (*session).redo},
		":forget":  {"seq", "delete the saved input seq", (*session).forget},
		":dump":    {"expr", "show the structure of expr, its value and its type", (*session).dump},
		":type":    {"expr", "show the type of expr without evaluating it", (*session).typeOf},
	}
}

func metaCommandNames() []string {
	names := lo.Keys(metaCommands)
	slices.Sort(names)
	return names
}

var (
	errQuit      = errors.New("quit")
	errNoHistory = errors.New("history is not available")
	errNeedsSeq  = errors.New("a sequence number is required")
	errNeedsExpr = errors.New("an expression is required")
)

// Runs a meta-command and reports whether the shell should quit.
func (s *session) runMetaCommand(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	cmd, ok := metaCommands[name]
	if !ok {
		diag.Complainf(s.fds[2], "unknown command %s, try :help", name)
		return false
	}
	logger.Println("running meta-command", name)
	err := cmd.fn(s, arg)
	if err == errQuit {
		return true
	}
	if err != nil {
		diag.ShowError(s.fds[2], err)
	}
	return false
}

func (s *session) help(string) error {
	out := s.fds[1]
	fmt.Fprintln(out, "Enter an expression to evaluate it, or one of these commands:")
	for _, name := range metaCommandNames() {
		cmd := metaCommands[name]
		fmt.Fprintf(out, "  %-18s %s\n", strings.TrimSpace(name+" "+cmd.args), cmd.desc)
	}
	return nil
}

func (s *session) history(prefix string) error {
	if s.store == nil {
		return errNoHistory
	}
	for from := 0; ; {
		cmd, err := s.store.NextCmd(from, prefix)
		if err == storedefs.ErrNoMatchingCmd {
			return nil
		} else if err != nil {
			return err
		}
		fmt.Fprintf(s.fds[1], "%5d  %s\n", cmd.Seq, cmd.Text)
		from = cmd.Seq + 1
	}
}

func (s *session) redo(arg string) error {
	if s.store == nil {
		return errNoHistory
	}
	var text string
	if arg == "" {
		next, err := s.store.NextCmdSeq()
		if err != nil {
			return err
		}
		cmd, err := s.store.PrevCmd(next, "")
		if err != nil {
			return noInput(err, "no saved input")
		}
		text = cmd.Text
	} else {
		seq, err := parseSeq(arg)
		if err != nil {
			return err
		}
		text, err = s.store.Cmd(seq)
		if err != nil {
			return noInput(err, fmt.Sprintf("no saved input %d", seq))
		}
	}
	fmt.Fprintln(s.fds[2], text)
	s.ed.AddHistory(text)
	s.saveHistory(text)
	s.evalInput(text)
	return nil
}

func (s *session) forget(arg string) error {
	if s.store == nil {
		return errNoHistory
	}
	if arg == "" {
		return errNeedsSeq
	}
	seq, err := parseSeq(arg)
	if err != nil {
		return err
	}
	if err := s.store.DelCmd(seq); err != nil {
		return noInput(err, fmt.Sprintf("no saved input %d", seq))
	}
	return nil
}

// Options for dumping terms and values. Method calls are disabled so that the
// structure is shown instead of the rendering.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func (s *session) dump(code string) error {
	if code == "" {
		return errNeedsExpr
	}
	out, err := eval.Eval(s.nextSource(code))
	if out.Term == nil {
		return err
	}
	fmt.Fprint(s.fds[1], "term: ", dumper.Sdump(out.Term))
	if err != nil {
		return err
	}
	fmt.Fprint(s.fds[1], "value: ", dumper.Sdump(out.Value))
	fmt.Fprint(s.fds[1], "type: ", dumper.Sdump(out.Type))
	return nil
}

func (s *session) typeOf(code string) error {
	if code == "" {
		return errNeedsExpr
	}
	_, ty, err := eval.Check(s.nextSource(code))
	if err != nil {
		return err
	}
	fmt.Fprintln(s.fds[1], core.Quote(ty))
	return nil
}

func (s *session) nextSource(code string) parse.Source {
	s.cmdNum++
	return parse.Source{Name: fmt.Sprintf("[tty %v]", s.cmdNum), Code: code}
}

func parseSeq(arg string) (int, error) {
	seq, err := strconv.Atoi(arg)
	if err != nil || seq <= 0 {
		return 0, fmt.Errorf("bad sequence number %q", arg)
	}
	return seq, nil
}

func noInput(err error, msg string) error {
	if err == storedefs.ErrNoMatchingCmd {
		return errors.New(msg)
	}
	return err
}
