package prog_test

import (
	"os"
	"strings"
	"testing"

	"src.fur.dev/pkg/logutil"
	"src.fur.dev/pkg/must"
	. "src.fur.dev/pkg/prog"
	"src.fur.dev/pkg/prog/progtest"
	"src.fur.dev/pkg/testutil"
)

var (
	Test    = progtest.Test
	ThatFur = progtest.ThatFur
)

func TestCommonFlagHandling(t *testing.T) {
	Test(t, testProgram{},
		ThatFur("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatFur("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatFur("-help").
			WritesStdoutContaining("Usage: fur [flags] [script]"),
	)
}

func TestLogFlag(t *testing.T) {
	testutil.InTempDir(t)
	t.Cleanup(func() { logutil.SetOutputFile("") })

	Test(t, testProgram{logMsg: "hello from test"},
		ThatFur("-log", "log").DoesNothing(),
		ThatFur("-log", "/a/bad/path/log").
			WritesStderrContaining("/a/bad/path/log"),
	)

	logutil.SetOutputFile("")
	content := string(must.OK1(os.ReadFile("log")))
	if !strings.Contains(content, "hello from test") {
		t.Errorf("log file contains %q", content)
	}
}

func TestFlagsArePassed(t *testing.T) {
	var got Flags
	Test(t, flagsProgram{&got},
		ThatFur("-c", "-compileonly", "-json", "-norc", "-rc", "rc.yaml",
			"-db", "db.bolt", "-lsp").DoesNothing(),
	)
	want := Flags{CodeInArg: true, CompileOnly: true, JSON: true, NoRc: true,
		RC: "rc.yaml", DB: "db.bolt", LSP: true}
	if got != want {
		t.Errorf("got flags %+v, want %+v", got, want)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatFur().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatFur().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatFur().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatFur().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatFur().ExitsWith(2).WritesStderrContaining("lorem ipsum\n"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatFur().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatFur().ExitsWith(0),
	)
}

var logger = logutil.GetLogger("[prog_test] ")

type testProgram struct {
	notSuitable bool
	writeOut    string
	logMsg      string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	if p.logMsg != "" {
		logger.Println(p.logMsg)
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type flagsProgram struct{ f *Flags }

func (p flagsProgram) Run(_ [3]*os.File, f *Flags, _ []string) error {
	*p.f = *f
	return nil
}
