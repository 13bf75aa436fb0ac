package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.fur.dev/pkg/must"
	. "src.fur.dev/pkg/prog/progtest"
	"src.fur.dev/pkg/store"
	"src.fur.dev/pkg/store/storedefs"
	"src.fur.dev/pkg/testutil"
)

// Runs an interactive session with the given input, and returns what it
// writes to stdout and stderr.
func interact(stdin string, st storedefs.Store) (stdout, stderr string) {
	r0, w0 := must.Pipe()
	must.OK1(w0.WriteString(stdin))
	w0.Close()
	defer r0.Close()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()
	outCh := make(chan string, 1)
	errCh := make(chan string, 1)
	go func() { outCh <- string(must.ReadAllAndClose(r1)) }()
	go func() { errCh <- string(must.ReadAllAndClose(r2)) }()

	Interact([3]*os.File{r0, w1, w2}, &InteractConfig{Prompt: "> ", Store: st})
	w1.Close()
	w2.Close()
	return <-outCh, <-errCh
}

var interactTests = []struct {
	name           string
	stdin          string
	withStore      bool
	wantOut        string
	wantErrSnippet string
}{
	{
		name:    "inputs",
		stdin:   "1 + 2\nsole : Trivial\n\n   \nInt\n",
		wantOut: "3 : Int\nsole : Trivial\nInt : U(0)\n",
	},
	{
		name:           "error does not stop the loop",
		stdin:          "x\n1\n",
		wantOut:        "1 : Int\n",
		wantErrSnippet: "not found: x",
	},
	{
		name:           "parse error",
		stdin:          "1 +\n",
		wantErrSnippet: "Parse error",
	},
	{
		name:    "quit",
		stdin:   "1\n:q\n2\n",
		wantOut: "1 : Int\n",
	},
	{
		name:    "quit, long form",
		stdin:   ":quit\n2\n",
		wantOut: "",
	},
	{
		name:           "unknown meta-command",
		stdin:          ":foo bar\n",
		wantErrSnippet: "unknown command :foo, try :help",
	},
	{
		name:    "type",
		stdin:   ":type U(3)\n:type  1 + 2 \n",
		wantOut: "U(4)\nInt\n",
	},
	{
		name:           "type of an ill-typed expression",
		stdin:          ":type x\n",
		wantErrSnippet: "not found: x",
	},
	{
		name:           "type without expression",
		stdin:          ":type\n",
		wantErrSnippet: "an expression is required",
	},
	{
		name:           "dump of an unparsable expression",
		stdin:          ":dump (\n",
		wantErrSnippet: "Parse error",
	},
	{
		name:           "history without a store",
		stdin:          ":history\n",
		wantErrSnippet: "history is not available",
	},
	{
		name:      "history",
		stdin:     "1\n2 + 2\nsole\n:history\n:history 2\n",
		withStore: true,
		wantOut: "1 : Int\n4 : Int\nsole : Trivial\n" +
			"    1  1\n    2  2 + 2\n    3  sole\n" +
			"    2  2 + 2\n",
	},
	{
		name:      "failing inputs are saved too",
		stdin:     "x\n:history\n",
		withStore: true,
		wantOut:   "    1  x\n",
		// Error from evaluating x.
		wantErrSnippet: "not found: x",
	},
	{
		name:           "redo",
		stdin:          "1 + 1\n:redo\n:redo 1\n:history\n",
		withStore:      true,
		wantOut:        "2 : Int\n2 : Int\n2 : Int\n    1  1 + 1\n    2  1 + 1\n    3  1 + 1\n",
		wantErrSnippet: "1 + 1\n",
	},
	{
		name:           "redo with empty history",
		stdin:          ":redo\n",
		withStore:      true,
		wantErrSnippet: "no saved input",
	},
	{
		name:           "redo with bad sequence number",
		stdin:          ":redo x\n",
		withStore:      true,
		wantErrSnippet: `bad sequence number "x"`,
	},
	{
		name:           "redo of a missing input",
		stdin:          ":redo 5\n",
		withStore:      true,
		wantErrSnippet: "no saved input 5",
	},
	{
		name:      "forget",
		stdin:     "1\n2\n:forget 1\n:history\n",
		withStore: true,
		wantOut:   "1 : Int\n2 : Int\n    2  2\n",
	},
	{
		name:           "forget a missing input",
		stdin:          "1\n:forget 1\n:forget 1\n",
		withStore:      true,
		wantOut:        "1 : Int\n",
		wantErrSnippet: "no saved input 1",
	},
	{
		name:           "forget without sequence number",
		stdin:          ":forget\n",
		withStore:      true,
		wantErrSnippet: "a sequence number is required",
	},
}

func TestInteract(t *testing.T) {
	for _, test := range interactTests {
		t.Run(test.name, func(t *testing.T) {
			var st storedefs.Store
			if test.withStore {
				st = store.MustTempStore(t)
			}
			out, err := interact(test.stdin, st)
			if out != test.wantOut {
				t.Errorf("got stdout %q, want %q", out, test.wantOut)
			}
			if !strings.Contains(err, test.wantErrSnippet) {
				t.Errorf("got stderr %q, want it to contain %q", err, test.wantErrSnippet)
			}
		})
	}
}

func TestInteract_Dump(t *testing.T) {
	out, err := interact(":dump 1 + 2\n", nil)
	for _, snippet := range []string{
		"term: (core.Add) {", "Left: (core.IntLit) {", "Value: (int64) 1",
		"value: (core.IntLitVal) {", "Value: (int64) 3",
		"type: (core.IntTypeVal) {",
	} {
		if !strings.Contains(out, snippet) {
			t.Errorf("stdout %q doesn't contain %q", out, snippet)
		}
	}
	if err != strings.Repeat("> ", 2) {
		t.Errorf("got stderr %q", err)
	}
}

func TestInteract_DumpIllTyped(t *testing.T) {
	out, err := interact(":dump sole : Int\n", nil)
	if !strings.HasPrefix(out, "term: (core.Annotated) {") || strings.Contains(out, "value:") {
		t.Errorf("got stdout %q, want only the term", out)
	}
	if !strings.Contains(err, "type mismatch") {
		t.Errorf("got stderr %q, want a type mismatch", err)
	}
}

func TestInteract_Help(t *testing.T) {
	out, _ := interact(":help\n", nil)
	for _, name := range metaCommandNames() {
		if !strings.Contains(out, "  "+name) {
			t.Errorf("help doesn't mention %s:\n%s", name, out)
		}
	}
}

func TestInteract_Prompts(t *testing.T) {
	_, err := interact("1\n2", nil)
	if err != "> > > " {
		t.Errorf("got stderr %q, want three prompts", err)
	}
}

func TestProgram_Interactive(t *testing.T) {
	home := testutil.TempHome(t)
	dbPath := filepath.Join(home, ".local", "state", "fur", "db.bolt")

	Test(t, Program{},
		ThatFur().WithStdin("1 + 2\n").
			WritesStdout("3 : Int\n").
			WritesStderr(">> >> "),
		ThatFur("-c").
			ExitsWith(2).
			WritesStderrContaining("-c requires an argument"),
	)
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("history database not created: %v", err)
	}

	// History persists across sessions.
	Test(t, Program{},
		ThatFur().WithStdin(":history\n").
			WritesStdout("    1  1 + 2\n").
			WritesStderr(">> >> "),
	)
}

func TestProgram_RC(t *testing.T) {
	home := testutil.TempHome(t)
	rcDir := filepath.Join(home, ".config", "fur")
	must.OK(os.MkdirAll(rcDir, 0700))
	must.WriteFile(filepath.Join(rcDir, "rc.yaml"), "prompt: 'fur> '\nhistory: false\n")
	testutil.InTempDir(t)
	must.WriteFile("other.yaml", "prompt: '$ '\n")
	must.WriteFile("bad.yaml", "prompt: [\n")

	Test(t, Program{},
		ThatFur().WithStdin("1\n:history\n").
			WritesStdout("1 : Int\n").
			WritesStderrContaining("history is not available"),
		ThatFur("-norc", "-db", "other.bolt").WithStdin("1\n").
			WritesStdout("1 : Int\n").
			WritesStderr(">> >> "),
		ThatFur("-rc", "other.yaml", "-db", "other.bolt").WithStdin("1\n").
			WritesStdout("1 : Int\n").
			WritesStderr("$ $ "),
		ThatFur("-rc", "bad.yaml", "-db", "other.bolt").WithStdin("").
			WritesStderrContaining("Warning: cannot parse bad.yaml"),
	)
	if _, err := os.Stat("other.bolt"); err != nil {
		t.Errorf("-db is not respected: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".local")); err == nil {
		t.Errorf("history database created with history: false")
	}
}

func TestProgram_BadDB(t *testing.T) {
	testutil.TempHome(t)
	dir := testutil.InTempDir(t)

	Test(t, Program{},
		ThatFur("-norc", "-db", dir).WithStdin("1\n").
			WritesStdout("1 : Int\n").
			WritesStderrContaining("History will not be saved."),
	)
}
