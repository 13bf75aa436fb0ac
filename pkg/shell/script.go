package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/samber/lo"

	"src.fur.dev/pkg/diag"
	"src.fur.dev/pkg/eval"
	"src.fur.dev/pkg/parse"
)

// Configuration for the script mode.
type scriptCfg struct {
	Cmd         bool
	CompileOnly bool
	JSON        bool
}

// Processes every input of a script, and returns the exit status.
func script(fds [3]*os.File, args []string, cfg *scriptCfg) int {
	arg0 := args[0]

	var name, code string
	if cfg.Cmd {
		name = "code from -c"
		code = arg0
	} else {
		var err error
		name, err = filepath.Abs(arg0)
		if err != nil {
			fmt.Fprintf(fds[2],
				"cannot get full path of script %q: %v\n", arg0, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
	}

	src := parse.Source{Name: name, Code: code, IsFile: !cfg.Cmd}
	var errs []*diag.Error
	for _, in := range parse.Inputs(src) {
		var err error
		if cfg.CompileOnly {
			_, _, err = eval.Check(in.Source)
		} else {
			var out eval.Outcome
			out, err = eval.Eval(in.Source)
			if err == nil {
				fmt.Fprintln(fds[1], out.String())
			}
		}
		if err == nil {
			continue
		}
		e := relocate(src, in, err)
		errs = append(errs, e)
		if !cfg.JSON {
			diag.ShowError(fds[2], e)
		}
	}
	logger.Printf("processed %s, %d errors", name, len(errs))

	if cfg.CompileOnly && cfg.JSON {
		fmt.Fprintf(fds[1], "%s\n", errorsToJSON(errs))
	}
	if len(errs) > 0 {
		return 2
	}
	return 0
}

// Moves an error about one input of src into the context of the whole src.
func relocate(src parse.Source, in parse.Input, err error) *diag.Error {
	var e *diag.Error
	if !errors.As(err, &e) {
		return &diag.Error{
			Type:    eval.TypeErrorType,
			Message: err.Error(),
			Context: *diag.NewContext(src.Name, src.Code,
				diag.Ranging{From: in.Offset, To: in.Offset + len(in.Code)}),
		}
	}
	r := e.Range().Shift(in.Offset)
	return &diag.Error{
		Type:    e.Type,
		Message: e.Message,
		Context: *diag.NewContext(src.Name, src.Code, r),
		Partial: r.From == len(src.Code),
	}
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// Converts parse and type errors into JSON.
func errorsToJSON(errs []*diag.Error) []byte {
	converted := lo.Map(errs, func(e *diag.Error, _ int) errorInJSON {
		return errorInJSON{e.Context.Name, e.Context.From, e.Context.To, e.Message}
	})
	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
