// Package shell is the entry point for the terminal interface of Fur.
package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"src.fur.dev/pkg/logutil"
	"src.fur.dev/pkg/prog"
	"src.fur.dev/pkg/store"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		exit := script(
			fds, args, &scriptCfg{
				Cmd: f.CodeInArg, CompileOnly: f.CompileOnly, JSON: f.JSON})
		return prog.Exit(exit)
	}
	if f.CodeInArg {
		return prog.BadUsage("-c requires an argument")
	}

	rc := DefaultRC()
	if !f.NoRc {
		rc = loadRC(fds, f.RC)
	}

	cfg := &InteractConfig{Prompt: rc.Prompt, HistorySize: rc.HistorySize}
	if rc.History {
		st, err := openStore(f.DB, rc.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "History will not be saved.")
		} else {
			defer st.Close()
			cfg.Store = st
		}
	}
	Interact(fds, cfg)
	return nil
}

func loadRC(fds [3]*os.File, path string) RC {
	if path == "" {
		var err error
		path, err = RCPath()
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			return DefaultRC()
		}
	}
	rc, err := LoadRC(path)
	if err != nil {
		fmt.Fprintln(fds[2], "Warning:", err)
	}
	return rc
}

// Opens the history store. The path given by the -db flag takes precedence
// over the one in rc.yaml.
func openStore(flagDB, rcDB string) (store.DBStore, error) {
	path := flagDB
	if path == "" {
		path = rcDB
	}
	if path == "" {
		var err error
		path, err = DBPath()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, err
		}
	}
	logger.Println("opening history database", path)
	return store.NewStore(path)
}
