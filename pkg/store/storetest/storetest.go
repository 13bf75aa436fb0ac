// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.fur.dev/pkg/store/storedefs"
)

var (
	cmds     = []string{"1 + 2", "sole : Trivial", "Int : U(0)", "1 + 2 : Int"}
	wantCmds = []storedefs.Cmd{
		{Text: cmds[0], Seq: 1},
		{Text: cmds[1], Seq: 2},
		{Text: cmds[2], Seq: 3},
		{Text: cmds[3], Seq: 4},
	}
)

// TestCmd tests the command history functionality of a Store. The Store must
// be empty.
func TestCmd(t *testing.T, store storedefs.Store) {
	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, nil",
			startSeq, err, 1)
	}

	// AddCmd
	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%v) -> %v, %v, want %v, nil",
				cmd, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, nil",
			endSeq, err, wantedEndSeq)
	}

	// CmdsWithSeq
	for _, test := range []struct {
		from, upto int
		want       []storedefs.Cmd
	}{
		{0, -1, nil},
		{0, 1, nil},
		{-5, 3, wantCmds[:2]},
		{1, 5, wantCmds},
		{2, 4, wantCmds[1:3]},
		{1, 100, wantCmds},
		{5, 100, nil},
	} {
		got, err := store.CmdsWithSeq(test.from, test.upto)
		if err != nil {
			t.Errorf("store.CmdsWithSeq(%v, %v) error: %v", test.from, test.upto, err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("store.CmdsWithSeq(%v, %v) (-want +got):\n%s",
				test.from, test.upto, diff)
		}
	}

	// Cmd
	for i, wantCmd := range cmds {
		seq := i + startSeq
		cmd, err := store.Cmd(seq)
		if cmd != wantCmd || err != nil {
			t.Errorf("store.Cmd(%v) -> %v, %v, want %v, nil",
				seq, cmd, err, wantCmd)
		}
	}
	for _, seq := range []int{0, -1, endSeq} {
		if _, err := store.Cmd(seq); err != storedefs.ErrNoMatchingCmd {
			t.Errorf("store.Cmd(%v) returns error %v, want ErrNoMatchingCmd", seq, err)
		}
	}

	// NextCmd and PrevCmd
	for _, test := range []struct {
		name   string
		f      func(int, string) (storedefs.Cmd, error)
		seq    int
		prefix string
		want   storedefs.Cmd
		err    error
	}{
		{"NextCmd", store.NextCmd, 1, "1 + 2", wantCmds[0], nil},
		{"NextCmd", store.NextCmd, 2, "1 + 2", wantCmds[3], nil},
		{"NextCmd", store.NextCmd, -1, "sole", wantCmds[1], nil},
		{"NextCmd", store.NextCmd, 5, "", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
		{"NextCmd", store.NextCmd, 1, "x", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
		{"PrevCmd", store.PrevCmd, 5, "", wantCmds[3], nil},
		{"PrevCmd", store.PrevCmd, 100, "Int", wantCmds[2], nil},
		{"PrevCmd", store.PrevCmd, 4, "1 + 2", wantCmds[0], nil},
		{"PrevCmd", store.PrevCmd, 1, "", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
		{"PrevCmd", store.PrevCmd, 0, "", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
	} {
		cmd, err := test.f(test.seq, test.prefix)
		if cmd != test.want || err != test.err {
			t.Errorf("store.%s(%v, %q) -> (%v, %v), want (%v, %v)",
				test.name, test.seq, test.prefix, cmd, err, test.want, test.err)
		}
	}

	// DelCmd
	if err := store.DelCmd(2); err != nil {
		t.Errorf("store.DelCmd(2) error: %v", err)
	}
	if _, err := store.Cmd(2); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(2) after deletion returns error %v", err)
	}
	if err := store.DelCmd(2); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.DelCmd(2) twice returns error %v, want ErrNoMatchingCmd", err)
	}
	got, _ := store.CmdsWithSeq(1, 100)
	want := []storedefs.Cmd{wantCmds[0], wantCmds[2], wantCmds[3]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("store.CmdsWithSeq after deletion (-want +got):\n%s", diff)
	}
	// Sequence numbers are never reused.
	if seq, _ := store.AddCmd("x"); seq != endSeq {
		t.Errorf("store.AddCmd after deletion -> %v, want %v", seq, endSeq)
	}
}
