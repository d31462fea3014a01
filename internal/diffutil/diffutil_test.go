package diffutil

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func TestLines(t *testing.T) {
	before := "Mod1+q\tquit\nMod4+Return\tspawn\txterm\nMod4+d\tspawn\tdmenu_run\n"
	after := "Mod1+q\tquit\nMod4+Return\tspawn\turxvt\nMod4+d\tspawn\tdmenu_run\nMod4+l\tspawn\txlock\n"

	r := Lines(before, after)
	if r.Inserted != 2 || r.Deleted != 1 {
		t.Fatalf("Inserted=%d Deleted=%d, want 2 and 1", r.Inserted, r.Deleted)
	}
	if !r.Changed() {
		t.Error("Changed() = false")
	}

	want := "- Mod4+Return\tspawn\txterm\n+ Mod4+Return\tspawn\turxvt\n+ Mod4+l\tspawn\txlock\n"
	if got := r.Changes(); got != want {
		t.Errorf("Changes() = %q, want %q", got, want)
	}

	equal := 0
	for _, l := range r.Lines {
		if l.Type == diffmatchpatch.DiffEqual {
			equal++
		}
	}
	if equal != 2 {
		t.Errorf("%d unchanged lines, want 2", equal)
	}
}

func TestLinesUnchanged(t *testing.T) {
	listing := "a\ttrue\nb\ttrue\n"
	r := Lines(listing, listing)
	if r.Changed() || r.Changes() != "" {
		t.Errorf("identical listings reported a change: %+v", r)
	}
	if len(r.Lines) != 2 {
		t.Errorf("Lines = %+v, want 2 entries", r.Lines)
	}
}

func TestLinesFromEmpty(t *testing.T) {
	r := Lines("", "a\ttrue\n")
	if r.Inserted != 1 || r.Deleted != 0 {
		t.Errorf("Inserted=%d Deleted=%d, want 1 and 0", r.Inserted, r.Deleted)
	}
	if got := Lines("", ""); got.Changed() || len(got.Lines) != 0 {
		t.Errorf("empty diff = %+v", got)
	}
}
