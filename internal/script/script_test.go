package script

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/seqstorm/internal/io/fasta"
	"github.com/dshills/seqstorm/internal/session"
)

func newTestRunner(t *testing.T, text string) (*Runner, *session.Session) {
	t.Helper()
	ctx := context.Background()
	sess, err := session.Open(ctx, "test", text)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(ctx, sess)
	t.Cleanup(r.Close)
	return r, sess
}

func TestScriptEdits(t *testing.T) {
	r, sess := newTestRunner(t, "ACGTACGTACGT")

	script := `
seq.select("4..8")
seq.replace("TTTT")
seq.insert(0, "GG")
`
	if err := r.RunString(script); err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
	if got := sess.Engine().Text(); got != "GGACGTTTTTACGT" {
		t.Errorf("Text() = %q, want %q", got, "GGACGTTTTTACGT")
	}
}

func TestScriptQueries(t *testing.T) {
	r, _ := newTestRunner(t, "ACGTACGT")

	script := `
if seq.len() ~= 8 then error("len") end
if seq.text(0, 4) ~= "ACGT" then error("text") end
if seq.selection() ~= nil then error("selection not nil") end
seq.select("2..6")
if seq.selection() ~= "2..6" then error("selection: " .. tostring(seq.selection())) end
`
	if err := r.RunString(script); err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
}

func TestScriptAnnotations(t *testing.T) {
	r, sess := newTestRunner(t, "ATGCATGCAT")

	script := `
id = seq.annotate("rev feature", "cds", "(2..6)")
if seq.feature(id) ~= "ATGC" then error("feature text: " .. seq.feature(id)) end
anns = seq.annotations()
if #anns ~= 1 then error("count") end
if anns[1].span ~= "(2..6)" then error("span: " .. anns[1].span) end
seq.select("a:" .. id)
`
	if err := r.RunString(script); err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
	if sel := sess.Engine().Selection(); len(sel) != 1 || sel[0].Start != 2 {
		t.Errorf("Selection() = %v", sel)
	}
}

func TestScriptUndo(t *testing.T) {
	r, sess := newTestRunner(t, "ACGT")
	script := `
seq.insert(4, "TTTT")
seq.undo()
`
	if err := r.RunString(script); err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
	if got := sess.Engine().Text(); got != "ACGT" {
		t.Errorf("Text() = %q after undo, want ACGT", got)
	}
}

func TestScriptErrorsSurface(t *testing.T) {
	r, _ := newTestRunner(t, "ACGT")
	err := r.RunString(`seq.insert(99, "A")`)
	if err == nil || !strings.Contains(err.Error(), "insert") {
		t.Errorf("RunString() error = %v, want insert failure", err)
	}
}

func TestSandboxBlocksLoaders(t *testing.T) {
	r, _ := newTestRunner(t, "ACGT")
	for _, fn := range []string{"dofile", "loadfile", "load", "loadstring"} {
		if err := r.RunString(`if ` + fn + ` ~= nil then error("present") end`); err != nil {
			t.Errorf("%s still available: %v", fn, err)
		}
	}
}

func TestRunFile(t *testing.T) {
	r, sess := newTestRunner(t, "ACGT")
	dir := t.TempDir()
	out := filepath.Join(dir, "out.fa")
	path := filepath.Join(dir, "edit.lua")
	script := `seq.insert(0, "GG")` + "\n" + `seq.save("` + out + `")` + "\n"
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := r.RunFile(path); err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}
	if sess.Engine().Text() != "GGACGT" {
		t.Errorf("Text() = %q", sess.Engine().Text())
	}
	rec, err := fasta.ReadOne(out)
	if err != nil || rec.Sequence != "GGACGT" {
		t.Errorf("saved record = %+v, %v", rec, err)
	}
}
