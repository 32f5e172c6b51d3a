// Package script embeds a Lua interpreter for batch sequence editing.
// Scripts drive a session through the global "seq" module:
//
//	seq.len()                         -> sequence length
//	seq.text(start, end)              -> residues in [start, end)
//	seq.select(token)                 -> selection token ("5..10", "a:<id>", "")
//	seq.insert(pos, text)
//	seq.delete()                      -> delete the selection
//	seq.replace(text)                 -> replace the selection
//	seq.undo() / seq.redo()
//	seq.annotate(caption, type, span) -> annotation id
//	seq.annotations()                 -> array of {id, caption, type, span}
//	seq.feature(id)                   -> the text the feature reads
//	seq.save(path)                    -> write a FASTA file
package script

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/seqstorm/internal/engine"
	"github.com/dshills/seqstorm/internal/engine/coord"
	"github.com/dshills/seqstorm/internal/session"
)

// Runner executes Lua scripts against one session. Not safe for
// concurrent use; scripts run one at a time.
type Runner struct {
	sess *session.Session
	L    *lua.LState
	ctx  context.Context
}

// NewRunner creates a runner bound to the session.
func NewRunner(ctx context.Context, sess *session.Session) *Runner {
	L := lua.NewState()
	L.SetContext(ctx)
	r := &Runner{sess: sess, L: L, ctx: ctx}
	r.sandbox()
	r.installSeqModule()
	return r
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.L.Close()
}

// RunString executes Lua source.
func (r *Runner) RunString(src string) error {
	if err := r.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunFile executes the Lua file at path.
func (r *Runner) RunFile(path string) error {
	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// sandbox removes script access to arbitrary code loading. File and
// process access stay available; batch scripts legitimately read and
// write files.
func (r *Runner) sandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		r.L.SetGlobal(name, lua.LNil)
	}
}

// installSeqModule registers the "seq" global table.
func (r *Runner) installSeqModule() {
	mod := r.L.NewTable()
	funcs := map[string]lua.LGFunction{
		"len":         r.luaLen,
		"text":        r.luaText,
		"select":      r.luaSelect,
		"selection":   r.luaSelection,
		"insert":      r.luaInsert,
		"delete":      r.luaDelete,
		"replace":     r.luaReplace,
		"undo":        r.luaUndo,
		"redo":        r.luaRedo,
		"annotate":    r.luaAnnotate,
		"annotations": r.luaAnnotations,
		"feature":     r.luaFeature,
		"save":        r.luaSave,
	}
	r.L.SetFuncs(mod, funcs)
	r.L.SetGlobal("seq", mod)
}

func (r *Runner) luaLen(L *lua.LState) int {
	L.Push(lua.LNumber(r.sess.Engine().Len()))
	return 1
}

func (r *Runner) luaText(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)
	text, err := r.sess.Engine().TextRange(start, end)
	if err != nil {
		L.RaiseError("text(%d, %d): %v", start, end, err)
		return 0
	}
	L.Push(lua.LString(text))
	return 1
}

func (r *Runner) luaSelect(L *lua.LState) int {
	token := L.CheckString(1)
	if err := r.sess.Select(r.ctx, token); err != nil {
		L.RaiseError("select(%q): %v", token, err)
	}
	return 0
}

func (r *Runner) luaSelection(L *lua.LState) int {
	ranges := r.sess.Engine().Selection()
	if ranges == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(coord.Span(ranges).String()))
	return 1
}

func (r *Runner) luaInsert(L *lua.LState) int {
	pos := L.CheckInt(1)
	text := L.CheckString(2)
	if _, err := r.sess.Insert(r.ctx, pos, text); err != nil {
		L.RaiseError("insert(%d): %v", pos, err)
	}
	return 0
}

func (r *Runner) luaDelete(L *lua.LState) int {
	if _, err := r.sess.DeleteSelection(r.ctx); err != nil {
		L.RaiseError("delete: %v", err)
	}
	return 0
}

func (r *Runner) luaReplace(L *lua.LState) int {
	text := L.CheckString(1)
	if _, err := r.sess.Replace(r.ctx, text); err != nil {
		L.RaiseError("replace: %v", err)
	}
	return 0
}

func (r *Runner) luaUndo(L *lua.LState) int {
	if _, err := r.sess.Undo(r.ctx); err != nil {
		L.RaiseError("undo: %v", err)
	}
	return 0
}

func (r *Runner) luaRedo(L *lua.LState) int {
	if _, err := r.sess.Redo(r.ctx); err != nil {
		L.RaiseError("redo: %v", err)
	}
	return 0
}

func (r *Runner) luaAnnotate(L *lua.LState) int {
	caption := L.CheckString(1)
	typ := L.CheckString(2)
	spanText := L.CheckString(3)

	span, err := coord.ParseSpan(spanText)
	if err != nil {
		L.RaiseError("annotate: bad span %q: %v", spanText, err)
		return 0
	}
	a, err := r.sess.AddAnnotation(r.ctx, engine.AnnotationSpec{
		Caption: caption,
		Type:    typ,
		Span:    span,
	})
	if err != nil {
		L.RaiseError("annotate: %v", err)
		return 0
	}
	L.Push(lua.LString(a.ID))
	return 1
}

func (r *Runner) luaAnnotations(L *lua.LState) int {
	out := L.NewTable()
	for _, a := range r.sess.Engine().Annotations() {
		entry := L.NewTable()
		entry.RawSetString("id", lua.LString(a.ID))
		entry.RawSetString("caption", lua.LString(a.Caption))
		entry.RawSetString("type", lua.LString(a.Type))
		entry.RawSetString("span", lua.LString(a.Span.String()))
		out.Append(entry)
	}
	L.Push(out)
	return 1
}

func (r *Runner) luaFeature(L *lua.LState) int {
	id := L.CheckString(1)
	text, err := r.sess.Engine().FeatureText(id)
	if err != nil {
		L.RaiseError("feature(%q): %v", id, err)
		return 0
	}
	L.Push(lua.LString(text))
	return 1
}

func (r *Runner) luaSave(L *lua.LState) int {
	path := L.CheckString(1)
	if err := r.sess.SaveFASTA(path); err != nil {
		L.RaiseError("save(%q): %v", path, err)
	}
	return 0
}
