package session

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dshills/seqstorm/internal/backend"
	"github.com/dshills/seqstorm/internal/engine"
	"github.com/dshills/seqstorm/internal/engine/coord"
	"github.com/dshills/seqstorm/internal/event"
	"github.com/dshills/seqstorm/internal/io/fasta"
)

// recordingNotifier captures mirrored operations.
type recordingNotifier struct {
	mu  sync.Mutex
	ops []backend.Operation
}

func (n *recordingNotifier) Notify(op backend.Operation) {
	n.mu.Lock()
	n.ops = append(n.ops, op)
	n.mu.Unlock()
}

func (n *recordingNotifier) Close() error { return nil }

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.ops))
	for i, op := range n.ops {
		out[i] = op.Kind
	}
	return out
}

func newTestSession(t *testing.T, text string) (*Session, *recordingNotifier, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	notifier := &recordingNotifier{}
	s, err := Open(context.Background(), "plasmid-1", text,
		WithBus(bus),
		WithNotifier(notifier),
	)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, notifier, bus
}

func TestOpenMirrorsSession(t *testing.T) {
	_, notifier, _ := newTestSession(t, "ACGTACGT")
	kinds := notifier.kinds()
	if len(kinds) != 1 || kinds[0] != backend.OpSessionOpen {
		t.Errorf("mirrored ops = %v, want [session_open]", kinds)
	}
}

func TestInsertPublishesAndMirrors(t *testing.T) {
	s, notifier, bus := newTestSession(t, "ACGTACGT")
	var edits []event.SequenceEdited
	_, err := bus.SubscribeFunc(event.TopicSequenceEdited, func(_ context.Context, ev any) error {
		edits = append(edits, ev.(event.SequenceEdited))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	cs, err := s.Insert(context.Background(), 4, "GGG")
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if len(edits) != 1 || edits[0].Delta != 3 || edits[0].Revision != cs.Revision {
		t.Errorf("edit events = %+v", edits)
	}

	ops := notifier.kinds()
	if len(ops) != 2 || ops[1] != backend.OpSequenceEdit {
		t.Fatalf("mirrored ops = %v, want session_open then sequence_edit", ops)
	}
	notifier.mu.Lock()
	edit := notifier.ops[1]
	notifier.mu.Unlock()
	if len(edit.Splices) != 1 || edit.Splices[0].Inserted != "GGG" || edit.Splices[0].Pos != 4 {
		t.Errorf("mirrored splices = %+v", edit.Splices)
	}
	if edit.OpID == "" {
		t.Error("mirrored op has no id")
	}
}

func TestSelectTokens(t *testing.T) {
	s, _, _ := newTestSession(t, "ACGTACGTACGTACGTACGT")
	ctx := context.Background()

	// Span notation.
	if err := s.Select(ctx, "2..8"); err != nil {
		t.Fatalf("Select(span) error = %v", err)
	}
	if sel := s.Engine().Selection(); len(sel) != 1 || sel[0].Start != 2 || sel[0].End != 8 {
		t.Errorf("Selection() = %v", sel)
	}

	// Annotation token.
	span, err := coord.ParseSpan("10..14")
	if err != nil {
		t.Fatal(err)
	}
	a, err := s.AddAnnotation(ctx, engine.AnnotationSpec{Caption: "gene", Span: span})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Select(ctx, AnnotationTokenPrefix+a.ID); err != nil {
		t.Fatalf("Select(annotation) error = %v", err)
	}
	if sel := s.Engine().Selection(); len(sel) != 1 || sel[0].Start != 10 {
		t.Errorf("Selection() = %v", sel)
	}

	// Unknown annotation fails and keeps the selection.
	if err := s.Select(ctx, "a:missing"); err == nil {
		t.Error("Select(a:missing) succeeded")
	}
	if sel := s.Engine().Selection(); len(sel) != 1 || sel[0].Start != 10 {
		t.Errorf("Selection() changed after failed select: %v", sel)
	}

	// Empty token clears.
	if err := s.Select(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if sel := s.Engine().Selection(); sel != nil {
		t.Errorf("Selection() = %v after clear", sel)
	}
}

func TestAnnotationLifecycleEvents(t *testing.T) {
	s, notifier, bus := newTestSession(t, "ACGTACGTACGTACGTACGT")
	ctx := context.Background()
	var topics []event.Topic
	_, _ = bus.SubscribeFunc("annotation.**", func(_ context.Context, ev any) error {
		topics = append(topics, ev.(event.TopicProvider).EventTopic())
		return nil
	})

	span, _ := coord.ParseSpan("2..8")
	a, err := s.AddAnnotation(ctx, engine.AnnotationSpec{Caption: "gene", Span: span})
	if err != nil {
		t.Fatal(err)
	}
	span2, _ := coord.ParseSpan("3..9")
	if err := s.UpdateAnnotation(ctx, a.ID, engine.AnnotationSpec{Caption: "gene", Span: span2}); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveAnnotation(ctx, a.ID); err != nil {
		t.Fatal(err)
	}

	want := []event.Topic{event.TopicAnnotationCreated, event.TopicAnnotationMutated, event.TopicAnnotationRemoved}
	if len(topics) != len(want) {
		t.Fatalf("topics = %v, want %v", topics, want)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Errorf("topics[%d] = %v, want %v", i, topics[i], want[i])
		}
	}

	kinds := notifier.kinds()
	// session_open, upsert, upsert, delete.
	if len(kinds) != 4 || kinds[3] != backend.OpAnnotationDelete {
		t.Errorf("mirrored ops = %v", kinds)
	}
}

func TestEditMutatesAnnotationEvent(t *testing.T) {
	s, _, bus := newTestSession(t, "ACGTACGTACGTACGTACGT")
	ctx := context.Background()
	span, _ := coord.ParseSpan("10..16")
	if _, err := s.AddAnnotation(ctx, engine.AnnotationSpec{Caption: "gene", Span: span}); err != nil {
		t.Fatal(err)
	}

	var mutated []event.AnnotationChanged
	_, _ = bus.SubscribeFunc(event.TopicAnnotationMutated, func(_ context.Context, ev any) error {
		mutated = append(mutated, ev.(event.AnnotationChanged))
		return nil
	})

	if _, err := s.DeleteRange(ctx, 0, 4); err != nil {
		t.Fatal(err)
	}
	if len(mutated) != 1 || mutated[0].Span.String() != "6..12" {
		t.Errorf("mutated events = %+v, want span 6..12", mutated)
	}
}

func TestUndoPublishesHistory(t *testing.T) {
	s, _, bus := newTestSession(t, "ACGTACGT")
	ctx := context.Background()
	var history []event.HistoryApplied
	_, _ = bus.SubscribeFunc("history.*", func(_ context.Context, ev any) error {
		history = append(history, ev.(event.HistoryApplied))
		return nil
	})

	if _, err := s.Insert(ctx, 0, "TT"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Redo(ctx); err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[0].Redo || !history[1].Redo {
		t.Errorf("history events = %+v, want undo then redo", history)
	}
	if got := s.Engine().Text(); got != "TTACGTACGT" {
		t.Errorf("Text() = %q", got)
	}
}

func TestOpenFileAndSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.fa")
	if err := fasta.WriteFile(in, []fasta.Record{{Name: "vec", Sequence: "ACGTACGT"}}, 0); err != nil {
		t.Fatal(err)
	}

	s, err := OpenFile(context.Background(), in)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if s.Name() != "vec" || s.Engine().Len() != 8 {
		t.Errorf("session = %q len %d", s.Name(), s.Engine().Len())
	}

	out := filepath.Join(dir, "out.fa")
	if err := s.SaveFASTA(out); err != nil {
		t.Fatalf("SaveFASTA() error = %v", err)
	}
	rec, err := fasta.ReadOne(out)
	if err != nil || rec.Sequence != "ACGTACGT" {
		t.Errorf("round trip = %+v, %v", rec, err)
	}
}

func TestCloseMirrors(t *testing.T) {
	s, notifier, _ := newTestSession(t, "ACGT")
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	kinds := notifier.kinds()
	if kinds[len(kinds)-1] != backend.OpSessionClose {
		t.Errorf("mirrored ops = %v, want session_close last", kinds)
	}
}
