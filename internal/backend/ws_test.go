package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// ackServer upgrades connections and acknowledges every operation it
// reads.
func ackServer(t *testing.T, onOp func(Operation)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var op Operation
			if err := conn.ReadJSON(&op); err != nil {
				return
			}
			if onOp != nil {
				onOp(op)
			}
			if err := conn.WriteJSON(Ack{OpID: op.OpID, OK: true}); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestNotifyAndAck(t *testing.T) {
	var mu sync.Mutex
	var received []Operation
	srv := ackServer(t, func(op Operation) {
		mu.Lock()
		received = append(received, op)
		mu.Unlock()
	})

	acks := make(chan Ack, 4)
	client, err := Dial(context.Background(), wsURL(srv), WithAckHandler(func(a Ack) {
		acks <- a
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	op := NewOperation(OpSequenceEdit, "plasmid-1")
	op.Splices = []SpliceRecord{{Pos: 5, Removed: 3, Inserted: "ACG"}}
	client.Notify(op)

	select {
	case ack := <-acks:
		if ack.OpID != op.OpID || !ack.OK {
			t.Errorf("ack = %+v, want OK for %s", ack, op.OpID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for ack")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 || received[0].Kind != OpSequenceEdit {
		t.Errorf("server received %+v, want one sequence_edit", received)
	}
	if client.Sent() != 1 {
		t.Errorf("Sent() = %d, want 1", client.Sent())
	}
}

func TestOperationIDsAreUnique(t *testing.T) {
	a := NewOperation(OpAnnotationUpsert, "doc")
	b := NewOperation(OpAnnotationUpsert, "doc")
	if a.OpID == "" || a.OpID == b.OpID {
		t.Errorf("op ids not unique: %q vs %q", a.OpID, b.OpID)
	}
}

func TestNotifyAfterCloseDrops(t *testing.T) {
	srv := ackServer(t, nil)
	client, err := Dial(context.Background(), wsURL(srv))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	client.Notify(NewOperation(OpSessionClose, "doc"))
	if client.Dropped() == 0 {
		t.Error("Dropped() = 0 after notify on closed client")
	}
	// Close is idempotent.
	if err := client.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = NopNotifier{}
	n.Notify(NewOperation(OpSessionOpen, "doc"))
	if err := n.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := Dial(ctx, "ws://127.0.0.1:1/nope"); err == nil {
		t.Error("Dial() to dead address succeeded")
	}
}
