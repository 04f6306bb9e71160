package ws

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func recv(t *testing.T, c *Client, want string) {
	t.Helper()
	select {
	case got, ok := <-c.Send:
		if !ok {
			t.Fatalf("%s: channel closed", c.ID)
		}
		if string(got) != want {
			t.Fatalf("%s got %q want %q", c.ID, got, want)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting %s", c.ID)
	}
}

func nothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case got := <-c.Send:
		t.Fatalf("%s unexpected %q", c.ID, got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Broadcast(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	c1 := &Client{PlayerID: "p1", Send: make(chan []byte, 1)}
	c2 := &Client{Send: make(chan []byte, 1)}
	h.Register(c1)
	h.Register(c2)

	h.Broadcast([]byte("hello"))

	recv(t, c1, "hello")
	recv(t, c2, "hello")
}

func TestHub_PublishRoutesByPlayer(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	p1 := &Client{ID: "a", PlayerID: "p1", Send: make(chan []byte, 1)}
	p2 := &Client{ID: "b", PlayerID: "p2", Send: make(chan []byte, 1)}
	all := &Client{ID: "gestor", Send: make(chan []byte, 1)}
	h.Register(p1)
	h.Register(p2)
	h.Register(all)

	h.Publish("p1", []byte(`{"player_id":"p1"}`))

	recv(t, p1, `{"player_id":"p1"}`)
	recv(t, all, `{"player_id":"p1"}`)
	nothing(t, p2)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	// buffer cheio: o próximo envio não cabe
	slow := &Client{ID: "slow", Send: make(chan []byte, 1)}
	slow.Send <- []byte("pendente")
	h.Register(slow)
	h.Broadcast([]byte("x"))

	require.Eventually(t, func() bool { return h.Count() == 0 }, time.Second, 5*time.Millisecond)

	got, ok := <-slow.Send
	require.True(t, ok)
	require.Equal(t, "pendente", string(got))
	_, ok = <-slow.Send
	require.False(t, ok, "expected closed channel")
}

func TestHub_SendToClientAndUnregister(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	c := &Client{Send: make(chan []byte, 1)}
	h.Register(c) // Register é síncrono: ID já atribuído ao retornar
	h.SendToClient(c.ID, []byte("oi"))
	recv(t, c, "oi")

	h.Unregister(c)
	// Unregister só garante a entrega ao loop; espera o canal fechar
	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("unregister did not close channel")
	}
}
