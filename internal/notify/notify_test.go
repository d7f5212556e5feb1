package notify

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
)

func TestSendWritesJSONLine(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "notify.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		line, _ := bufio.NewReader(conn).ReadString('\n')
		received <- line
	}()

	n := Notifier{session: 7, sockPath: sock}
	if err := n.Send(StateAwaitingApproval); err != nil {
		t.Fatalf("send: %v", err)
	}

	line := <-received
	var msg struct {
		Session int    `json:"session"`
		State   string `json:"state"`
	}
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		t.Fatalf("bad payload %q: %v", line, err)
	}
	if msg.Session != 7 || msg.State != "awaiting_approval" {
		t.Fatalf("payload = %+v", msg)
	}
}

func TestFromEnvRequiresBothVariables(t *testing.T) {
	t.Setenv(envSessionID, "")
	t.Setenv(envNotifySock, "")
	if _, ok := FromEnv(); ok {
		t.Fatal("expected no notifier without env")
	}

	t.Setenv(envSessionID, "3")
	t.Setenv(envNotifySock, "/tmp/x.sock")
	n, ok := FromEnv()
	if !ok || n.session != 3 {
		t.Fatalf("FromEnv = (%+v, %v)", n, ok)
	}

	t.Setenv(envSessionID, "not-a-number")
	if _, ok := FromEnv(); ok {
		t.Fatal("expected no notifier with malformed session id")
	}
}
