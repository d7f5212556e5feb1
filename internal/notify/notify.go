// Package notify reports review-session state to the surrounding
// Architect terminal over its Unix notification socket. Outside an
// Architect session the notifier is a silent no-op.
package notify

import (
	"encoding/json"
	"net"
	"os"
	"strconv"
)

// State is one of the session states Architect reacts to.
type State string

const (
	StateStart            State = "start"
	StateAwaitingApproval State = "awaiting_approval"
	StateDone             State = "done"
)

const (
	envSessionID  = "ARCHITECT_SESSION_ID"
	envNotifySock = "ARCHITECT_NOTIFY_SOCK"
)

type message struct {
	Session int    `json:"session"`
	State   string `json:"state"`
}

// Notifier sends newline-terminated JSON state messages for one
// session.
type Notifier struct {
	session  int
	sockPath string
}

// FromEnv builds a Notifier from the Architect environment. The second
// return is false when not running inside an Architect session.
func FromEnv() (Notifier, bool) {
	sock := os.Getenv(envNotifySock)
	sid, err := strconv.Atoi(os.Getenv(envSessionID))
	if sock == "" || err != nil {
		return Notifier{}, false
	}
	return Notifier{session: sid, sockPath: sock}, true
}

// Send writes one state message. Errors are returned for logging but
// callers treat delivery as best effort.
func (n Notifier) Send(state State) error {
	payload, err := json.Marshal(message{Session: n.session, State: string(state)})
	if err != nil {
		return err
	}
	payload = append(payload, '\n')

	conn, err := net.Dial("unix", n.sockPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Write(payload)
	return err
}
