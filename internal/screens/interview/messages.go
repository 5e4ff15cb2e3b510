package interview

import (
	drv "github.com/abhisek/courtside/internal/interview"
)

// replyMsg carries a finished round trip back to the screen that sent it.
// driver identifies the owning interview so replies for a closed screen
// are never applied to a new one.
type replyMsg struct {
	driver *drv.Driver
	reply  drv.Reply
}
