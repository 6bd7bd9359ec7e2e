package types

// LinkState describes how a recorded link looks on disk right now.
type LinkState string

const (
	// LinkOK means the link exists and points at the recorded target.
	LinkOK LinkState = "ok"
	// LinkDrifted means something occupies the link path but it is not a
	// symlink to the recorded target.
	LinkDrifted LinkState = "drifted"
	// LinkMissing means nothing exists at the link path.
	LinkMissing LinkState = "missing"
	// LinkPendingRemoval means the link left the configuration and will be
	// removed by the next clean pass.
	LinkPendingRemoval LinkState = "pending-removal"
	// LinkUnrecorded means the link is configured but the lock file does not
	// know about it yet.
	LinkUnrecorded LinkState = "unrecorded"
)

// LinkStatus is one row of the status report.
type LinkStatus struct {
	Link   string    `json:"link"`
	Target string    `json:"target,omitempty"`
	Live   string    `json:"live,omitempty"`
	State  LinkState `json:"state"`
}
