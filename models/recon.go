package models

// Action is the propagation proposed for one reconciliation item.
type Action int

const (
	// LeftToRight copies the RootA version over RootB.
	LeftToRight Action = iota + 1
	// RightToLeft copies the RootB version over RootA.
	RightToLeft
	// DeleteLeft removes the file from RootA (it was deleted on RootB).
	DeleteLeft
	// DeleteRight removes the file from RootB (it was deleted on RootA).
	DeleteRight
	// Conflict marks a path changed differently on both sides. Conflicts are
	// never propagated.
	Conflict
)

// String returns the arrow notation shown in the item table.
func (a Action) String() string {
	switch a {
	case LeftToRight:
		return "---->"
	case RightToLeft:
		return "<----"
	case DeleteLeft:
		return "<-del"
	case DeleteRight:
		return "del->"
	case Conflict:
		return "<-?->"
	default:
		return "?????"
	}
}

// Propagates reports whether applying the action changes a replica.
func (a Action) Propagates() bool {
	return a >= LeftToRight && a <= DeleteRight
}

// ReconItem is one detected difference between the two replicas.
//
// Items are produced by the engine and shared by pointer with the session's
// item table, so a change to Ignored made through the table is seen by the
// engine on the next read.
type ReconItem struct {
	// Index is the position of the item in its list; the display layer
	// addresses items only by this value.
	Index int `json:"index"`

	Path   string `json:"path"`
	Action Action `json:"action"`

	// Left, Right and Base are the RootA, RootB and last-synchronized states.
	// A nil state means the file is absent on that side.
	Left  *FileState `json:"left,omitempty"`
	Right *FileState `json:"right,omitempty"`
	Base  *FileState `json:"base,omitempty"`

	// Summary is the one-line row text.
	Summary string `json:"summary"`

	// Detail is the multi-line description shown for the selected row.
	Detail string `json:"detail"`

	// Ignored excludes the item from the next sync step.
	Ignored bool `json:"ignored"`
}
