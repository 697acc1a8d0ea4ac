package session

// State is the lifecycle state of a Session.
type State int

const (
	Idle State = iota
	ChoosingProfile
	Connecting
	AwaitingCredential
	Reconciling
	Reviewing
	Syncing
	Done
	Failed
)

var stateNames = [...]string{
	Idle:               "idle",
	ChoosingProfile:    "choosing-profile",
	Connecting:         "connecting",
	AwaitingCredential: "awaiting-credential",
	Reconciling:        "reconciling",
	Reviewing:          "reviewing",
	Syncing:            "syncing",
	Done:               "done",
	Failed:             "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether s ends a session attempt. Terminal states return
// to Idle on Restart.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// Busy reports whether background engine work is in flight in state s.
func (s State) Busy() bool {
	switch s {
	case Connecting, AwaitingCredential, Reconciling, Syncing:
		return true
	}
	return false
}

var transitions = map[State][]State{
	Idle:               {ChoosingProfile, Connecting},
	ChoosingProfile:    {Idle},
	Connecting:         {AwaitingCredential, Reconciling, Failed},
	AwaitingCredential: {Connecting, Failed},
	Reconciling:        {Reviewing, Failed},
	Reviewing:          {Syncing, Reconciling},
	Syncing:            {Done, Failed},
	Done:               {Idle},
	Failed:             {Idle},
}

func (s State) canTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
