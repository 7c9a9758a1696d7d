package session

// Action tells the view layer what to do with a route
type Action int

const (
	// Render shows the requested view
	Render Action = iota
	// Placeholder shows a neutral loading view, no navigation
	Placeholder
	// Redirect navigates to Decision.Target
	Redirect
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case Placeholder:
		return "placeholder"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the guard verdict for a navigation attempt
type Decision struct {
	Action Action
	Target string
}

// Protected guards routes that require a session. The decision switches
// on the state tag alone so a stale user value can never leak a render
// or a redirect while verification is still pending.
func Protected(snap Snapshot, loginTarget string) Decision {
	switch snap.State {
	case Authenticated:
		return Decision{Action: Render}
	case Initializing:
		return Decision{Action: Placeholder}
	default:
		return Decision{Action: Redirect, Target: loginTarget}
	}
}

// Public guards routes meant for logged out users, sending an active
// session to the home view instead.
func Public(snap Snapshot, homeTarget string) Decision {
	switch snap.State {
	case Authenticated:
		return Decision{Action: Redirect, Target: homeTarget}
	case Initializing:
		return Decision{Action: Placeholder}
	default:
		return Decision{Action: Render}
	}
}
