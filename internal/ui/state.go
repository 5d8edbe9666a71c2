package ui

// TxnState is the state of the transaction machine.
type TxnState int

// Transaction states. StateIdle is the initial state and the only state
// reachable after a terminal state.
const (
	StateIdle TxnState = iota
	StateCardPresented
	StateAuthenticating
	StateAuthFailed
	StateAuthenticated
	StateArticleSelection
	StateQuantityEntry
	StateConfirm
	StateSubmitting
	StateSuccess
	StateSubmitFailed
)

// String returns a human readable state name.
func (s TxnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCardPresented:
		return "card presented"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthFailed:
		return "auth failed"
	case StateAuthenticated:
		return "authenticated"
	case StateArticleSelection:
		return "article selection"
	case StateQuantityEntry:
		return "quantity entry"
	case StateConfirm:
		return "confirm"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateSubmitFailed:
		return "submit failed"
	default:
		return "unknown"
	}
}

// terminal reports whether s is a terminal display state that auto-returns
// to idle after the display hold period.
func (s TxnState) terminal() bool {
	return s == StateAuthFailed || s == StateSuccess || s == StateSubmitFailed
}
