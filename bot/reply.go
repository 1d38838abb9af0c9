// Package bot implements the command handlers of the payment
// verification bot. Handlers speak in terms of the roster store and
// produce typed replies; the telebot adapter in this package renders
// them and registers the routes.
package bot

// ReplyKind classifies the outcome of a command.
type ReplyKind int

const (
	// ReplyOK is a successful operation.
	ReplyOK ReplyKind = iota
	// ReplyAccessDenied rejects a caller without the required role.
	ReplyAccessDenied
	// ReplyUsage explains the expected arguments.
	ReplyUsage
	// ReplyNotFound reports a missing roster entry or payment identifier.
	ReplyNotFound
	// ReplyConflict reports an attempt to add an already registered admin.
	ReplyConflict
	// ReplyBlocked protects the owner from removal and demotion.
	ReplyBlocked
	// ReplyNoChange reports an idempotent promote or demote.
	ReplyNoChange
	// ReplyFailure is the generic answer for internal errors.
	ReplyFailure
)

// String returns the snake_case kind name used in logs.
func (k ReplyKind) String() string {
	switch k {
	case ReplyOK:
		return "ok"
	case ReplyAccessDenied:
		return "access_denied"
	case ReplyUsage:
		return "usage"
	case ReplyNotFound:
		return "not_found"
	case ReplyConflict:
		return "conflict"
	case ReplyBlocked:
		return "blocked"
	case ReplyNoChange:
		return "no_change"
	case ReplyFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Reply is the structured outcome of a command handler. Text is ready to
// send HTML; JoinURL, when set, is rendered as a single inline URL button.
type Reply struct {
	Kind    ReplyKind
	Text    string
	JoinURL string
}
