package api

import (
	"strings"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/models"
)

// Op identifies a mutating API call for outcome classification
type Op int

const (
	OpRegister Op = iota
	OpLogin
	OpCreateHabit
	OpDeleteHabit
	OpLogHabit
	OpLogSleep
)

func (o Op) String() string {
	switch o {
	case OpRegister:
		return "register"
	case OpLogin:
		return "login"
	case OpCreateHabit:
		return "create-habit"
	case OpDeleteHabit:
		return "delete-habit"
	case OpLogHabit:
		return "log-habit"
	case OpLogSleep:
		return "log-sleep"
	default:
		return "unknown"
	}
}

// Kind is the structured result of a mutation
type Kind int

const (
	// Rejected covers every message the client does not recognize
	Rejected Kind = iota
	Success
	// AlreadyLogged is the known conflict for a second check-off on the same day
	AlreadyLogged
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case AlreadyLogged:
		return "already-logged"
	default:
		return "rejected"
	}
}

// Outcome is what callers branch on instead of raw server text
type Outcome struct {
	Op       Op
	Kind     Kind
	Message  string
	Response models.MessageResponse
}

// OK reports whether the mutation took effect
func (o Outcome) OK() bool {
	return o.Kind == Success
}

// Classify maps a server message to a Kind. The server only signals outcomes
// through human-readable text, so this is the one place that text is matched.
func Classify(op Op, message string) Kind {
	switch op {
	case OpRegister:
		if message == constants.MsgRegistrationSuccessful {
			return Success
		}
	case OpLogin:
		if message == constants.MsgLoginSuccessful {
			return Success
		}
	case OpCreateHabit:
		if strings.Contains(message, constants.MsgCreatedSuccessfully) {
			return Success
		}
	case OpDeleteHabit:
		if strings.Contains(message, constants.MsgDeletedSuccessfully) {
			return Success
		}
	case OpLogHabit:
		if strings.Contains(message, constants.MsgLoggedSuccessfully) {
			return Success
		}
		if strings.Contains(message, constants.MsgAlreadyLoggedToday) {
			return AlreadyLogged
		}
	case OpLogSleep:
		if strings.Contains(message, constants.MsgLoggedSuccessfully) {
			return Success
		}
	}
	return Rejected
}
