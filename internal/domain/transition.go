package domain

import "fmt"

var (
	// ErrInvalidStatus неизвестный статус записи
	ErrInvalidStatus = fmt.Errorf("%w: invalid appointment status", ErrBadRequest)

	// ErrUnknownAction неизвестное действие над записью
	ErrUnknownAction = fmt.Errorf("%w: unknown appointment action", ErrBadRequest)
)

// Action действие над записью, меняющее её статус
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCheckIn  Action = "check-in"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionNoShow   Action = "no-show"
)

// Transition допустимые исходные статусы и целевой статус действия
type Transition struct {
	Action Action
	From   []AppointmentStatus
	To     AppointmentStatus
}

var transitions = map[Action]Transition{
	ActionConfirm: {
		Action: ActionConfirm,
		From:   []AppointmentStatus{StatusPending},
		To:     StatusConfirmed,
	},
	ActionCheckIn: {
		Action: ActionCheckIn,
		From:   []AppointmentStatus{StatusPending, StatusConfirmed},
		To:     StatusCheckedIn,
	},
	ActionStart: {
		Action: ActionStart,
		From:   []AppointmentStatus{StatusCheckedIn},
		To:     StatusInProgress,
	},
	ActionComplete: {
		Action: ActionComplete,
		From:   []AppointmentStatus{StatusCheckedIn, StatusInProgress},
		To:     StatusCompleted,
	},
	ActionCancel: {
		Action: ActionCancel,
		From:   []AppointmentStatus{StatusPending, StatusConfirmed},
		To:     StatusCancelled,
	},
	ActionNoShow: {
		Action: ActionNoShow,
		From:   []AppointmentStatus{StatusPending, StatusConfirmed, StatusCheckedIn},
		To:     StatusNoShow,
	},
}

// Actions returns every action in a stable order
func Actions() []Action {
	return []Action{ActionConfirm, ActionCheckIn, ActionStart, ActionComplete, ActionCancel, ActionNoShow}
}

// ParseAction converts a string into a known action
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := transitions[a]; !ok {
		return "", ErrUnknownAction
	}
	return a, nil
}

// TransitionFor returns the transition for the action
func TransitionFor(a Action) (Transition, error) {
	t, ok := transitions[a]
	if !ok {
		return Transition{}, ErrUnknownAction
	}
	from := make([]AppointmentStatus, len(t.From))
	copy(from, t.From)
	t.From = from
	return t, nil
}

// Allows returns true if the action may be applied to an appointment in status s
func (t Transition) Allows(s AppointmentStatus) bool {
	for _, from := range t.From {
		if from == s {
			return true
		}
	}
	return false
}

// Apply returns the target status or ErrInvalidStatus when s is not an allowed source
func (t Transition) Apply(s AppointmentStatus) (AppointmentStatus, error) {
	if !t.Allows(s) {
		return s, ErrInvalidStatus
	}
	return t.To, nil
}

// FreesSlot returns true if the target status releases the staff calendar
func (t Transition) FreesSlot() bool {
	return !t.To.OccupiesSlot()
}
