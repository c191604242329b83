package queue

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusOffered    Status = "offered"
	StatusPurchasing Status = "purchasing"
	StatusConverted  Status = "converted"
	StatusExpired    Status = "expired"
	StatusDeclined   Status = "declined"
	StatusRemoved    Status = "removed"
	StatusCancelled  Status = "cancelled"
)

// ActiveStatuses are the statuses counted by the one-active-entry-per-user rule.
var ActiveStatuses = []Status{StatusWaiting, StatusOffered, StatusPurchasing}

var transitions = map[Status][]Status{
	StatusWaiting:    {StatusOffered, StatusRemoved, StatusCancelled},
	StatusOffered:    {StatusPurchasing, StatusConverted, StatusExpired, StatusDeclined},
	StatusPurchasing: {StatusConverted, StatusExpired, StatusDeclined},
	StatusConverted:  nil,
	StatusExpired:    nil,
	StatusDeclined:   nil,
	StatusRemoved:    nil,
	StatusCancelled:  nil,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsActive() bool {
	switch s {
	case StatusWaiting, StatusOffered, StatusPurchasing:
		return true
	case StatusConverted, StatusExpired, StatusDeclined, StatusRemoved, StatusCancelled:
		return false
	default:
		return false
	}
}

// HoldsInventory reports whether an entry in this status is backed by a reservation.
func (s Status) HoldsInventory() bool {
	return s == StatusOffered || s == StatusPurchasing
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
