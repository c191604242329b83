package reservation

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusConverted Status = "converted"
	StatusReleased  Status = "released"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusConverted, StatusReleased:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusExpired, StatusConverted, StatusReleased:
		return true
	case StatusActive:
		return false
	default:
		return false
	}
}

type Source string

const (
	SourceQueueOffer     Source = "queue_offer"
	SourceDirectPurchase Source = "direct_purchase"
	SourceAdminHold      Source = "admin_hold"
)

func (s Source) String() string {
	return string(s)
}

func (s Source) IsValid() bool {
	switch s {
	case SourceQueueOffer, SourceDirectPurchase, SourceAdminHold:
		return true
	default:
		return false
	}
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func ParseSource(v string) (Source, error) {
	s := Source(v)
	if !s.IsValid() {
		return "", ErrInvalidSource
	}
	return s, nil
}
