package errs

// Sentinel errors shared by the command, query and handler layers.
var (
	// Inventory errors
	ErrCategoryNotFound      = New("ticket category not found")
	ErrCategoryNotOnSale     = New("ticket category not on sale")
	ErrInsufficientInventory = New("insufficient inventory")
	ErrInvalidQuantity       = New("invalid quantity")
	ErrInvalidCategory       = New("invalid ticket category")

	// Queue errors
	ErrDuplicateQueueEntry = New("duplicate queue entry")
	ErrQueueFull           = New("queue full")
	ErrQueueEntryNotFound  = New("queue entry not found")
	ErrInvalidEntryState   = New("invalid queue entry state")

	// Reservation errors
	ErrReservationNotFound      = New("reservation not found")
	ErrReservationNotOwned      = New("reservation not owned by user")
	ErrReservationNoLongerValid = New("reservation no longer valid")

	// Operation errors
	ErrInvalidRequest          = New("invalid request")
	ErrDatabaseOperationFailed = New("database operation failed")
)
