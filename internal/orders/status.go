package orders

// Known statuses. The set is open: UpdateStatus accepts any value, matching
// the admin surface which never constrained it.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)
