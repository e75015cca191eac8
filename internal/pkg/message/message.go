package message

const (
	InvalidInput        = "Invalid input."
	UsersListed         = "Users retrieved."
	UserFound           = "User retrieved."
	UserCreated         = "User created."
	UserUpdated         = "User updated."
	UserDeleted         = "User deleted."
	UserNotFound        = "User not found."
	EmailTaken          = "A user with this email already exists."
	PendingPayments     = "User has pending payments and cannot be deleted."
	PaymentsUnavailable = "Unable to check pending payments."
	Healthy             = "Service is healthy."
	Unhealthy           = "Database is unreachable."
	RequestTimeout      = "Request cancelled or timed out."

	FmtErrStatusCode = "rec.Code = %d, want: %d"
)
