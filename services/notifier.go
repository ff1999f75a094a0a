package services

// Notifier sends the transactional emails. Implementations must not block the
// caller on delivery and must not report delivery failures.
type Notifier interface {
	PasswordReset(to, name, link string)
	ApplicationReceived(to, name, restaurantName string)
	ApplicationApproved(to, name, restaurantName string)
	ApplicationRejected(to, name, restaurantName, reason string)
}

// TokenIssuer signs bearer tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uint, email, role string) (string, error)
}
