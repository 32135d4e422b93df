package user

// User is one registered player.
type User struct {
	ID                   string
	DisplayName          string
	NotificationsEnabled bool
}
