package domain

// User is an account row. Usernames are unique; the balance is the only
// field the reservation engine writes.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Balance  int    `json:"balance"`
}
