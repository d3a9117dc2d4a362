package user

// User is a local storefront account. Password holds the bcrypt hash
// and is blanked before any response leaves the API.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
