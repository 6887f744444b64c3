package model

// Todo is one record as the server returns it. IDs are server-assigned and
// opaque; the client never fabricates one.
type Todo struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LoginForm holds the login page's input fields.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterForm holds the register page's input fields.
type RegisterForm struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
