package dto

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminResponse is the public view of an admin account.
type AdminResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResponse returns the session token; the handler additionally sets it
// as an HTTP-only cookie.
type LoginResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	User    AdminResponse `json:"user"`
}

// VerifyResponse reports whether the presented session token is valid.
type VerifyResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *AdminResponse `json:"user,omitempty"`
}

// VerifyAccessRequest is the site-wide password gate payload.
type VerifyAccessRequest struct {
	Password string `json:"password" validate:"required"`
}
