package models

// SignupRequest is what the signup form submits. WorkMode may be empty, in
// which case DefaultWorkMode is used.
type SignupRequest struct {
	Name     string
	Email    string
	Password string
	Company  string
	WorkMode WorkMode
}

// LoginRequest is what the login form submits. RememberMe is accepted for
// form compatibility; session persistence does not depend on it.
type LoginRequest struct {
	Email      string
	Password   string
	RememberMe bool
}

// Session is the outcome of a successful signup or login.
type Session struct {
	Token   string
	Profile UserProfile
}
