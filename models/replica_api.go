package models

// LoginRequest is the body of POST /api/auth/login on a replica server.
type LoginRequest struct {
	Password string `json:"password"`
}

// StatesResponse is returned by GET /api/states.
type StatesResponse struct {
	States []FileState `json:"states"`
	Length int         `json:"length"`
}
