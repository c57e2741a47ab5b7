package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DropRequest is the request body for dropping a piece into a column
type DropRequest struct {
	Column int `json:"column"`
}

// AnswerRequest is the request body for answering a vocabulary question
type AnswerRequest struct {
	Answer string `json:"answer"`
}
