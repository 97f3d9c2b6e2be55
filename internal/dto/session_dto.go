package dto

type CreateSessionResponse struct {
	Status    string `json:"status"`
	SessionId string `json:"session_id"`
}

type ClearSessionRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type ClearSessionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
