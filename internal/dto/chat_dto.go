package dto

type SendChatRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type ChatSource struct {
	Page int `json:"page"`
}

type SendChatResponse struct {
	Status  string       `json:"status"`
	Answer  string       `json:"answer"`
	Sources []ChatSource `json:"sources"`
}
