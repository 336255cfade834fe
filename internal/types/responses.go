package types

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func Success(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func SuccessMessage(data interface{}, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

func Failure(message string) Response {
	return Response{Success: false, Message: message}
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Language  string `json:"language"`
	IsActive  bool   `json:"is_active"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
