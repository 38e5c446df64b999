package response

// Response is the body of every non-entity reply: a human readable message,
// plus an upstream error payload on upload failures.
type Response struct {
	Message string `json:"message"`
	Error   any    `json:"error,omitempty"`
}

func Message(msg string) Response {
	return Response{Message: msg}
}

func Error(msg string, payload any) Response {
	return Response{
		Message: msg,
		Error:   payload,
	}
}

const (
	MsgInvalidBody = "Invalid request body!"
	MsgInvalidID   = "Invalid id!"
	MsgNoFile      = "No file uploaded."
)
