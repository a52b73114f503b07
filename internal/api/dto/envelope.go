package dto

// Envelope is the uniform response body. Error bodies use the same shape
// with Success=false, produced by the error middleware.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Wrap builds a success envelope around a payload.
func Wrap(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// WrapMessage builds a success envelope carrying only a message.
func WrapMessage(message string) Envelope {
	return Envelope{Success: true, Message: message}
}
