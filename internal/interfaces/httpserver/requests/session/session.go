package sessionrequests

// SendMessageRequest carries one typed citizen message.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SpeechFormField is the multipart field holding recorded audio.
const SpeechFormField = "audio"
