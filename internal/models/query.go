package models

// GuideRequest is the payload for POST /api/guides and POST /api/guides/structured.
type GuideRequest struct {
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     Year   `json:"year"`
	Question string `json:"question"`
}

// Vehicle extracts the vehicle part of the request.
func (r GuideRequest) Vehicle() Vehicle {
	return Vehicle{Make: r.Make, Model: r.Model, Year: r.Year}
}

// ChatRequest is the payload for POST /api/chat follow‑up questions.
type ChatRequest struct {
	GuideID string `json:"guideId"` // ID returned from POST /api/guides
	Message string `json:"message"` // user’s natural‑language question
}

// ChatResponse is returned by POST /api/chat.
type ChatResponse struct {
	Reply string        `json:"reply"`
	Chat  []ChatMessage `json:"chat"`
}
