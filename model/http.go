package model

type DecodeRequestBody struct {
	PAE string `json:"pae"`
}

type IncipitView struct {
	Clef   string `json:"clef"`
	Key    int    `json:"key"`
	Time   string `json:"time"`
	Events Events `json:"events"`
}

type DecodeResponse struct {
	Incipit IncipitView `json:"incipit"`
	PAE     string      `json:"pae"`
	Skipped []string    `json:"skipped"`
}

type SessionRequestBody struct {
	PAE string `json:"pae"`
}

// CommandRequestBody carries one editor command. Which fields matter
// depends on Type: insert uses Token, sync uses PAE, click and hover use Y,
// select uses Duration, Accidental and Dotted.
type CommandRequestBody struct {
	Type       string   `json:"type"`
	Token      string   `json:"token,omitempty"`
	PAE        string   `json:"pae,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	Duration   int      `json:"duration,omitempty"`
	Accidental string   `json:"accidental,omitempty"`
	Dotted     bool     `json:"dotted,omitempty"`
}

type SessionState struct {
	ID      string   `json:"id"`
	PAE     string   `json:"pae"`
	Body    string   `json:"body"`
	Events  Events   `json:"events"`
	Skipped []string `json:"skipped"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
