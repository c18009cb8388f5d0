package model

type TransposeRequest struct {
	Name      string `json:"name"`
	Text      string `json:"text"`
	Semitones int    `json:"semitones"`
	Auto      bool   `json:"auto"`
	Flats     bool   `json:"flats"`
}

type TransposeResponse struct {
	Text             string   `json:"text"`
	Semitones        int      `json:"semitones"`
	DifficultyBefore int      `json:"difficulty_before"`
	DifficultyAfter  int      `json:"difficulty_after"`
	Chords           int      `json:"chords"`
	Digest           string   `json:"digest"`
	Warnings         []string `json:"warnings,omitempty"`
}

type KeysRequest struct {
	Text string `json:"text"`
}

type KeyScore struct {
	Semitones  int `json:"semitones"`
	Difficulty int `json:"difficulty"`
}

type KeysResponse struct {
	Easiest KeyScore   `json:"easiest"`
	Keys    []KeyScore `json:"keys"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
