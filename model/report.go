package model

import "time"

// Report records one transposition of a song. Songs are identified by the
// digest of their text, so renamed copies share reports.
type Report struct {
	Digest           string    `json:"digest" dynamodbav:"PK"`
	Semitones        int       `json:"semitones" dynamodbav:"SK"`
	Name             string    `json:"name" dynamodbav:"Name"`
	DifficultyBefore int       `json:"difficulty_before" dynamodbav:"DifficultyBefore"`
	DifficultyAfter  int       `json:"difficulty_after" dynamodbav:"DifficultyAfter"`
	Chords           int       `json:"chords" dynamodbav:"Chords"`
	CreatedAt        time.Time `json:"created_at" dynamodbav:"CreatedAt"`
}
