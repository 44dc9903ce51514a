package model

// Transcription is a record produced by the transcription service.
// CreatedAt is kept as the backend formats it and is used as the row key.
type Transcription struct {
	AudioFilename   string `json:"audio_filename"`
	TranscribedText string `json:"transcribed_text"`
	CreatedAt       string `json:"created_at"`
}
