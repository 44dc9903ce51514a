package testutil

import (
	"transcribe-ui/internal/app/model"
)

// TestTranscriptions provides sample transcription data for testing
var TestTranscriptions = []model.Transcription{
	{
		AudioFilename:   "test.mp3",
		TranscribedText: "test transcription",
		CreatedAt:       "2025-01-01 08:58:30.543544",
	},
	{
		AudioFilename:   "search.mp3",
		TranscribedText: "search transcription",
		CreatedAt:       "2025-02-02 02:52:32.543544",
	},
	{
		AudioFilename:   "Sample 2.mp3",
		TranscribedText: "the quick brown fox jumps over the lazy dog",
		CreatedAt:       "2025-02-03 11:04:17.120001",
	},
}

// Transcriptions returns a copy of the fixtures so tests can mutate freely
func Transcriptions() []model.Transcription {
	out := make([]model.Transcription, len(TestTranscriptions))
	copy(out, TestTranscriptions)
	return out
}

// SearchFixture is the single record the search scenarios expect
func SearchFixture() model.Transcription {
	return TestTranscriptions[1]
}
