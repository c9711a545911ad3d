package speech

import "context"

// Audio is a synthesized speech artifact persisted under an identifier.
type Audio struct {
	ID       string
	Path     string
	URL      string
	Duration float64
}

// Synthesizer turns saved commentary text into an audio artifact
type Synthesizer interface {
	Synthesize(ctx context.Context, commentaryID, voiceStyle string) (*Audio, error)
}

// TTSClient is the text-to-speech boundary. Implementations return the audio
// bytes and a duration estimate in seconds.
type TTSClient interface {
	Speak(ctx context.Context, text, voiceStyle string) ([]byte, float64, error)
}
