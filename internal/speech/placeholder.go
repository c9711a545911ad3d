package speech

import "context"

// placeholderDuration is the nominal duration reported when no live TTS
// provider is configured.
const placeholderDuration = 10.0

type placeholderTTS struct{}

// NewPlaceholderTTS creates a TTSClient that persists a placeholder artifact
// instead of calling a live provider. Used when no OpenAI key is configured.
func NewPlaceholderTTS() TTSClient {
	return placeholderTTS{}
}

func (placeholderTTS) Speak(ctx context.Context, text, voiceStyle string) ([]byte, float64, error) {
	return []byte("Placeholder for TTS audio"), placeholderDuration, nil
}
