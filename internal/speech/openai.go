package speech

import (
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// wordsPerSecond approximates commentary pacing for duration estimates.
const wordsPerSecond = 2.5

type openaiTTS struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

// NewOpenAITTS creates a TTSClient backed by the OpenAI speech API.
func NewOpenAITTS(apiKey, model, voice string) TTSClient {
	return &openaiTTS{
		client: openai.NewClient(apiKey),
		model:  openai.SpeechModel(model),
		voice:  openai.SpeechVoice(voice),
	}
}

func (o *openaiTTS) Speak(ctx context.Context, text, voiceStyle string) ([]byte, float64, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          text,
		Voice:          voiceForStyle(voiceStyle, o.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, 0, fmt.Errorf("read speech response: %w", err)
	}

	return audio, estimateDuration(text), nil
}

// voiceForStyle maps the request's voice style onto an OpenAI voice.
// Unknown styles fall back to the configured default.
func voiceForStyle(style string, fallback openai.SpeechVoice) openai.SpeechVoice {
	switch strings.ToLower(style) {
	case "energetic":
		return openai.VoiceNova
	case "deep":
		return openai.VoiceOnyx
	case "smooth":
		return openai.VoiceShimmer
	default:
		return fallback
	}
}

func estimateDuration(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return float64(words) / wordsPerSecond
}
