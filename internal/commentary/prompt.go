package commentary

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a professional basketball commentator with years of experience. " +
	"Your job is to create engaging, realistic commentary for basketball plays."

// buildPrompt assembles the generation instruction from style and keywords.
// Unrecognized styles pass through with no style-specific augmentation.
func buildPrompt(style string, keywords []string) string {
	prompt := fmt.Sprintf("Generate a short basketball play-by-play commentary in %s style", style)

	if len(keywords) > 0 {
		prompt += " focusing on these elements: " + strings.Join(keywords, ", ")
	}

	prompt += ". The commentary should be approximately 10-15 seconds long when spoken aloud, " +
		"suitable for a short clip. Make it engaging and authentic."

	switch strings.ToLower(style) {
	case "excitable":
		prompt += ` Include enthusiasm, dynamic energy, and excited reactions like "WHAT A PLAY!" or "UNBELIEVABLE!" where appropriate.`
	case "analytical":
		prompt += " Focus on technique, strategy, and player positioning. Use basketball terminology and analyze the effectiveness of the play."
	case "old school":
		prompt += " Use classic basketball phrases and a more measured, nostalgic tone reminiscent of commentators from the 1980s and 90s."
	}

	return prompt
}
