package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courtside/courtside/internal/store"
)

type generateRequest struct {
	VideoID  string   `json:"videoId"`
	Style    string   `json:"style"`
	Keywords []string `json:"keywords"`
}

type ttsRequest struct {
	CommentaryID string `json:"commentaryId"`
	VoiceStyle   string `json:"voiceStyle"`
}

type mergeRequest struct {
	VideoID string `json:"videoId"`
	AudioID string `json:"audioId"`
}

type processRequest struct {
	VideoID    string   `json:"videoId"`
	Style      string   `json:"style"`
	Keywords   []string `json:"keywords"`
	VoiceStyle string   `json:"voiceStyle"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.VideoID == "" || req.Style == "" {
		respondError(c, http.StatusBadRequest, "Missing required parameters: videoId and style are required")
		return
	}

	com, err := s.generator.Generate(c.Request.Context(), req.VideoID, req.Style, req.Keywords)
	if err != nil {
		s.respondErr(c, err)
		return
	}

	respondOK(c, "Commentary generated successfully", gin.H{
		"videoId":        req.VideoID,
		"commentaryText": com.Text,
		"commentaryId":   com.ID,
	})
}

func (s *Server) handleTextToSpeech(c *gin.Context) {
	var req ttsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CommentaryID == "" {
		respondError(c, http.StatusBadRequest, "Missing required parameter: commentaryId")
		return
	}

	audio, err := s.synthesizer.Synthesize(c.Request.Context(), req.CommentaryID, req.VoiceStyle)
	if err != nil {
		s.respondErr(c, err)
		return
	}

	respondOK(c, "Text-to-speech conversion successful", gin.H{
		"commentaryId": req.CommentaryID,
		"audioId":      audio.ID,
		"audioUrl":     audio.URL,
		"duration":     audio.Duration,
	})
}

func (s *Server) handleMerge(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.VideoID == "" || req.AudioID == "" {
		respondError(c, http.StatusBadRequest, "Missing required parameters: videoId and audioId")
		return
	}

	result, err := s.merger.Merge(c.Request.Context(), req.VideoID, req.AudioID)
	if err != nil {
		s.respondErr(c, err)
		return
	}

	respondOK(c, "Audio and video merged successfully", gin.H{
		"resultId":  result.ID,
		"resultUrl": result.URL,
	})
}

// handleProcess runs the whole pipeline for a video in one orchestrating
// call, persisting the run's state transitions along the way.
func (s *Server) handleProcess(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.VideoID == "" || req.Style == "" {
		respondError(c, http.StatusBadRequest, "Missing required parameters: videoId and style are required")
		return
	}

	outcome, err := s.runner.Run(c.Request.Context(), req.VideoID, req.Style, req.Keywords, req.VoiceStyle)
	if err != nil {
		s.respondErr(c, err)
		return
	}

	respondOK(c, "Pipeline completed successfully", gin.H{
		"videoId":      outcome.VideoID,
		"commentaryId": outcome.CommentaryID,
		"audioId":      outcome.AudioID,
		"resultId":     outcome.ResultID,
		"resultUrl":    outcome.ResultURL,
		"status":       string(outcome.Status),
	})
}

func (s *Server) handleGetResult(c *gin.Context) {
	resultID := c.Param("resultId")

	artifact, err := s.store.GetArtifact(c.Request.Context(), resultID)
	if err != nil || artifact.Kind != store.KindResult {
		respondError(c, http.StatusNotFound, "Result not found")
		return
	}

	respondOK(c, "Result retrieved successfully", gin.H{
		"resultId":  resultID,
		"resultUrl": "/results/" + resultID + ".mp4",
	})
}
