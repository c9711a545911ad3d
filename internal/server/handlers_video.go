package server

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtside/courtside/internal/store"
)

// handleUpload accepts a multipart video upload, enforces the size and MIME
// limits before any media inspection, then hands the file to the inspector.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("video")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No video file uploaded")
		return
	}

	if fileHeader.Size > s.cfg.MaxSizeBytes() {
		respondError(c, http.StatusRequestEntityTooLarge,
			"File too large. Maximum size is "+sizeLimitLabel(s.cfg.Upload.MaxSizeMB)+".")
		return
	}

	if !s.allowedMIME(fileHeader.Header.Get("Content-Type")) {
		respondError(c, http.StatusBadRequest, "Invalid file type. Only video files are allowed.")
		return
	}

	tmpPath := filepath.Join(s.cfg.Paths.Tmp, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to store upload: "+err.Error())
		return
	}

	video, err := s.inspector.Inspect(c.Request.Context(), tmpPath, fileHeader.Filename)
	if err != nil {
		s.respondErr(c, err)
		return
	}

	if _, err := s.store.CreateRun(c.Request.Context(), video.ID); err != nil {
		s.respondErr(c, err)
		return
	}

	respondOK(c, "Video uploaded successfully", gin.H{
		"videoId":      video.ID,
		"fileName":     filepath.Base(video.Path),
		"originalName": fileHeader.Filename,
		"size":         fileHeader.Size,
		"duration":     video.Duration,
		"thumbnailUrl": "/thumbnails/" + video.ID + ".jpg",
	})
}

func (s *Server) handleGetVideo(c *gin.Context) {
	videoID := c.Param("videoId")

	artifact, err := s.store.GetArtifact(c.Request.Context(), videoID)
	if err != nil || artifact.Kind != store.KindVideo {
		respondError(c, http.StatusNotFound, "Video not found")
		return
	}

	respondOK(c, "Video information retrieved", gin.H{
		"videoId":  videoID,
		"fileName": filepath.Base(artifact.Path),
	})
}

func (s *Server) handleDeleteVideo(c *gin.Context) {
	videoID := c.Param("videoId")

	if err := s.inspector.Delete(c.Request.Context(), videoID); err != nil {
		s.respondErr(c, err)
		return
	}

	if err := s.store.DeleteRun(c.Request.Context(), videoID); err != nil {
		s.logger.Warn(c.Request.Context(), "Failed to delete run for %s: %v", videoID, err)
	}

	respondOK(c, "Video deleted successfully", nil)
}

func sizeLimitLabel(mb int64) string {
	return fmt.Sprintf("%dMB", mb)
}

func (s *Server) allowedMIME(contentType string) bool {
	for _, allowed := range s.cfg.Upload.AllowedMIMETypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
