package server

import (
	"github.com/gin-gonic/gin"
)

// handleProgress upgrades to a websocket and streams pipeline progress
// events for one video until the run finishes or the client disconnects.
// The feed is informational only.
func (s *Server) handleProgress(c *gin.Context) {
	videoID := c.Param("videoId")

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn(c.Request.Context(), "Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := s.broker.Subscribe(videoID)
	defer cancel()

	// The connection must be read for close frames to be processed;
	// clientGone fires when the peer disconnects.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-clientGone:
			s.logger.Debug(c.Request.Context(), "Progress client gone for %s", videoID)
			return
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				s.logger.Debug(c.Request.Context(), "Progress write failed for %s: %v", videoID, err)
				return
			}
			if ev.Done {
				return
			}
		}
	}
}
