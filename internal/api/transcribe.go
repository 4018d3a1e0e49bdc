package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mise-app/backend/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// TranscribeHandler relays a browser's audio stream to the speech service and
// the service's partial/final transcripts back to the browser.
type TranscribeHandler struct {
	speech   service.SpeechToText
	archiver *service.AudioArchiver // nil disables archiving
	logger   *zap.Logger
}

// NewTranscribeHandler creates a new TranscribeHandler instance
func NewTranscribeHandler(speech service.SpeechToText, archiver *service.AudioArchiver, logger *zap.Logger) *TranscribeHandler {
	return &TranscribeHandler{speech: speech, archiver: archiver, logger: logger}
}

// Stream is the websocket session. One goroutine pumps binary client frames
// into the recognition stream; this goroutine pumps transcript chunks back to
// the client. Errors end only this session.
func (h *TranscribeHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already wrote the error response
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	stream, err := h.speech.StreamingRecognize(ctx)
	if err != nil {
		h.logger.Error("failed to open recognition session", zap.Error(err))
		return
	}

	var (
		mu    sync.Mutex
		audio bytes.Buffer
	)
	readerDone := make(chan struct{})

	go func() {
		defer close(readerDone)
		defer func() { _ = stream.CloseSend() }()
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				// client disconnect ends the session cleanly
				return
			}
			if msgType != websocket.BinaryMessage {
				continue
			}
			mu.Lock()
			audio.Write(data)
			mu.Unlock()
			if err := stream.Send(data); err != nil {
				h.logger.Warn("failed to forward audio packet", zap.Error(err))
				return
			}
		}
	}()

	for {
		chunk, err := stream.Recv()
		if err != nil {
			if err != io.EOF {
				h.logger.Warn("transcription stream ended", zap.Error(err))
			}
			break
		}
		if err := conn.WriteJSON(chunk); err != nil {
			break
		}
	}

	// unblock the reader before waiting on it
	_ = conn.Close()
	<-readerDone

	if h.archiver != nil {
		mu.Lock()
		data := append([]byte(nil), audio.Bytes()...)
		mu.Unlock()

		archiveCtx, cancelArchive := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelArchive()
		if _, err := h.archiver.ArchiveSession(archiveCtx, data); err != nil {
			h.logger.Warn("failed to archive session audio", zap.Error(err))
		}
	}
}
