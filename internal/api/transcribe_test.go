package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mise-app/backend/internal/service"
)

// scriptedStream releases its chunks once the first audio packet arrives, so
// the test can assert what the handler forwarded in either direction.
type scriptedStream struct {
	chunks   []service.TranscriptChunk
	next     int
	gotAudio chan struct{}
	once     sync.Once

	mu    sync.Mutex
	audio bytes.Buffer
}

func newScriptedStream(chunks ...service.TranscriptChunk) *scriptedStream {
	return &scriptedStream{chunks: chunks, gotAudio: make(chan struct{})}
}

func (s *scriptedStream) Send(audio []byte) error {
	s.mu.Lock()
	s.audio.Write(audio)
	s.mu.Unlock()
	s.once.Do(func() { close(s.gotAudio) })
	return nil
}

func (s *scriptedStream) Recv() (*service.TranscriptChunk, error) {
	<-s.gotAudio
	if s.next >= len(s.chunks) {
		return nil, io.EOF
	}
	chunk := s.chunks[s.next]
	s.next++
	return &chunk, nil
}

func (s *scriptedStream) CloseSend() error { return nil }

func (s *scriptedStream) received() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.audio.Bytes()...)
}

type fakeSpeechService struct {
	stream service.SpeechStream
	err    error
}

func (f *fakeSpeechService) StreamingRecognize(ctx context.Context) (service.SpeechStream, error) {
	return f.stream, f.err
}

func dialTranscribe(t *testing.T, speech service.SpeechToText) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	handler := NewTranscribeHandler(speech, nil, zap.NewNop())
	engine.GET("/ws/transcribe_streaming", handler.Stream)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/transcribe_streaming"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestStreamRelaysTranscriptChunks(t *testing.T) {
	stream := newScriptedStream(
		service.TranscriptChunk{IsFinal: false, Transcript: "two eggs"},
		service.TranscriptChunk{IsFinal: true, Transcript: "Two eggs, whisked."},
	)
	conn := dialTranscribe(t, &fakeSpeechService{stream: stream})

	audio := []byte{0x1a, 0x45, 0xdf, 0xa3}
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, audio))

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var interim service.TranscriptChunk
	require.NoError(t, conn.ReadJSON(&interim))
	assert.False(t, interim.IsFinal)
	assert.Equal(t, "two eggs", interim.Transcript)

	var final service.TranscriptChunk
	require.NoError(t, conn.ReadJSON(&final))
	assert.True(t, final.IsFinal)
	assert.Equal(t, "Two eggs, whisked.", final.Transcript)

	// server closes the connection once the recognition stream ends
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	assert.Equal(t, audio, stream.received())
}

func TestStreamIgnoresTextFrames(t *testing.T) {
	stream := newScriptedStream(
		service.TranscriptChunk{IsFinal: true, Transcript: "done"},
	)
	conn := dialTranscribe(t, &fakeSpeechService{stream: stream})

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	audio := []byte{0x01, 0x02, 0x03}
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, audio))

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var chunk service.TranscriptChunk
	require.NoError(t, conn.ReadJSON(&chunk))
	assert.Equal(t, "done", chunk.Transcript)

	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	assert.Equal(t, audio, stream.received())
}

func TestStreamClosesWhenRecognitionUnavailable(t *testing.T) {
	conn := dialTranscribe(t, &fakeSpeechService{err: errors.New("speech service down")})

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
