package service

import (
	"context"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"
)

// TranscriptChunk is one partial or final recognition result, in the exact
// shape relayed to the browser.
type TranscriptChunk struct {
	IsFinal    bool   `json:"is_final"`
	Transcript string `json:"transcript"`
}

// SpeechStream is one live recognition session: audio packets in, transcript
// chunks out.
type SpeechStream interface {
	Send(audio []byte) error
	Recv() (*TranscriptChunk, error)
	CloseSend() error
}

// SpeechToText opens live recognition sessions against an external
// speech-recognition service.
type SpeechToText interface {
	StreamingRecognize(ctx context.Context) (SpeechStream, error)
}

// GoogleSpeechService implements SpeechToText on the Cloud Speech streaming
// API. Credentials come from the ambient application-default chain.
type GoogleSpeechService struct {
	client *speech.Client
	logger *zap.Logger
}

// NewGoogleSpeechService creates a new GoogleSpeechService instance
func NewGoogleSpeechService(ctx context.Context, logger *zap.Logger) (*GoogleSpeechService, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GoogleSpeechService{client: client, logger: logger}, nil
}

// Close releases the underlying gRPC connection.
func (s *GoogleSpeechService) Close() error {
	return s.client.Close()
}

// StreamingRecognize opens a session and sends the one-time configuration
// message: browser audio is WEBM_OPUS at 48 kHz, English, with automatic
// punctuation and interim results enabled.
func (s *GoogleSpeechService) StreamingRecognize(ctx context.Context) (SpeechStream, error) {
	stream, err := s.client.StreamingRecognize(ctx)
	if err != nil {
		return nil, err
	}

	err = stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: &speechpb.StreamingRecognitionConfig{
				Config: &speechpb.RecognitionConfig{
					Encoding:                   speechpb.RecognitionConfig_WEBM_OPUS,
					SampleRateHertz:            48000,
					LanguageCode:               "en-US",
					EnableAutomaticPunctuation: true,
				},
				InterimResults: true,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &googleSpeechStream{stream: stream}, nil
}

type googleSpeechStream struct {
	stream speechpb.Speech_StreamingRecognizeClient
}

func (g *googleSpeechStream) Send(audio []byte) error {
	return g.stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{
			AudioContent: audio,
		},
	})
}

// Recv blocks until the service produces a usable result, skipping responses
// that carry no alternatives.
func (g *googleSpeechStream) Recv() (*TranscriptChunk, error) {
	for {
		resp, err := g.stream.Recv()
		if err != nil {
			return nil, err
		}
		if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
			continue
		}
		result := resp.Results[0]
		return &TranscriptChunk{
			IsFinal:    result.IsFinal,
			Transcript: result.Alternatives[0].Transcript,
		}, nil
	}
}

func (g *googleSpeechStream) CloseSend() error {
	return g.stream.CloseSend()
}
