package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"lukechampine.com/blake3"

	"github.com/mise-app/backend/config"
)

// AudioArchiver stores finished dictation audio in S3 so a session can be
// replayed later. Objects are keyed by content digest, so re-uploading the
// same dictation lands on the same key.
type AudioArchiver struct {
	s3cfg  *config.S3Config
	logger *zap.Logger
}

// NewAudioArchiver creates a new AudioArchiver instance
func NewAudioArchiver(s3cfg *config.S3Config, logger *zap.Logger) *AudioArchiver {
	return &AudioArchiver{s3cfg: s3cfg, logger: logger}
}

// ArchiveSession uploads one session's buffered audio and returns the object
// key. Empty sessions are skipped.
func (a *AudioArchiver) ArchiveSession(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	sum := blake3.Sum256(audio)
	key := fmt.Sprintf("dictations/%s.webm", hex.EncodeToString(sum[:]))

	_, err := a.s3cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.s3cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(audio),
		ContentType: aws.String("audio/webm"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive audio: %w", err)
	}

	a.logger.Info("archived dictation audio",
		zap.String("key", key),
		zap.Int("bytes", len(audio)),
	)
	return key, nil
}
