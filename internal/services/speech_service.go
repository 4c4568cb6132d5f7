package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"

	"github.com/mockmate/interview-service/internal/config"
)

type speechService struct {
	client  *polly.Client
	voiceID types.VoiceId
	logger  *slog.Logger
}

// NewSpeechService builds the Polly-backed synthesizer. The neural engine
// with the configured voice is used for every request.
func NewSpeechService(cfg *config.Config, logger *slog.Logger) (SpeechService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &speechService{
		client:  polly.NewFromConfig(awsCfg),
		voiceID: types.VoiceId(cfg.PollyVoiceID),
		logger:  logger,
	}, nil
}

func (s *speechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, ErrBadRequest
	}

	out, err := s.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		OutputFormat: types.OutputFormatMp3,
		VoiceId:      s.voiceID,
		Engine:       types.EngineNeural,
	})
	if err != nil {
		s.logger.Error("Speech synthesis failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSpeechSynthesis, err)
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpeechSynthesis, err)
	}
	return audio, nil
}
