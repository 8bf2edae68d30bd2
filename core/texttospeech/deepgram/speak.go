package deepgram

import (
	"context"
	"fmt"
	"log"
	"sync"

	msginterfaces "github.com/deepgram/deepgram-go-sdk/pkg/api/speak/v1/websocket/interfaces"
	clientinterfaces "github.com/deepgram/deepgram-go-sdk/pkg/client/interfaces/v1"
	"github.com/deepgram/deepgram-go-sdk/pkg/client/speak"
	"github.com/hypeclust/kiosk-core/core/audio"
	"github.com/hypeclust/kiosk-core/core/texttospeech"
)

const defaultModel = "aura-2-thalia-en"

// Speaker renders utterances through Deepgram's speak websocket. At most one
// utterance is in flight; Speak supersedes the previous one, which resolves
// through its error callback.
type Speaker struct {
	apiKey string
	model  string

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewSpeaker(apiKey, model string) *Speaker {
	if model == "" {
		model = defaultModel
	}
	return &Speaker{apiKey: apiKey, model: model}
}

func (d *Speaker) Speak(ctx context.Context, text string, opts ...texttospeech.SpeechOption) error {
	options := texttospeech.SpeechOptions{EncodingInfo: audio.GetDefaultEncodingInfo()}
	for _, opt := range opts {
		opt(&options)
	}

	if d.apiKey == "" {
		return fmt.Errorf("deepgram api key not found")
	}
	if text == "" {
		if options.SpeechEndedCallback != nil {
			options.SpeechEndedCallback()
		}
		return nil
	}

	utteranceCtx, cancel := context.WithCancel(ctx)

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = cancel
	d.mu.Unlock()

	current := &utterance{options: options}

	wsOptions := &clientinterfaces.WSSpeakOptions{
		Model:      d.model,
		Encoding:   options.EncodingInfo.Format.Name(),
		SampleRate: options.EncodingInfo.SampleRate,
	}

	callback := &speakCallback{
		onBinary: func(data []byte) error {
			if len(data) > 0 && options.SpeechAudioCallback != nil {
				chunk := make([]byte, len(data))
				copy(chunk, data)
				options.SpeechAudioCallback(chunk)
			}
			return nil
		},
		// Flushed marks the engine done producing audio for the utterance.
		onFlushed: func() error {
			current.resolve(nil)
			cancel()
			return nil
		},
		onError: func(response *msginterfaces.ErrorResponse) error {
			current.resolve(fmt.Errorf("deepgram speak error: %s", response.Description))
			cancel()
			return nil
		},
	}

	dg, err := speak.NewWSUsingCallback(utteranceCtx, d.apiKey, &clientinterfaces.ClientOptions{}, wsOptions, callback)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to create deepgram speak client: %w", err)
	}

	if ok := dg.Connect(); !ok {
		cancel()
		return fmt.Errorf("failed to connect to deepgram speak websocket")
	}

	go func() {
		<-utteranceCtx.Done()
		dg.Stop()
		current.resolve(fmt.Errorf("utterance cancelled"))
	}()

	if err := dg.SpeakWithText(text); err != nil {
		cancel()
		return fmt.Errorf("failed to send text to deepgram: %w", err)
	}
	if err := dg.Flush(); err != nil {
		log.Println("Failed to flush deepgram speak stream", "error", err)
	}

	return nil
}

// Stop cancels the in-flight utterance, if any. The utterance resolves
// through its error callback.
func (d *Speaker) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	return nil
}

// utterance resolves exactly once, whichever of flushed, error or
// cancellation happens first.
type utterance struct {
	once    sync.Once
	options texttospeech.SpeechOptions
}

func (u *utterance) resolve(err error) {
	u.once.Do(func() {
		if err != nil {
			if u.options.ErrorCallback != nil {
				u.options.ErrorCallback(err)
			}
			return
		}
		if u.options.SpeechEndedCallback != nil {
			u.options.SpeechEndedCallback()
		}
	})
}

type speakCallback struct {
	onBinary  func([]byte) error
	onFlushed func() error
	onError   func(*msginterfaces.ErrorResponse) error
}

func (s *speakCallback) Open(*msginterfaces.OpenResponse) error         { return nil }
func (s *speakCallback) Metadata(*msginterfaces.MetadataResponse) error { return nil }
func (s *speakCallback) Clear(*msginterfaces.ClearedResponse) error     { return nil }
func (s *speakCallback) Close(*msginterfaces.CloseResponse) error       { return nil }
func (s *speakCallback) Warning(*msginterfaces.WarningResponse) error   { return nil }
func (s *speakCallback) UnhandledEvent([]byte) error                    { return nil }

func (s *speakCallback) Flush(*msginterfaces.FlushedResponse) error {
	if s.onFlushed != nil {
		return s.onFlushed()
	}
	return nil
}

func (s *speakCallback) Error(response *msginterfaces.ErrorResponse) error {
	if s.onError != nil {
		return s.onError(response)
	}
	return nil
}

func (s *speakCallback) Binary(byMsg []byte) error {
	if s.onBinary != nil {
		return s.onBinary(byMsg)
	}
	return nil
}
