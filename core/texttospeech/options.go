package texttospeech

import "github.com/hypeclust/kiosk-core/core/audio"

type SpeechOptions struct {
	// SpeechAudioCallback is called as the engine produces audio for the
	// utterance.
	SpeechAudioCallback func(audio []byte)
	// SpeechEndedCallback is called when the engine has finished producing
	// speech for the utterance.
	SpeechEndedCallback func()
	// ErrorCallback is called when the engine fails or the utterance is
	// cancelled. Callers treat it as completion.
	ErrorCallback func(error)

	EncodingInfo audio.EncodingInfo
}

type SpeechOption func(*SpeechOptions)

func WithSpeechAudioCallback(callback func([]byte)) SpeechOption {
	return func(o *SpeechOptions) {
		o.SpeechAudioCallback = callback
	}
}

func WithSpeechEndedCallback(callback func()) SpeechOption {
	return func(o *SpeechOptions) {
		o.SpeechEndedCallback = callback
	}
}

func WithErrorCallback(callback func(error)) SpeechOption {
	return func(o *SpeechOptions) {
		o.ErrorCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SpeechOption {
	return func(o *SpeechOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}
