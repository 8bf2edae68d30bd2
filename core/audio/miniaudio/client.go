// Package miniaudio drives the kiosk's microphone and speaker through the
// miniaudio library. Both devices run mono linear16 at the default sample
// rate the voice adapters exchange with their engines.
package miniaudio

import (
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/hypeclust/kiosk-core/core/audio"
)

// Client owns the miniaudio context and the kiosk's two devices. The
// playback device runs for the process lifetime and drains a shared buffer;
// the capture device starts and stops with listening.
type Client struct {
	// audioContext is only held so it can be uninitialized on Close.
	audioContext *malgo.AllocatedContext
	capture      captureDevice
	playback     playbackDevice
}

func NewClient() (*Client, error) {
	audioContext, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(string) {})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	client := Client{audioContext: audioContext}

	if err := client.playback.init(audioContext); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize playback device: %w", err)
	}
	if err := client.playback.start(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}
	if err := client.capture.init(audioContext); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize capture device: %w", err)
	}

	return &client, nil
}

// Start begins feeding microphone audio to onAudio.
func (c *Client) Start(onAudio func(audio []byte)) error {
	return c.capture.start(onAudio)
}

// Stop stops the microphone.
func (c *Client) Stop() error {
	return c.capture.stop()
}

// Play queues synthesized audio for the speaker.
func (c *Client) Play(audio []byte) {
	c.playback.enqueue(audio)
}

// Clear drops any queued but unplayed audio.
func (c *Client) Clear() {
	c.playback.clear()
}

func (c *Client) Close() {
	_ = c.capture.uninit()
	_ = c.playback.uninit()
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}
