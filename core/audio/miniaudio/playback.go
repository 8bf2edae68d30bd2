package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/hypeclust/kiosk-core/core/audio"
)

type playbackDevice struct {
	device *malgo.Device
	buffer playbackBuffer

	mu sync.Mutex
}

func (p *playbackDevice) init(audioContext *malgo.AllocatedContext) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	format := malgo.FormatS16
	channels := 1
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels
	sampleRate := uint32(audio.DefaultSampleRate)

	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.SampleRate = sampleRate
	config.Playback.Format = format
	config.Playback.Channels = uint32(channels)
	config.Alsa.NoMMap = 1
	config.PeriodSizeInFrames = sampleRate / 10 // ~100ms of audio
	config.Periods = 4

	device, err := malgo.InitDevice(audioContext.Context, config, malgo.DeviceCallbacks{
		Data: func(output, _ []byte, frameCount uint32) {
			p.buffer.fill(output, int(frameCount)*bytesPerFrame)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	p.device = device
	return nil
}

func (p *playbackDevice) start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := p.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}
	return nil
}

func (p *playbackDevice) stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := p.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}
	p.buffer.clear()
	return nil
}

func (p *playbackDevice) enqueue(audio []byte) {
	p.buffer.enqueue(audio)
}

func (p *playbackDevice) clear() {
	p.buffer.clear()
}

func (p *playbackDevice) uninit() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device != nil {
		p.device.Uninit()
		p.device = nil
	}
	p.buffer.clear()
	return nil
}

// playbackBuffer accumulates synthesized audio ahead of the device callback,
// which drains it in period-sized chunks. When the synthesizer falls behind,
// whatever is pending plays and the rest of the period is silence.
type playbackBuffer struct {
	mu      sync.Mutex
	pending []byte
}

func (b *playbackBuffer) enqueue(audio []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, audio...)
}

func (b *playbackBuffer) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
}

// fill copies up to need bytes of pending audio into output and reports how
// much real audio was written.
func (b *playbackBuffer) fill(output []byte, need int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if need > len(output) {
		need = len(output)
	}
	n := copy(output[:need], b.pending)
	b.pending = b.pending[n:]
	return n
}
