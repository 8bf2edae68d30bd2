package miniaudio

import (
	"bytes"
	"testing"
)

func TestPlaybackBufferDrainsInOrder(t *testing.T) {
	buffer := playbackBuffer{}
	buffer.enqueue([]byte{1, 2, 3, 4})
	buffer.enqueue([]byte{5, 6})

	output := make([]byte, 4)
	if n := buffer.fill(output, 4); n != 4 {
		t.Fatalf("expected 4 bytes filled, got %d", n)
	}
	if !bytes.Equal(output, []byte{1, 2, 3, 4}) {
		t.Fatalf("expected first period in order, got %v", output)
	}

	if n := buffer.fill(output, 4); n != 2 {
		t.Fatalf("expected 2 leftover bytes, got %d", n)
	}
	if !bytes.Equal(output[:2], []byte{5, 6}) {
		t.Fatalf("expected leftover audio, got %v", output[:2])
	}
}

func TestPlaybackBufferEmptyFillsNothing(t *testing.T) {
	buffer := playbackBuffer{}

	output := make([]byte, 8)
	if n := buffer.fill(output, 8); n != 0 {
		t.Fatalf("expected no audio from an empty buffer, got %d bytes", n)
	}
}

func TestPlaybackBufferFillRespectsOutputSize(t *testing.T) {
	buffer := playbackBuffer{}
	buffer.enqueue([]byte{1, 2, 3, 4})

	output := make([]byte, 2)
	if n := buffer.fill(output, 4); n != 2 {
		t.Fatalf("expected fill clamped to output size, got %d", n)
	}
	if !bytes.Equal(output, []byte{1, 2}) {
		t.Fatalf("expected clamped audio, got %v", output)
	}
}

func TestPlaybackBufferClearDropsPending(t *testing.T) {
	buffer := playbackBuffer{}
	buffer.enqueue([]byte{1, 2, 3, 4})
	buffer.clear()

	output := make([]byte, 4)
	if n := buffer.fill(output, 4); n != 0 {
		t.Fatalf("expected cleared buffer to be empty, got %d bytes", n)
	}
}
