// ABOUTME: Audio output tests
// ABOUTME: Verifies sink implementations and WAV capture contents
package output

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	"github.com/go-audio/wav"
)

func TestSinksImplementOutput(t *testing.T) {
	var _ Output = (*Oto)(nil)
	var _ Output = (*WAV)(nil)
	var _ Output = (*Discard)(nil)
}

func TestNewOto(t *testing.T) {
	out := NewOto(nil)
	if out.GetVolume() != 100 || out.IsMuted() {
		t.Errorf("unexpected defaults: volume %d muted %v", out.GetVolume(), out.IsMuted())
	}

	out.SetVolume(150)
	if out.GetVolume() != 100 {
		t.Errorf("expected volume clamped to 100, got %d", out.GetVolume())
	}

	if err := out.Write(audio.NewData(2, 4, 0)); err == nil {
		t.Error("expected error writing to unopened output")
	}
}

type fakeDevice struct {
	opens, resumes, suspends int
}

func (d *fakeDevice) NewPlayer(r io.Reader) player { return &fakePlayer{r: r} }
func (d *fakeDevice) Suspend() error               { d.suspends++; return nil }
func (d *fakeDevice) Resume() error                { d.resumes++; return nil }

type fakePlayer struct {
	r io.Reader
}

// Play drains the pipe the way the device callback would
func (p *fakePlayer) Play()        { go io.Copy(io.Discard, p.r) }
func (p *fakePlayer) Close() error { return nil }

func newFakeOto() (*Oto, *fakeDevice) {
	dev := &fakeDevice{}
	out := NewOto(nil)
	out.openDevice = func(audio.Info) (device, error) {
		dev.opens++
		return dev, nil
	}
	return out, dev
}

func TestOtoReopenAfterClose(t *testing.T) {
	out, dev := newFakeOto()
	info := audio.Info{SampleRate: 48000, Channels: 2}

	if err := out.Open(info); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := out.Write(audio.NewData(2, 16, 0)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if err := out.Open(info); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if err := out.Write(audio.NewData(2, 16, 0)); err != nil {
		t.Errorf("write after reopen failed: %v", err)
	}
	out.Close()

	if dev.opens != 1 {
		t.Errorf("expected one context, got %d", dev.opens)
	}
	if dev.resumes != 1 || dev.suspends != 2 {
		t.Errorf("expected 1 resume and 2 suspends, got %d/%d", dev.resumes, dev.suspends)
	}
}

func TestOtoOpenTwice(t *testing.T) {
	out, dev := newFakeOto()
	info := audio.Info{SampleRate: 48000, Channels: 2}

	if err := out.Open(info); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := out.Open(info); err != nil {
		t.Errorf("expected same-format open to be reused, got %v", err)
	}
	if dev.opens != 1 || dev.resumes != 0 {
		t.Errorf("expected a single context without resume, got %d/%d", dev.opens, dev.resumes)
	}

	if err := out.Open(audio.Info{SampleRate: 44100, Channels: 2}); err == nil {
		t.Error("expected error on format change")
	}
	out.Close()

	if err := out.Open(audio.Info{SampleRate: 44100, Channels: 2}); err == nil {
		t.Error("expected error on format change after close")
	}
}

func TestDiscardCountsFrames(t *testing.T) {
	d := NewDiscard()
	_ = d.Open(audio.Info{SampleRate: 48000, Channels: 2})
	_ = d.Write(audio.NewData(2, 480, 0))
	_ = d.Write(audio.NewData(2, 480, 0))

	if d.Frames() != 960 {
		t.Errorf("expected 960 frames, got %d", d.Frames())
	}
}

func TestWAVCapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	info := audio.Info{SampleRate: 48000, Channels: 2}
	out := NewWAV(f, 16, nil)
	if err := out.Open(info); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	// 8 planes like a host-shaped buffer; only the first two are captured
	d := audio.NewData(audio.MaxAVPlanes, 4, 0)
	left, _ := d.Channel(0)
	right, _ := d.Channel(1)
	copy(left, []float32{0.5, 0.25, 0, -0.5})
	copy(right, []float32{-0.5, -0.25, 0, 0.5})

	if err := out.Write(d); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if out.Frames() != 4 {
		t.Errorf("expected 4 frames, got %d", out.Frames())
	}
	f.Close()

	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		t.Fatal("expected a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if dec.SampleRate != 48000 || dec.NumChans != 2 || dec.BitDepth != 16 {
		t.Errorf("unexpected header %d/%d/%d", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}

	expected := []int{16384, -16384, 8192, -8192, 0, 0, -16384, 16384}
	if len(buf.Data) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(buf.Data))
	}
	for i, want := range expected {
		if buf.Data[i] != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, buf.Data[i])
		}
	}
}

func TestWAVOpenErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := NewWAV(f, 12, nil).Open(audio.Info{SampleRate: 48000, Channels: 2}); err == nil {
		t.Error("expected error for 12-bit output")
	}
	if err := NewWAV(f, 16, nil).Open(audio.Info{SampleRate: 48000}); err == nil {
		t.Error("expected error for zero channels")
	}
	if err := NewWAV(f, 16, nil).Write(audio.NewData(1, 1, 0)); err == nil {
		t.Error("expected error writing before open")
	}

	out := NewWAV(f, 16, nil)
	if err := out.Open(audio.Info{SampleRate: 48000, Channels: 2}); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := out.Open(audio.Info{SampleRate: 44100, Channels: 2}); err == nil {
		t.Error("expected error on format change")
	}
}

func TestApplyVolume(t *testing.T) {
	tests := []struct {
		name     string
		volume   int
		muted    bool
		input    float32
		expected float32
	}{
		{"full", 100, false, 0.5, 0.5},
		{"half", 50, false, 0.5, 0.25},
		{"muted", 100, true, 0.5, 0},
		{"zero", 0, false, -0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := []float32{tt.input}
			applyVolume(samples, tt.volume, tt.muted)
			if samples[0] != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, samples[0])
			}
		})
	}
}
