package speech

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

const (
	// DefaultSampleRate suits recognition services and keeps uploads small
	DefaultSampleRate = 16000

	frameBuffer     = 64
	calibrateFactor = 1.5
	preRoll         = 300 * time.Millisecond
)

// MalgoMicrophone captures from the default input device through miniaudio.
// The device runs from Open until Close, frames arriving while nobody
// listens are dropped.
type MalgoMicrophone struct {
	sampleRate   int
	malgoContext *malgo.AllocatedContext
	device       *malgo.Device
	frames       chan []int16

	mu        sync.Mutex
	vadConfig VADConfig
	closed    bool
}

// OpenMalgoMicrophone initializes and starts the default capture device
func OpenMalgoMicrophone(sampleRate int) (*MalgoMicrophone, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	m := &MalgoMicrophone{
		sampleRate: sampleRate,
		frames:     make(chan []int16, frameBuffer),
		vadConfig:  DefaultVADConfig(),
	}

	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	m.malgoContext = malgoCtx

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = 1
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(sampleRate * 30 / 1000)

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			frame := make([]int16, len(input)/2)
			for i := range frame {
				frame[i] = int16(binary.LittleEndian.Uint16(input[i*2:]))
			}
			select {
			case m.frames <- frame:
			default:
			}
		},
	}

	device, err := malgo.InitDevice(malgoCtx.Context, deviceConfig, callbacks)
	if err != nil {
		m.freeContext()
		return nil, fmt.Errorf("failed to initialize capture device: %w", err)
	}
	m.device = device

	if err := device.Start(); err != nil {
		device.Uninit()
		m.freeContext()
		return nil, fmt.Errorf("failed to start capture device: %w", err)
	}

	return m, nil
}

// Calibrate measures the ambient noise level
func (m *MalgoMicrophone) Calibrate(ctx context.Context, d time.Duration) error {
	m.drain()

	var (
		total float64
		count int
	)
	deadline := time.After(d)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			if count > 0 {
				ambient := total / float64(count)
				m.mu.Lock()
				m.vadConfig.EnergyThreshold = max(DefaultVADConfig().EnergyThreshold, ambient*calibrateFactor)
				m.mu.Unlock()
			}
			return nil
		case frame, ok := <-m.frames:
			if !ok {
				return &ServiceError{Op: "calibrate", Err: errors.New("microphone closed")}
			}
			total += Energy(frame)
			count++
		}
	}
}

// Listen records one utterance
func (m *MalgoMicrophone) Listen(ctx context.Context, timeout, phraseLimit time.Duration) (*Utterance, error) {
	m.drain()

	m.mu.Lock()
	vad := NewVAD(m.vadConfig, m.sampleRate)
	m.mu.Unlock()

	maxPreRoll := int(preRoll.Seconds() * float64(m.sampleRate))
	var (
		samples []int16
		started bool
		limit   <-chan time.Time
	)
	waiting := time.NewTimer(timeout)
	defer waiting.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-waiting.C:
			if !started {
				return nil, ErrListenTimedOut
			}

		case <-limit:
			return m.utterance(samples), nil

		case frame, ok := <-m.frames:
			if !ok {
				return nil, &ServiceError{Op: "listen", Err: errors.New("microphone closed")}
			}
			samples = append(samples, frame...)
			_, speechStarted, speechEnded := vad.ProcessFrame(frame)

			if !started {
				if speechStarted {
					started = true
					limit = time.After(phraseLimit)
				} else if len(samples) > maxPreRoll {
					samples = samples[len(samples)-maxPreRoll:]
				}
				continue
			}
			if speechEnded {
				return m.utterance(samples), nil
			}
		}
	}
}

// Close stops the device and releases the malgo context
func (m *MalgoMicrophone) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	var err error
	if m.device != nil {
		if stopErr := m.device.Stop(); stopErr != nil {
			err = fmt.Errorf("failed to stop capture device: %w", stopErr)
		}
		m.device.Uninit()
	}
	m.freeContext()
	return err
}

func (m *MalgoMicrophone) utterance(samples []int16) *Utterance {
	return &Utterance{Samples: samples, SampleRate: m.sampleRate}
}

func (m *MalgoMicrophone) drain() {
	for {
		select {
		case <-m.frames:
		default:
			return
		}
	}
}

func (m *MalgoMicrophone) freeContext() {
	if m.malgoContext != nil {
		_ = m.malgoContext.Uninit()
		m.malgoContext.Free()
		m.malgoContext = nil
	}
}
