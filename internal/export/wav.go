// SPDX-License-Identifier: MIT
package export

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	applog "spectra/internal/log"
	"spectra/internal/plot"
)

// DefaultBitDepth is used when the configured depth is zero.
const DefaultBitDepth = 16

var (
	ErrBitDepth   = errors.New("export: unsupported bit depth")
	ErrEmptyTrace = errors.New("export: empty trace")
)

// WriteTrace peak-normalizes samples and writes them to path as mono PCM.
// An all-zero trace is written as silence.
func WriteTrace(path string, samples []float32, sampleRate uint32, bitDepth int) (err error) {
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
	if len(samples) == 0 {
		return ErrEmptyTrace
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	encoder := wav.NewEncoder(file, int(sampleRate), bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  int(sampleRate),
		},
		Data:           quantize(samples, bitDepth),
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return encoder.Close()
}

// quantize scales samples so the largest magnitude hits full scale.
func quantize(samples []float32, bitDepth int) []int {
	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(float64(s)))
	}

	out := make([]int, len(samples))
	if peak == 0 {
		return out
	}
	full := float64(int(1)<<(bitDepth-1) - 1)
	for i, s := range samples {
		out[i] = int(math.Round(float64(s) / peak * full))
	}
	return out
}

// ExportFrame writes every non-empty trace of frame to
// dir/<scenario>-<trace>.wav and returns the paths written.
func ExportFrame(dir string, frame plot.Frame, bitDepth int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	var paths []string
	for _, tr := range frame.Traces {
		if len(tr.Real) == 0 {
			applog.Debugf("Export: Skipping empty trace %q", tr.Name)
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.wav", frame.Scenario, tr.Name))
		if err := WriteTrace(path, tr.Real, frame.SampleRate, bitDepth); err != nil {
			return paths, err
		}
		applog.Infof("Export: Wrote %d samples to %s", len(tr.Real), path)
		paths = append(paths, path)
	}
	return paths, nil
}
