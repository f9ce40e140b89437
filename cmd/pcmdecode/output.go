// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"io"

	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/formats/wav"
)

// writeOutput writes buf as a 16-bit mono WAV file or as raw F32LE/S16LE
// samples.
func writeOutput(w io.Writer, format string, buf *audio.PCMBuffer) error {
	bw := bufio.NewWriter(w)

	var err error
	if format == "raw" {
		_, err = bw.Write(buf.Bytes())
	} else {
		samples := buf.Int
		if buf.Format != audio.Int16 {
			samples = audio.QuantizeSlice(nil, buf.Float)
		}
		err = wav.WriteWAV16(bw, buf.SampleRate, 1, samples)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}
