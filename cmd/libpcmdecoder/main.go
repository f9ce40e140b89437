// SPDX-License-Identifier: EPL-2.0

// Command libpcmdecoder is the C shared library exposing the decoder.
//
//	go build -buildmode=c-shared -o libpcmdecoder.so ./cmd/libpcmdecoder
//
// The host decodes with pcmdecoder_decode, sizes its buffer with
// pcmdecoder_get_size() * pcmdecoder_sample_size(), copies the samples out
// and releases them with pcmdecoder_free. All calls share one process-wide
// buffer slot configured from the file named by PCMDECODER_CONFIG.
package main

// #include <stdbool.h>
// #include <stddef.h>
// #include <stdint.h>
import "C"

import (
	"unsafe"

	"github.com/ik5/pcmdecoder/internal/ffi"
)

// pcmdecoder_decode decodes length bytes at data and caches the PCM.
//
//export pcmdecoder_decode
func pcmdecoder_decode(data *C.uint8_t, length C.size_t) C.bool {
	return C.bool(ffi.Default().Decode(unsafe.Pointer(data), int(length)))
}

// pcmdecoder_get_size returns the element count of the cached PCM, or 0.
//
//export pcmdecoder_get_size
func pcmdecoder_get_size() C.size_t {
	return C.size_t(ffi.Default().Size())
}

// pcmdecoder_sample_size returns the byte width of one element, 4 for
// float32 and 2 for int16.
//
//export pcmdecoder_sample_size
func pcmdecoder_sample_size() C.size_t {
	return C.size_t(ffi.Default().SampleSize())
}

// pcmdecoder_copy copies the cached PCM to dest, which must hold
// pcmdecoder_get_size() elements.
//
//export pcmdecoder_copy
func pcmdecoder_copy(dest unsafe.Pointer) C.bool {
	return C.bool(ffi.Default().Copy(dest))
}

// pcmdecoder_copy_n copies the cached PCM to dest if it fits in capacity
// elements.
//
//export pcmdecoder_copy_n
func pcmdecoder_copy_n(dest unsafe.Pointer, capacity C.size_t) C.bool {
	return C.bool(ffi.Default().CopyN(dest, int(capacity)))
}

// pcmdecoder_free releases the cached PCM. Failures are logged.
//
//export pcmdecoder_free
func pcmdecoder_free() {
	ffi.Default().Free()
}

func main() {}
