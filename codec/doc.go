// SPDX-License-Identifier: EPL-2.0

// Package codec defines the contract between the decode pipeline and the
// container/codec libraries that feed it.
//
// A Format recognises a byte stream by its signature and opens it as a
// Demuxer. The Demuxer picks a default Track, yields Packets in arrival
// order and builds a Decoder that turns each Packet into an audio.Frame:
//
//	reg := codec.NewRegistry()
//	reg.Register(wav.Format{})
//	f, demux, err := reg.Probe(data, codec.Hint{Extension: "wav"})
//
// # Recoverable conditions
//
// Adapters report three conditions the pipeline handles without failing:
//   - ErrResetRequired: the decoder is reset and the stream continues
//   - *DecodeError: the packet is corrupt and is dropped
//   - io.EOF or io.ErrUnexpectedEOF from NextPacket: the stream is over
//
// Anything else ends the decode.
package codec
