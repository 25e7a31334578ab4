// ABOUTME: Audio output package for PCM sinks
// ABOUTME: Provides Factory/Stream interfaces and oto, WAV, PortAudio and null sinks
// Package output provides audio sinks the bridge can open streams on.
//
// A Factory creates and destroys Streams. A Stream accepts whole PCM frames
// at exactly the format it was created with; sinks never resample.
//
// Available sinks: oto (default device), wav (one file per stream),
// portaudio (build with -tags portaudio) and null (discards data).
//
// Example:
//
//	sink, err := output.New("wav", output.Options{Dir: "./recordings"})
//	stream, err := sink.CreateStream(format)
//	err = stream.Ingest(pcm, 0, frames)
//	err = sink.DestroyStream(stream)
package output
