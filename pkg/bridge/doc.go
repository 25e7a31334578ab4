// ABOUTME: Audio bridge package
// ABOUTME: Rate negotiation, stream lifecycle and PCM relay between a producer and a sink
// Package bridge connects a PCM producer to an output sink that only plays a
// fixed set of sample rates.
//
// The bridge never resamples. OpenStream rejects any rate that is not exactly
// in the RateTable; Normalize tells the producer which rate it should have
// used. Once a stream is open, PushAudio forwards whole frames to it.
//
// A Bridge is not safe for concurrent use. The owner serialises every call.
//
// Example:
//
//	b, err := bridge.New(bridge.Config{Factory: sink, Logger: logger})
//	if err := b.OpenStream(format); err != nil {
//		return err
//	}
//	defer b.Close()
//	b.PushAudio(pcm)
package bridge
