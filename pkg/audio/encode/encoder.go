// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for PCM byte encoders
package encode

// Encoder encodes int32 samples to raw PCM bytes
type Encoder interface {
	// Encode converts samples to PCM bytes
	Encode(samples []int32) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
