// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for PCM byte decoders
package decode

// Decoder decodes raw PCM bytes to int32 samples
type Decoder interface {
	// Decode converts PCM bytes to samples. A trailing partial sample is ignored.
	Decode(data []byte) ([]int32, error)

	// Close releases decoder resources
	Close() error
}
