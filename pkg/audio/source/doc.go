// ABOUTME: Audio source package
// ABOUTME: PCM producers that feed the bridge: tone generator, WAV and MP3 files
// Package source provides PCM producers.
//
// A Source reports the exact StreamFormat of the bytes it returns from Read.
// Reads return whole frames; a buffer smaller than one frame is an error.
package source
