// ABOUTME: Channel identifiers and ordered channel layouts
// ABOUTME: Layouts describe which speaker each interleaved sample feeds
package audio

import (
	"fmt"
	"strings"
)

// Channel identifies one speaker position
type Channel int

const (
	ChannelFL   Channel = iota + 1 // front left
	ChannelFR                      // front right
	ChannelFC                      // front center
	ChannelLFE                     // low frequency effects
	ChannelBL                      // back left
	ChannelBR                      // back right
	ChannelFLOC                    // front left of center
	ChannelFROC                    // front right of center
	ChannelBC                      // back center
	ChannelSL                      // side left
	ChannelSR                      // side right
	ChannelTC                      // top center
	ChannelTFL                     // top front left
	ChannelTFC                     // top front center
	ChannelTFR                     // top front right
	ChannelTBL                     // top back left
	ChannelTBC                     // top back center
	ChannelTBR                     // top back right
)

var channelNames = []string{
	ChannelFL: "FL", ChannelFR: "FR", ChannelFC: "FC", ChannelLFE: "LFE",
	ChannelBL: "BL", ChannelBR: "BR", ChannelFLOC: "FLOC", ChannelFROC: "FROC",
	ChannelBC: "BC", ChannelSL: "SL", ChannelSR: "SR", ChannelTC: "TC",
	ChannelTFL: "TFL", ChannelTFC: "TFC", ChannelTFR: "TFR",
	ChannelTBL: "TBL", ChannelTBC: "TBC", ChannelTBR: "TBR",
}

func (c Channel) String() string {
	if c > 0 && int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("CH%d", int(c))
}

// Layout is an ordered set of channels, one per interleaved sample in a frame
type Layout []Channel

// Common layouts
var (
	LayoutMono   = Layout{ChannelFC}
	LayoutStereo = Layout{ChannelFL, ChannelFR}
	Layout21     = Layout{ChannelFL, ChannelFR, ChannelLFE}
	Layout51     = Layout{ChannelFL, ChannelFR, ChannelFC, ChannelLFE, ChannelBL, ChannelBR}
	Layout71     = Layout{ChannelFL, ChannelFR, ChannelFC, ChannelLFE, ChannelBL, ChannelBR, ChannelSL, ChannelSR}
)

// Count returns the number of channels
func (l Layout) Count() int {
	return len(l)
}

// Contains reports whether c is part of the layout
func (l Layout) Contains(c Channel) bool {
	for _, ch := range l {
		if ch == c {
			return true
		}
	}
	return false
}

// Valid reports whether the layout is non-empty and has no duplicate or
// unknown channels
func (l Layout) Valid() bool {
	if len(l) == 0 {
		return false
	}
	seen := make(map[Channel]bool, len(l))
	for _, ch := range l {
		if ch <= 0 || int(ch) >= len(channelNames) || seen[ch] {
			return false
		}
		seen[ch] = true
	}
	return true
}

// String renders the layout as "FL,FR"
func (l Layout) String() string {
	names := make([]string, len(l))
	for i, ch := range l {
		names[i] = ch.String()
	}
	return strings.Join(names, ",")
}

// LayoutForCount returns the conventional layout for n channels.
// Counts without a conventional layout fall back to the first n channels.
func LayoutForCount(n int) Layout {
	switch n {
	case 1:
		return LayoutMono
	case 2:
		return LayoutStereo
	case 3:
		return Layout21
	case 6:
		return Layout51
	case 8:
		return Layout71
	}
	if n <= 0 || n >= len(channelNames) {
		return nil
	}
	l := make(Layout, n)
	for i := range l {
		l[i] = Channel(i + 1)
	}
	return l
}

// ParseLayout parses "FL,FR" style layouts or the aliases mono, stereo,
// 2.1, 5.1 and 7.1
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mono":
		return LayoutMono, nil
	case "stereo":
		return LayoutStereo, nil
	case "2.1":
		return Layout21, nil
	case "5.1":
		return Layout51, nil
	case "7.1":
		return Layout71, nil
	}

	var l Layout
	for _, part := range strings.Split(s, ",") {
		name := strings.ToUpper(strings.TrimSpace(part))
		found := false
		for i, n := range channelNames {
			if i > 0 && n == name {
				l = append(l, Channel(i))
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown channel %q in layout %q", part, s)
		}
	}
	if !l.Valid() {
		return nil, fmt.Errorf("invalid layout %q", s)
	}
	return l, nil
}
