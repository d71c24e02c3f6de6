// Package videos resolves configured video links and local video files into
// manifest entries.
package videos

import (
	"regexp"
	"strings"
)

// Exts lists the local video extensions the build picks up.
var Exts = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
}

var (
	youtubeWatch = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]{6,})`)
	vimeoPage    = regexp.MustCompile(`vimeo\.com/(\d+)`)
)

// EmbedURL normalizes a user-supplied video link to an iframe-embeddable URL.
// YouTube watch/short links and Vimeo page links are rewritten; URLs that are
// already in embed form pass through. Anything else returns "".
func EmbedURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	if m := youtubeWatch.FindStringSubmatch(u); m != nil {
		return "https://www.youtube.com/embed/" + m[1]
	}
	if m := vimeoPage.FindStringSubmatch(u); m != nil {
		return "https://player.vimeo.com/video/" + m[1]
	}
	if strings.Contains(u, "youtube.com/embed/") || strings.Contains(u, "player.vimeo.com/video/") {
		return u
	}
	return ""
}
