package resolve

import (
	"net/url"
	"regexp"
	"strings"
)

// The registry is read-only and initialized once per process; it is
// shared by reference across all concurrent requests. Order is part of
// the contract: more specific domains (music.youtube.com) must appear
// before more general ones (youtube.com).
var registry = []Platform{
	instagram,
	tiktok,
	twitter,
	youtubeMusic, // before youtube: music.youtube.com is also *.youtube.com
	youtube,
	facebook,
	snapchat,
	twitch,
	telegram,
	spotify,
	appleMusic,
	soundcloud,
	deezer,
}

// website is the synthetic fallback descriptor; its web fallback is the
// identity and it never attempts native resolution.
var website = &descriptor{
	id:       "website",
	name:     "Website",
	category: CategoryCustom,
}

// MatchPlatform resolves a host to a platform descriptor. It is total:
// hosts matching no registered pattern fall back to the synthetic
// website descriptor.
func MatchPlatform(host string) Platform {
	for _, p := range registry {
		if p.Match(host) {
			return p
		}
	}
	return website
}

// Platforms returns the registered platforms in priority order.
func Platforms() []Platform {
	out := make([]Platform, len(registry))
	copy(out, registry)
	return out
}

// domainPattern compiles a pattern matching domain and any subdomain.
func domainPattern(domain string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|\.)` + regexp.QuoteMeta(domain) + `$`)
}

var (
	igUsernameRe  = regexp.MustCompile(`^[A-Za-z0-9._]+$`)
	genericUserRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	spotifyPathRe = regexp.MustCompile(`^/(artist|album|track|playlist|show|episode)/([A-Za-z0-9]+)`)
	deezerPathRe  = regexp.MustCompile(`^/(?:[a-z]{2}/)?(artist|album|track|playlist)/([0-9]+)`)
	watchVideoRe  = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
)

// instagramReserved are path roots that are features, not usernames.
var instagramReserved = map[string]struct{}{
	"p": {}, "reel": {}, "reels": {}, "stories": {}, "explore": {},
	"accounts": {}, "tv": {}, "direct": {},
}

var instagram = &descriptor{
	id:       "instagram",
	name:     "Instagram",
	category: CategorySocial,
	patterns: []*regexp.Regexp{domainPattern("instagram.com")},
	extract: func(u *url.URL) string {
		seg := firstPathSegment(u)
		if _, reserved := instagramReserved[strings.ToLower(seg)]; reserved {
			return ""
		}
		if !igUsernameRe.MatchString(seg) {
			return ""
		}
		return seg
	},
	valid:      regexp.MustCompile(`^/[A-Za-z0-9._]+/?$`),
	iosURI:     func(id string) string { return "instagram://user?username=" + id },
	intentRef:  func(id string) string { return "instagram.com/" + id },
	androidPkg: "com.instagram.android",
}

var tiktok = &descriptor{
	id:       "tiktok",
	name:     "TikTok",
	category: CategorySocial,
	patterns: []*regexp.Regexp{domainPattern("tiktok.com")},
	extract: func(u *url.URL) string {
		seg := firstPathSegment(u)
		if !strings.HasPrefix(seg, "@") {
			return ""
		}
		user := strings.TrimPrefix(seg, "@")
		if !genericUserRe.MatchString(user) {
			return ""
		}
		return user
	},
	valid:      regexp.MustCompile(`^/@[A-Za-z0-9._-]+/?$`),
	iosURI:     func(id string) string { return "tiktok://user?username=" + id },
	intentRef:  func(id string) string { return "www.tiktok.com/@" + id },
	androidPkg: "com.zhiliaoapp.musically",
}

var twitter = &descriptor{
	id:       "twitter",
	name:     "X",
	category: CategorySocial,
	patterns: []*regexp.Regexp{domainPattern("x.com"), domainPattern("twitter.com")},
	extract: func(u *url.URL) string {
		seg := firstPathSegment(u)
		switch strings.ToLower(seg) {
		case "", "i", "home", "search", "explore", "intent", "hashtag":
			return ""
		}
		if !genericUserRe.MatchString(seg) {
			return ""
		}
		return seg
	},
	iosURI:     func(id string) string { return "twitter://user?screen_name=" + id },
	intentRef:  func(id string) string { return "x.com/" + id },
	androidPkg: "com.twitter.android",
}

// youtubeMusic has no reliable per-object native scheme; the app claims
// its own https links, so resolution always falls back to the web.
var youtubeMusic = &descriptor{
	id:       "youtube-music",
	name:     "YouTube Music",
	category: CategoryDSP,
	patterns: []*regexp.Regexp{domainPattern("music.youtube.com")},
}

var youtube = &descriptor{
	id:       "youtube",
	name:     "YouTube",
	category: CategorySocial,
	patterns: []*regexp.Regexp{domainPattern("youtube.com"), domainPattern("youtu.be")},
	extract: func(u *url.URL) string {
		// Short links carry the video id as the first segment.
		if strings.HasSuffix(strings.ToLower(u.Host), "youtu.be") {
			if id := firstPathSegment(u); watchVideoRe.MatchString(id) {
				return id
			}
			return ""
		}
		switch firstPathSegment(u) {
		case "watch":
			if id := u.Query().Get("v"); watchVideoRe.MatchString(id) {
				return id
			}
		case "shorts":
			parts := strings.SplitN(strings.TrimPrefix(u.Path, "/shorts/"), "/", 2)
			if len(parts) > 0 && watchVideoRe.MatchString(parts[0]) {
				return parts[0]
			}
		}
		return ""
	},
	iosURI:     func(id string) string { return "youtube://watch?v=" + id },
	intentRef:  func(id string) string { return "www.youtube.com/watch?v=" + id },
	androidPkg: "com.google.android.youtube",
}

// facebook profile deep links require a numeric profile id that the
// public URL does not carry, so no native scheme is attempted.
var facebook = &descriptor{
	id:       "facebook",
	name:     "Facebook",
	category: CategorySocial,
	patterns: []*regexp.Regexp{domainPattern("facebook.com"), domainPattern("fb.com")},
	extract: func(u *url.URL) string {
		seg := firstPathSegment(u)
		if !genericUserRe.MatchString(seg) {
			return ""
		}
		return seg
	},
}

var snapchat = &descriptor{
	id:       "snapchat",
	name:     "Snapchat",
	category: CategorySocial,
	patterns: []*regexp.Regexp{domainPattern("snapchat.com")},
	extract: func(u *url.URL) string {
		if firstPathSegment(u) != "add" {
			return ""
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 2 || !genericUserRe.MatchString(parts[1]) {
			return ""
		}
		return parts[1]
	},
	valid:      regexp.MustCompile(`^/add/[A-Za-z0-9._-]+/?$`),
	iosURI:     func(id string) string { return "snapchat://add/" + id },
	intentRef:  func(id string) string { return "www.snapchat.com/add/" + id },
	androidPkg: "com.snapchat.android",
}

var twitch = &descriptor{
	id:       "twitch",
	name:     "Twitch",
	category: CategorySocial,
	patterns: []*regexp.Regexp{domainPattern("twitch.tv")},
	extract: func(u *url.URL) string {
		seg := firstPathSegment(u)
		switch strings.ToLower(seg) {
		case "", "directory", "videos", "settings":
			return ""
		}
		if !genericUserRe.MatchString(seg) {
			return ""
		}
		return seg
	},
	iosURI:     func(id string) string { return "twitch://stream/" + id },
	intentRef:  func(id string) string { return "www.twitch.tv/" + id },
	androidPkg: "tv.twitch.android.app",
}

var telegram = &descriptor{
	id:       "telegram",
	name:     "Telegram",
	category: CategorySocial,
	patterns: []*regexp.Regexp{domainPattern("t.me"), domainPattern("telegram.me")},
	extract: func(u *url.URL) string {
		seg := firstPathSegment(u)
		if !genericUserRe.MatchString(seg) {
			return ""
		}
		return seg
	},
	iosURI:     func(id string) string { return "tg://resolve?domain=" + id },
	intentRef:  func(id string) string { return "t.me/" + id },
	androidPkg: "org.telegram.messenger",
}

var spotify = &descriptor{
	id:       "spotify",
	name:     "Spotify",
	category: CategoryDSP,
	patterns: []*regexp.Regexp{domainPattern("open.spotify.com"), domainPattern("spotify.com")},
	extract: func(u *url.URL) string {
		m := spotifyPathRe.FindStringSubmatch(u.Path)
		if m == nil {
			return ""
		}
		return m[1] + "/" + m[2]
	},
	valid:      spotifyPathRe,
	iosURI:     func(id string) string { return "spotify://" + id },
	intentRef:  func(id string) string { return "open.spotify.com/" + id },
	androidPkg: "com.spotify.music",
}

var appleMusic = &descriptor{
	id:       "apple-music",
	name:     "Apple Music",
	category: CategoryDSP,
	patterns: []*regexp.Regexp{domainPattern("music.apple.com")},
	extract: func(u *url.URL) string {
		return strings.Trim(u.Path, "/")
	},
	iosURI:     func(id string) string { return "music://music.apple.com/" + id },
	intentRef:  func(id string) string { return "music.apple.com/" + id },
	androidPkg: "com.apple.android.music",
}

// soundcloud native URIs require internal numeric ids; the app claims
// https links via app links, so web fallback is the right behavior.
var soundcloud = &descriptor{
	id:       "soundcloud",
	name:     "SoundCloud",
	category: CategoryDSP,
	patterns: []*regexp.Regexp{domainPattern("soundcloud.com")},
	extract: func(u *url.URL) string {
		seg := firstPathSegment(u)
		if !genericUserRe.MatchString(seg) {
			return ""
		}
		return seg
	},
}

var deezer = &descriptor{
	id:       "deezer",
	name:     "Deezer",
	category: CategoryDSP,
	patterns: []*regexp.Regexp{domainPattern("deezer.com")},
	extract: func(u *url.URL) string {
		m := deezerPathRe.FindStringSubmatch(u.Path)
		if m == nil {
			return ""
		}
		return m[1] + "/" + m[2]
	},
	valid:      deezerPathRe,
	iosURI:     func(id string) string { return "deezer://www.deezer.com/" + id },
	intentRef:  func(id string) string { return "www.deezer.com/" + id },
	androidPkg: "deezer.android.app",
}
