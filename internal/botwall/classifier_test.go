package botwall

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	revealEndpoint = "/link"
	publicEndpoint = "/out"
)

func newTestClassifier(opts ...Option) *Classifier {
	return New([]string{revealEndpoint}, opts...)
}

func TestClassifyMetaCrawlers(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name      string
		ua        string
		endpoint  string
		wantBlock bool
	}{
		{
			name:      "facebookexternalhit on reveal endpoint",
			ua:        "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)",
			endpoint:  revealEndpoint,
			wantBlock: true,
		},
		{
			name:      "meta-externalagent on reveal endpoint",
			ua:        "meta-externalagent/1.1",
			endpoint:  revealEndpoint,
			wantBlock: true,
		},
		{
			name:      "facebookexternalhit on public route is never blocked",
			ua:        "facebookexternalhit/1.1",
			endpoint:  publicEndpoint,
			wantBlock: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := c.Classify(tt.ua, "203.0.113.9", tt.endpoint)
			assert.True(t, cl.IsBot)
			assert.True(t, cl.IsMeta)
			assert.Equal(t, tt.wantBlock, cl.ShouldBlock)
		})
	}
}

// Non-Meta crawlers must never be blocked on any endpoint, sensitive or
// not. Serving them differently from humans is exactly the cloaking
// signal the gateway exists to avoid.
func TestClassifyCrawlerNonDiscrimination(t *testing.T) {
	c := newTestClassifier()

	crawlers := []string{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"Mozilla/5.0 (compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm)",
		"Twitterbot/1.0",
		"LinkedInBot/1.0 (compatible; Mozilla/5.0)",
		"Mozilla/5.0 (compatible; Discordbot/2.0; +https://discordapp.com)",
		"Slackbot-LinkExpanding 1.0",
		"TelegramBot (like TwitterBot)",
		"WhatsApp/2.23.20",
		"Mozilla/5.0 (compatible; YandexBot/3.0)",
	}

	for _, ua := range crawlers {
		for _, endpoint := range []string{revealEndpoint, publicEndpoint, "/anything"} {
			cl := c.Classify(ua, "198.51.100.7", endpoint)
			assert.True(t, cl.IsBot, "ua=%s", ua)
			assert.False(t, cl.IsMeta, "ua=%s", ua)
			assert.False(t, cl.ShouldBlock, "ua=%s endpoint=%s", ua, endpoint)
		}
	}
}

func TestClassifyHumansPassThrough(t *testing.T) {
	c := newTestClassifier()

	agents := []string{
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		"",
	}

	for _, ua := range agents {
		cl := c.Classify(ua, "192.0.2.4", revealEndpoint)
		assert.False(t, cl.IsBot, "ua=%s", ua)
		assert.False(t, cl.ShouldBlock, "ua=%s", ua)
	}
}

type fakeASN struct {
	isMeta bool
	err    error
}

func (f fakeASN) IsMetaNetwork(string) (bool, error) { return f.isMeta, f.err }

func TestClassifyASNConfirmation(t *testing.T) {
	// Browser UA from a Meta network: blocked on the sensitive endpoint.
	c := newTestClassifier(WithASNLookup(fakeASN{isMeta: true}))
	cl := c.Classify("Mozilla/5.0 (X11; Linux x86_64)", "157.240.1.1", revealEndpoint)
	assert.True(t, cl.IsMeta)
	assert.True(t, cl.ShouldBlock)

	// Same network, public endpoint: classified, not blocked.
	cl = c.Classify("Mozilla/5.0 (X11; Linux x86_64)", "157.240.1.1", publicEndpoint)
	assert.True(t, cl.IsMeta)
	assert.False(t, cl.ShouldBlock)
}

// ASN lookup failures must default to not flagging as Meta: false
// negatives are acceptable, blocking a real user is not.
func TestClassifyASNFailOpen(t *testing.T) {
	c := newTestClassifier(WithASNLookup(fakeASN{isMeta: true, err: errors.New("lookup timeout")}))

	cl := c.Classify("Mozilla/5.0 (X11; Linux x86_64)", "157.240.1.1", revealEndpoint)
	assert.False(t, cl.IsMeta)
	assert.False(t, cl.ShouldBlock)
}
