// Package botwall classifies inbound requests as human, crawler, or
// Meta-family crawler, and decides a conservative block policy.
//
// Anti-cloaking is the governing constraint: the gateway must serve
// identical content to every crawler and to humans on all non-gated
// routes. Only Meta-family crawlers probing the sensitive reveal
// endpoints are ever eligible for blocking; everything else is
// classified for observability and passed through.
package botwall

import (
	"strings"
	"time"
)

// Classification is the outcome of one request inspection.
type Classification struct {
	IsBot       bool
	IsMeta      bool
	Reason      string
	ShouldBlock bool
}

// LogEntry is the append-only audit record written for observability.
// It is never read back on the hot path.
type LogEntry struct {
	IP            string    `json:"ip"`
	UserAgent     string    `json:"user_agent"`
	ASN           string    `json:"asn,omitempty"`
	BlockedReason string    `json:"blocked_reason,omitempty"`
	Endpoint      string    `json:"endpoint"`
	Timestamp     time.Time `json:"timestamp"`
}

// metaAgents is the small, high-confidence Meta/Facebook crawler set.
var metaAgents = []string{
	"facebookexternalhit",
	"facebookcatalog",
	"facebookbot",
	"meta-externalagent",
	"meta-externalfetcher",
}

// crawlerAgents is the broader set of known search and social crawlers.
// These are classified but never blocked.
var crawlerAgents = []string{
	"googlebot",
	"adsbot-google",
	"apis-google",
	"mediapartners-google",
	"bingbot",
	"bingpreview",
	"slurp", // Yahoo
	"duckduckbot",
	"yandexbot",
	"baiduspider",
	"twitterbot",
	"linkedinbot",
	"pinterestbot",
	"discordbot",
	"slackbot",
	"telegrambot",
	"whatsapp",
	"applebot",
	"ahrefsbot",
	"semrushbot",
	"mj12bot",
	"petalbot",
	"bytespider",
}

// Classifier labels requests using user agent, client IP, and the
// endpoint being hit. It is a pure in-memory computation except for the
// optional ASN lookup, whose failures are absorbed.
type Classifier struct {
	asn                ASNLookup
	sensitiveEndpoints map[string]struct{}
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithASNLookup installs an IP-to-ASN lookup used only as secondary
// confirmation of Meta ownership. The default lookup never confirms.
func WithASNLookup(lookup ASNLookup) Option {
	return func(c *Classifier) { c.asn = lookup }
}

// New builds a Classifier. sensitiveEndpoints is the narrow allow-list
// of internal endpoints where Meta crawlers may be blocked; all other
// endpoints are never-block.
func New(sensitiveEndpoints []string, opts ...Option) *Classifier {
	c := &Classifier{
		asn:                noASNLookup{},
		sensitiveEndpoints: make(map[string]struct{}, len(sensitiveEndpoints)),
	}
	for _, e := range sensitiveEndpoints {
		c.sensitiveEndpoints[e] = struct{}{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify labels one request. Unknown agents are never blocked here;
// throttling unknowns is the rate limiter's job.
func (c *Classifier) Classify(userAgent, ip, endpoint string) Classification {
	ua := strings.ToLower(userAgent)

	if agent := matchAgent(ua, metaAgents); agent != "" {
		return c.classifyMeta(agent, endpoint)
	}

	if agent := matchAgent(ua, crawlerAgents); agent != "" {
		return Classification{
			IsBot:  true,
			Reason: "crawler:" + agent,
		}
	}

	// Secondary confirmation by network ownership. A lookup failure
	// must default to not-Meta: false negatives are acceptable, false
	// positives (blocking real users) are not.
	if isMeta, err := c.asn.IsMetaNetwork(ip); err == nil && isMeta {
		return c.classifyMeta("asn", endpoint)
	}

	return Classification{}
}

func (c *Classifier) classifyMeta(agent, endpoint string) Classification {
	cl := Classification{
		IsBot:  true,
		IsMeta: true,
		Reason: "meta:" + agent,
	}
	if _, sensitive := c.sensitiveEndpoints[endpoint]; sensitive {
		cl.ShouldBlock = true
	}
	return cl
}

func matchAgent(ua string, agents []string) string {
	for _, agent := range agents {
		if strings.Contains(ua, agent) {
			return agent
		}
	}
	return ""
}
