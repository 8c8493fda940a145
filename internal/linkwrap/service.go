package linkwrap

import (
	"context"
	"net/url"
	"time"

	"github.com/beaconbio/linkgate/internal/botwall"
	"github.com/beaconbio/linkgate/internal/logger"
	"github.com/beaconbio/linkgate/internal/resolve"
)

// EndpointReveal is the classifier/limiter key for the reveal endpoint.
// It belongs to the sensitive allow-list: the only place Meta crawlers
// may be blocked.
const EndpointReveal = "/link"

// SensitiveEndpoints is the narrow allow-list of internal endpoints
// eligible for Meta-crawler blocking.
var SensitiveEndpoints = []string{EndpointReveal}

// LinkStore is the persistence surface the gateway needs. A nil link
// with a nil error means "no such record".
type LinkStore interface {
	SaveLink(ctx context.Context, link *WrappedLink) error
	GetLink(ctx context.Context, shortID string) (*WrappedLink, error)
	DeleteLink(ctx context.Context, shortID string) error
}

// Limiter throttles reveal calls per (ip, endpoint). Implementations
// fail open: on internal errors they report "not limited".
type Limiter interface {
	Allow(ctx context.Context, ip, endpoint string) bool
}

// AuditSink records bot classifications for observability. Writes are
// best effort and must never fail the request.
type AuditSink interface {
	Append(ctx context.Context, entry botwall.LogEntry) error
}

// RequestMeta carries the per-request signals the reveal gate needs.
// Verified is the client's explicit confirmation click; the timestamp
// the client sends alongside it is informational only and not
// trust-bearing, so it never reaches this layer.
type RequestMeta struct {
	IP        string
	UserAgent string
	Verified  bool
}

// WrapRequest describes a destination to wrap at publish time.
type WrapRequest struct {
	DestinationURL string
	Kind           Kind
	Category       string
	TitleAlias     string
	TTL            time.Duration // 0 = no expiry
}

// Service is the link-wrapping gateway. All methods are safe for
// concurrent use; the only shared mutable state lives in the store.
type Service struct {
	store      LinkStore
	classifier *botwall.Classifier
	limiter    Limiter
	audit      AuditSink
	logger     logger.Logger
	now        func() time.Time
}

func NewService(store LinkStore, classifier *botwall.Classifier, limiter Limiter, audit AuditSink, log logger.Logger) *Service {
	return &Service{
		store:      store,
		classifier: classifier,
		limiter:    limiter,
		audit:      audit,
		logger:     log,
		now:        time.Now,
	}
}

// Wrap mints a short ID for a destination and persists the record.
// Category and title default from platform detection when the request
// leaves them empty.
func (s *Service) Wrap(ctx context.Context, req WrapRequest) (*WrappedLink, error) {
	normalized := resolve.Normalize(req.DestinationURL)
	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Host == "" || parsed.Scheme == "" {
		return nil, ErrInvalidDestination
	}

	kind := req.Kind
	if kind == "" {
		kind = KindNormal
	}

	category := req.Category
	title := req.TitleAlias
	platform := resolve.MatchPlatform(parsed.Hostname())
	if category == "" {
		category = string(platform.Category())
	}
	if title == "" {
		title = platform.SuggestedTitle(parsed)
	}

	link := &WrappedLink{
		ShortID:        MintShortID(),
		DestinationURL: normalized,
		Kind:           kind,
		Category:       category,
		Domain:         parsed.Hostname(),
		TitleAlias:     title,
		CreatedAt:      s.now(),
	}
	if req.TTL > 0 {
		expires := link.CreatedAt.Add(req.TTL)
		link.ExpiresAt = &expires
	}

	if err := s.store.SaveLink(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info("wrapped link created",
		logger.String("short_id", link.ShortID),
		logger.String("kind", string(link.Kind)),
		logger.String("domain", link.Domain))

	return link, nil
}

// Get looks up a wrapped link and fails closed: malformed IDs, missing
// records, store errors, and expired links all collapse to ErrNotFound.
// Revealing a destination requires successfully reading its record; a
// missing link can never default to "assume allowed".
func (s *Service) Get(ctx context.Context, shortID string) (*WrappedLink, error) {
	if !ValidShortID(shortID) {
		return nil, ErrNotFound
	}

	link, err := s.store.GetLink(ctx, shortID)
	if err != nil {
		s.logger.Error("wrapped link lookup failed",
			logger.String("short_id", shortID),
			logger.Error(err))
		return nil, ErrNotFound
	}
	if link == nil || link.Expired(s.now()) {
		return nil, ErrNotFound
	}
	return link, nil
}

/// Reveal runs the gated second phase of the reveal protocol: validate
// the short ID and expiry, re-run the bot gate and the rate limiter,
// then return the stored link. Validation happens strictly before the
// destination leaves the store. The caller performs the redirect
// client-side; the server never issues one for sensitive links.
func (s *Service) Reveal(ctx context.Context, shortID string, meta RequestMeta) (*WrappedLink, error) {
	link, err := s.Get(ctx, shortID)
	if err != nil {
		return nil, err
	}

	cl := s.classifier.Classify(meta.UserAgent, meta.IP, EndpointReveal)
	if cl.IsBot {
		s.appendAudit(ctx, meta, cl)
	}
	if cl.ShouldBlock {
		s.logger.Warn("reveal blocked",
			logger.String("short_id", shortID),
			logger.String("ip", meta.IP),
			logger.String("reason", cl.Reason))
		return nil, ErrBlocked
	}

	if !s.limiter.Allow(ctx, meta.IP, EndpointReveal) {
		return nil, ErrRateLimited
	}

	s.logger.Info("destination revealed",
		logger.String("short_id", shortID),
		logger.String("ip", meta.IP),
		logger.Bool("verified", meta.Verified))

	return link, nil
}

func (s *Service) appendAudit(ctx context.Context, meta RequestMeta, cl botwall.Classification) {
	if s.audit == nil {
		return
	}
	entry := botwall.LogEntry{
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Endpoint:  EndpointReveal,
		Timestamp: s.now(),
	}
	if cl.ShouldBlock {
		entry.BlockedReason = cl.Reason
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn("bot audit write failed", logger.Error(err))
	}
}
