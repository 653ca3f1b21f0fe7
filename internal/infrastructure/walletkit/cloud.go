package walletkit

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"wallet_connector/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
)

// DefaultCloudBaseURL is the WalletConnect Cloud explorer API.
const DefaultCloudBaseURL = "https://explorer-api.walletconnect.com"

// ProjectVerifier checks that a WalletConnect Cloud project ID is usable.
type ProjectVerifier interface {
	VerifyProject(ctx context.Context, projectID string) error
}

type verification struct {
	err error
}

// CloudVerifier asks the WalletConnect explorer API whether a project ID is accepted.
// Definitive answers (accepted or rejected) are cached for the configured TTL;
// transport failures are not cached.
type CloudVerifier struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	cache   *cache.Cache
	logger  Logger
}

// NewCloudVerifier creates a new CloudVerifier.
func NewCloudVerifier(baseURL string, timeout, ttl time.Duration, logger Logger) *CloudVerifier {
	if baseURL == "" {
		baseURL = DefaultCloudBaseURL
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &CloudVerifier{
		client:  &fasthttp.Client{Name: "wallet_connector"},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		cache:   cache.New(ttl, 2*ttl),
		logger:  logger,
	}
}

// VerifyProject implements ProjectVerifier.
func (v *CloudVerifier) VerifyProject(ctx context.Context, projectID string) error {
	if projectID == "" {
		return ErrMissingProjectID
	}
	if cached, ok := v.cache.Get(projectID); ok {
		res := cached.(verification)
		metrics.ProjectVerifications.WithLabelValues("cache", metrics.Result(res.err)).Inc()
		return res.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	requestURL := fmt.Sprintf("%s/v3/wallets?projectId=%s&entries=1&page=1", v.baseURL, url.QueryEscape(projectID))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = v.client.DoDeadline(req, resp, deadline)
	} else {
		err = v.client.DoTimeout(req, resp, v.timeout)
	}
	if err != nil {
		metrics.ProjectVerifications.WithLabelValues("remote", "error").Inc()
		v.logger.Error("WalletConnect Cloud request failed", "url", v.baseURL, "error", err)
		return fmt.Errorf("failed to execute request to %s: %w", v.baseURL, err)
	}

	var result error
	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusOK:
		result = nil
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		result = ErrInvalidProjectID
	default:
		metrics.ProjectVerifications.WithLabelValues("remote", "error").Inc()
		return fmt.Errorf("unexpected status %d from WalletConnect Cloud", status)
	}

	v.cache.Set(projectID, verification{err: result}, cache.DefaultExpiration)
	metrics.ProjectVerifications.WithLabelValues("remote", metrics.Result(result)).Inc()
	v.logger.Debug("WalletConnect Cloud project verified", "accepted", result == nil)
	return result
}
