package jolpica

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/f1-fantasy/internal/platform/logging"
	"github.com/riskibarqy/f1-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/f1-fantasy/internal/usecase"
)

const (
	defaultBaseURL = "https://api.jolpi.ca/ergast/f1"
	defaultTimeout = 20 * time.Second
	// The API pages at 30 rows by default; one request covers a full
	// grid plus every pit stop of a round at this limit.
	defaultPageLimit = "100"
	maxResponseBytes = 6 << 20
)

var errJolpicaTransient = crerr.New("jolpica transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client implements usecase.RaceDataProvider against the jolpica-f1 API.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchSchedule(ctx context.Context, season int) ([]usecase.ExternalRace, error) {
	var envelope mrDataEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/%d.json", season), &envelope); err != nil {
		return nil, fmt.Errorf("fetch schedule season=%d: %w", season, err)
	}

	out := make([]usecase.ExternalRace, 0, len(envelope.MRData.RaceTable.Races))
	for _, race := range envelope.MRData.RaceTable.Races {
		round := parseWireInt(race.Round)
		if round <= 0 || race.Circuit.CircuitID == "" {
			continue
		}
		out = append(out, usecase.ExternalRace{
			Season:   season,
			Round:    round,
			RaceID:   fmt.Sprintf("%d-%s", season, race.Circuit.CircuitID),
			RaceName: strings.TrimSpace(race.RaceName),
			Circuit:  strings.TrimSpace(race.Circuit.CircuitName),
			Date:     parseRaceDate(race.Date, race.Time),
		})
	}
	return out, nil
}

func (c *Client) FetchQualifyingResults(ctx context.Context, season, round int) ([]usecase.ExternalQualifyingResult, error) {
	var envelope mrDataEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/%d/%d/qualifying.json", season, round), &envelope); err != nil {
		return nil, fmt.Errorf("fetch qualifying season=%d round=%d: %w", season, round, err)
	}

	var out []usecase.ExternalQualifyingResult
	for _, race := range envelope.MRData.RaceTable.Races {
		for _, item := range race.QualifyingResults {
			out = append(out, usecase.ExternalQualifyingResult{
				DriverID:      item.Driver.DriverID,
				ConstructorID: item.Constructor.ConstructorID,
				Position:      parseWireInt(item.Position),
				Q2Time:        strings.TrimSpace(item.Q2),
				Q3Time:        strings.TrimSpace(item.Q3),
			})
		}
	}
	return out, nil
}

func (c *Client) FetchRaceResults(ctx context.Context, season, round int) ([]usecase.ExternalRaceResult, error) {
	items, err := c.fetchRawRaceResults(ctx, season, round)
	if err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalRaceResult, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ExternalRaceResult{
			DriverID:      item.Driver.DriverID,
			ConstructorID: item.Constructor.ConstructorID,
			GridPosition:  parseWireInt(item.Grid),
			Position:      classifiedPosition(item),
			Status:        strings.TrimSpace(item.Status),
			FastestLap:    hadFastestLap(item),
		})
	}
	return out, nil
}

// FetchPitStopSummaries reduces per-driver stops to one fastest stop per
// constructor. The pit stop feed only carries driver ids, so the race result
// feed provides the driver-to-constructor mapping. Season pit stop records
// are not published by the API; the flag stays false.
func (c *Client) FetchPitStopSummaries(ctx context.Context, season, round int) ([]usecase.ExternalPitStopSummary, error) {
	var envelope mrDataEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/%d/%d/pitstops.json", season, round), &envelope); err != nil {
		return nil, fmt.Errorf("fetch pit stops season=%d round=%d: %w", season, round, err)
	}

	raceResults, err := c.fetchRawRaceResults(ctx, season, round)
	if err != nil {
		return nil, err
	}
	constructorByDriver := make(map[string]string, len(raceResults))
	for _, item := range raceResults {
		constructorByDriver[item.Driver.DriverID] = item.Constructor.ConstructorID
	}

	fastestByConstructor := make(map[string]time.Duration)
	order := make([]string, 0, 10)
	for _, race := range envelope.MRData.RaceTable.Races {
		for _, stop := range race.PitStops {
			constructorID := constructorByDriver[stop.DriverID]
			if constructorID == "" {
				continue
			}
			duration := parsePitDuration(stop.Duration)
			if duration <= 0 {
				continue
			}
			current, seen := fastestByConstructor[constructorID]
			if !seen {
				order = append(order, constructorID)
			}
			if !seen || duration < current {
				fastestByConstructor[constructorID] = duration
			}
		}
	}

	out := make([]usecase.ExternalPitStopSummary, 0, len(order))
	for _, constructorID := range order {
		out = append(out, usecase.ExternalPitStopSummary{
			ConstructorID: constructorID,
			FastestStop:   fastestByConstructor[constructorID],
		})
	}
	return out, nil
}

func (c *Client) fetchRawRaceResults(ctx context.Context, season, round int) ([]raceResultItem, error) {
	var envelope mrDataEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/%d/%d/results.json", season, round), &envelope); err != nil {
		return nil, fmt.Errorf("fetch race results season=%d round=%d: %w", season, round, err)
	}

	var out []raceResultItem
	for _, race := range envelope.MRData.RaceTable.Races {
		out = append(out, race.Results...)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "jolpica circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: race data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := buildRequestURL(c.baseURL, path)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errJolpicaTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

// executeRequest runs one fetch with linear backoff. fasthttp has no request
// context, so cancellation is checked between attempts.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.doOnce(fullURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errJolpicaTransient, err)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: provider status=%d body=%s", errJolpicaTransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "jolpica request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, 0, err
	}

	// Copy before release; fasthttp reuses response buffers.
	raw := append([]byte(nil), resp.Body()...)
	return raw, resp.StatusCode(), nil
}

func buildRequestURL(baseURL, path string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(baseURL)
	_, _ = buf.WriteString(path)
	if strings.ContainsRune(path, '?') {
		_, _ = buf.WriteString("&limit=")
	} else {
		_, _ = buf.WriteString("?limit=")
	}
	_, _ = buf.WriteString(defaultPageLimit)
	return buf.String()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const maxLen = 512
	body := strings.TrimSpace(string(raw))
	if len(body) > maxLen {
		return body[:maxLen] + "...(truncated)"
	}
	return body
}
