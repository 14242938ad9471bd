package jellyfin

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"jellyterm/internal/domain"
)

const (
	defaultTimeout = 60 * time.Second

	// Field projection used by every catalog and home-section query
	itemFields = "Path,Overview,CommunityRating,CriticRating,RunTimeTicks"

	// Home sections are capped server-side
	homeSectionLimit = "12"
)

// Client is the authenticated Jellyfin API client. It owns the session
// credentials and transparently re-authenticates once when the server
// rejects the current token.
type Client struct {
	baseURL  string
	username string
	password string
	deviceID string

	httpClient *http.Client
	cache      *Cache
	logger     *slog.Logger

	// Replaced wholesale on every successful authentication. Never mutated
	// concurrently with a request in flight: the client runs requests on a
	// single logical thread of control.
	creds *domain.Credentials
}

// NewClient creates a Jellyfin client. Authenticate must be called before
// any other operation.
func NewClient(baseURL, username, password, deviceID string, acceptSelfSigned bool, cache *Cache, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{Timeout: defaultTimeout}
	if acceptSelfSigned {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		deviceID:   deviceID,
		httpClient: httpClient,
		cache:      cache,
		logger:     logger,
	}
}

// Credentials returns a copy of the current session credentials
func (c *Client) Credentials() domain.Credentials {
	if c.creds == nil {
		return domain.Credentials{}
	}
	return *c.creds
}

// Authenticate exchanges the configured username/password for a fresh access
// token and user profile, replacing any previous session wholesale.
func (c *Client) Authenticate(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"Username": c.username,
		"Pw":       c.password,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/Users/AuthenticateByName", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Emby-Authorization", c.authHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("auth request failed", "error", err)
		return domain.ErrServerOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("auth error", "status", resp.StatusCode, "body", string(respBody))
		return fmt.Errorf("authentication failed with status %d", resp.StatusCode)
	}

	var auth authResponse
	if err := json.Unmarshal(respBody, &auth); err != nil {
		return fmt.Errorf("failed to parse auth response: %w", err)
	}

	c.creds = &domain.Credentials{
		Token:    auth.AccessToken,
		UserID:   auth.User.ID,
		Username: auth.User.Name,
		Preferences: domain.PlayPreferences{
			AudioLanguage:         auth.User.Configuration.AudioLanguagePreference,
			PlayDefaultAudioTrack: auth.User.Configuration.PlayDefaultAudioTrack,
			SubtitleLanguage:      auth.User.Configuration.SubtitleLanguagePreference,
		},
	}

	c.logger.Info("authenticated", "user", auth.User.Name)
	return nil
}

// authHeader constructs the X-Emby-Authorization header
func (c *Client) authHeader() string {
	device, err := os.Hostname()
	if err != nil || device == "" {
		device = "unknown-device"
	}
	return fmt.Sprintf(
		`MediaBrowser Client="jellyterm", Device="%s", DeviceId="%s", Version="1.0.0"`,
		device, c.deviceID)
}

// do executes an authenticated request. When the server rejects the current
// token it re-authenticates exactly once and retries the same request; a
// second rejection surfaces as ErrTokenRejected with no further retries.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	respBody, status, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		c.logger.Info("token no longer valid, re-authenticating", "path", path)
		if err := c.Authenticate(ctx); err != nil {
			return nil, fmt.Errorf("re-authentication failed: %w", err)
		}
		respBody, status, err = c.send(ctx, method, path, query, body)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			return nil, domain.ErrTokenRejected
		}
	}

	if status < 200 || status >= 300 {
		c.logger.Error("request error", "method", method, "path", path, "status", status, "body", string(respBody))
		return nil, fmt.Errorf("unexpected status code: %d", status)
	}

	return respBody, nil
}

// send performs one request attempt with the current token attached
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, int, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		req.Header.Set("X-MediaBrowser-Token", c.creds.Token)
	}

	c.logger.Debug("jellyfin request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("jellyfin request failed", "error", err, "path", path)
		return nil, 0, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

// FetchCatalog returns the full catalog, preferring the on-disk cache. A
// cache miss triggers one recursive item query and persists the result.
func (c *Client) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	if catalog, ok := c.cache.Load(); ok {
		c.logger.Info("loaded catalog from cache", "items", len(catalog))
		return catalog, nil
	}

	query := url.Values{}
	query.Set("Recursive", "true")
	query.Set("Fields", itemFields)
	query.Set("IncludeItemTypes", "Movie,Series,Episode")
	query.Set("SortBy", "SortName")
	query.Set("SortOrder", "Ascending")

	path := fmt.Sprintf("/Users/%s/Items", c.creds.UserID)
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var resp itemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse items response: %w", err)
	}

	catalog := make(domain.Catalog, len(resp.Items))
	for _, it := range resp.Items {
		catalog[it.ID] = mapItem(it)
	}

	if err := c.cache.Save(catalog); err != nil {
		return nil, err
	}

	c.logger.Info("fetched catalog", "items", len(catalog))
	return catalog, nil
}

// FetchHomeSections returns the three curated home lists, each capped at 12
func (c *Client) FetchHomeSections(ctx context.Context) (*domain.HomeSections, error) {
	resume, err := c.fetchSection(ctx, fmt.Sprintf("/Users/%s/Items/Resume", c.creds.UserID), url.Values{
		"Limit":  {homeSectionLimit},
		"Fields": {itemFields},
	})
	if err != nil {
		return nil, err
	}

	nextUp, err := c.fetchSection(ctx, "/Shows/NextUp", url.Values{
		"UserId": {c.creds.UserID},
		"Limit":  {homeSectionLimit},
		"Fields": {itemFields},
	})
	if err != nil {
		return nil, err
	}

	latest, err := c.fetchSection(ctx, fmt.Sprintf("/Users/%s/Items", c.creds.UserID), url.Values{
		"Limit":            {homeSectionLimit},
		"Fields":           {itemFields},
		"IncludeItemTypes": {"Movie,Series"},
		"SortBy":           {"DateCreated,SortName"},
		"SortOrder":        {"Descending"},
		"Recursive":        {"true"},
	})
	if err != nil {
		return nil, err
	}

	return &domain.HomeSections{
		Resume:      resume,
		NextUp:      nextUp,
		LatestAdded: latest,
	}, nil
}

// fetchSection runs one capped item query and maps the results in order
func (c *Client) fetchSection(ctx context.Context, path string, query url.Values) ([]domain.MediaItem, error) {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var resp itemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse items response: %w", err)
	}

	return mapItems(resp.Items), nil
}

// RefreshCache deletes the persisted catalog and re-runs both fetches
func (c *Client) RefreshCache(ctx context.Context) (domain.Catalog, *domain.HomeSections, error) {
	if err := c.cache.Delete(); err != nil {
		return nil, nil, err
	}

	catalog, err := c.FetchCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	sections, err := c.FetchHomeSections(ctx)
	if err != nil {
		return nil, nil, err
	}

	return catalog, sections, nil
}

// deviceProfile is the direct-play profile sent with playback-info lookups
var deviceProfile = map[string]any{
	"DeviceProfile": map[string]any{
		"MaxStreamingBitrate": 140000000,
		"DirectPlayProfiles": []map[string]string{
			{
				"Container":  "mkv,mp4,avi",
				"Type":       "Video",
				"VideoCodec": "h264,hevc,mpeg4,mpeg2video",
				"AudioCodec": "aac,mp3,ac3,eac3,flac,vorbis,opus",
			},
		},
		"TranscodingProfiles": []map[string]string{},
	},
}

// PlaybackInfo looks up the runtime ticks of the item's first media source
func (c *Client) PlaybackInfo(ctx context.Context, itemID string) (int64, error) {
	path := fmt.Sprintf("/Items/%s/PlaybackInfo", itemID)
	body, err := c.do(ctx, http.MethodPost, path, nil, deviceProfile)
	if err != nil {
		return 0, err
	}

	var resp playbackInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse playback info: %w", err)
	}
	if len(resp.MediaSources) == 0 {
		return 0, domain.ErrNoMediaSource
	}

	return resp.MediaSources[0].RunTimeTicks, nil
}

// PlaybackPosition returns the stored resume position for an item in ticks.
// An item never played reports zero.
func (c *Client) PlaybackPosition(ctx context.Context, itemID string) (int64, error) {
	path := fmt.Sprintf("/UserItems/%s/UserData", itemID)
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return 0, err
	}

	var data userData
	if err := json.Unmarshal(body, &data); err != nil {
		return 0, fmt.Errorf("failed to parse user data: %w", err)
	}

	return data.PlaybackPositionTicks, nil
}

// ReportProgress pushes the current playback position to the server
func (c *Client) ReportProgress(ctx context.Context, itemID string, positionTicks int64) error {
	_, err := c.do(ctx, http.MethodPost, "/Sessions/Playing/Progress", nil, progressReport{
		ItemID:        itemID,
		PositionTicks: positionTicks,
	})
	return err
}

// ReportPaused pushes a pause-state change along with the last known position
func (c *Client) ReportPaused(ctx context.Context, itemID string, positionTicks int64, paused bool) error {
	_, err := c.do(ctx, http.MethodPost, "/Sessions/Playing/Progress", nil, progressReport{
		ItemID:        itemID,
		PositionTicks: positionTicks,
		IsPaused:      &paused,
	})
	return err
}

// ReportStopped notifies the server that playback ended at the given position
func (c *Client) ReportStopped(ctx context.Context, itemID string, positionTicks int64) error {
	_, err := c.do(ctx, http.MethodPost, "/Sessions/Playing/Stopped", nil, progressReport{
		ItemID:        itemID,
		PositionTicks: positionTicks,
	})
	return err
}

// StreamURL returns the direct stream URL for an item, carrying the current
// token as the tag parameter
func (c *Client) StreamURL(itemID string) string {
	return fmt.Sprintf("%s/Videos/%s/stream?static=true&mediaSourceId=%s&tag=%s",
		c.baseURL, itemID, itemID, c.creds.Token)
}
