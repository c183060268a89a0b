package likerid

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/likecoin/likerid-ens-gateway/interfaces"
	"github.com/tidwall/gjson"
)

const maxBodySize = 1024 * 1024

var ErrMalformedProfile = errors.New("malformed profile response")

// ProfileClient fetches user profiles from the Liker ID API.
type ProfileClient struct {
	baseURL string
	client  *http.Client
}

// NewProfileClient creates a client for the API rooted at baseURL, see
// APIBaseURL. timeout bounds each request; zero means no timeout.
func NewProfileClient(baseURL string, timeout time.Duration) *ProfileClient {
	return &ProfileClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchProfile implements interfaces.ProfileFetcher.
func (c *ProfileClient) FetchProfile(ctx context.Context, likerID string, defaults interfaces.Profile) interfaces.FetchOutcome {
	endpoint := fmt.Sprintf("%s/users/id/%s/min", c.baseURL, url.PathEscape(likerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return interfaces.FetchFailed(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return interfaces.FetchFailed(fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return interfaces.NotFound()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return interfaces.FetchFailed(fmt.Errorf("identity service returned %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return interfaces.FetchFailed(fmt.Errorf("failed to read response: %w", err))
	}

	profile, err := parseProfile(body, defaults)
	if err != nil {
		return interfaces.FetchFailed(err)
	}

	return interfaces.Found(profile)
}

// parseProfile overlays the fields present in body onto defaults. A field
// present in body always wins, even when its value is empty or not a string,
// in which case the field is treated as absent.
func parseProfile(body []byte, defaults interfaces.Profile) (*interfaces.Profile, error) {
	profile := defaults

	if len(bytes.TrimSpace(body)) == 0 {
		return &profile, nil
	}

	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedProfile
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return &profile, nil
	}

	for _, field := range interfaces.ProfileFields {
		value := parsed.Get(string(field))
		if !value.Exists() {
			continue
		}
		if value.Type == gjson.String {
			profile.SetField(field, value.Str)
		} else {
			profile.SetField(field, "")
		}
	}

	return &profile, nil
}
