// Package listing fetches the raw content list from the remote media host
// and maps it into domain items. The client fails soft: any transport or
// decode problem yields the persisted last-known list, or an empty list,
// never a raw error.
package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vaultfeed/vaultfeed/internal/domain"
)

// listingKey stores the last successfully mapped list.
const listingKey = "listing:last"

// DefaultCategories is the official category wheel. Items are assigned a
// category round-robin at ingestion when the host provides none.
var DefaultCategories = []string{
	"encounters",
	"true-stories",
	"creatures",
	"close-calls",
	"hauntings",
	"comedy",
	"moments",
	"shock",
}

// Client talks to a tag-scoped resource list endpoint
// (<base>/<cloud>/video/list/<tag>.json) and derives playable items from
// the raw resources.
type Client struct {
	baseURL    string
	cloudName  string
	tag        string
	categories []string
	httpClient *http.Client
	kv         domain.KV
	logger     *slog.Logger
	now        func() time.Time
}

func NewClient(baseURL, cloudName, tag string, categories []string, kv domain.KV, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Client{
		baseURL:    baseURL,
		cloudName:  cloudName,
		tag:        tag,
		categories: categories,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		kv:         kv,
		logger:     logger,
		now:        time.Now,
	}
}

// SetHTTPClient swaps the transport.
func (c *Client) SetHTTPClient(hc *http.Client) { c.httpClient = hc }

// rawResource is the host's wire shape for one uploaded video.
type rawResource struct {
	PublicID  string    `json:"public_id"`
	Version   int64     `json:"version"`
	Format    string    `json:"format"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
	Context   struct {
		Custom struct {
			Caption    string `json:"caption"`
			IsFeatured string `json:"isFeatured"`
		} `json:"custom"`
	} `json:"context"`
}

type listResponse struct {
	Resources []rawResource `json:"resources"`
}

// FetchContent implements domain.ContentLister. The cache-busting timestamp
// mirrors what the host expects for its list endpoint.
func (c *Client) FetchContent(ctx context.Context) ([]domain.ContentItem, error) {
	url := fmt.Sprintf("%s/%s/video/list/%s.json?t=%d", c.baseURL, c.cloudName, c.tag, c.now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return c.lastKnown(), nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("listing fetch failed, using last-known list", "error", err)
		return c.lastKnown(), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("listing host refused request, using last-known list", "status", resp.StatusCode)
		return c.lastKnown(), nil
	}

	var payload listResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("malformed listing payload, using last-known list", "error", err)
		return c.lastKnown(), nil
	}

	items := make([]domain.ContentItem, 0, len(payload.Resources))
	for i, res := range payload.Resources {
		items = append(items, c.mapResource(res, i))
	}

	c.persist(items)
	c.logger.Debug("fetched content list", "count", len(items))
	return items, nil
}

// mapResource derives a ContentItem from a raw resource. Kind comes from
// the aspect ratio, once, at ingestion.
func (c *Client) mapResource(res rawResource, index int) domain.ContentItem {
	kind := domain.KindLong
	if res.Height > res.Width {
		kind = domain.KindShort
	}

	base := fmt.Sprintf("%s/%s/video/upload", c.baseURL, c.cloudName)
	mediaURL := fmt.Sprintf("%s/q_auto,f_auto/v%d/%s.%s", base, res.Version, res.PublicID, res.Format)
	posterURL := fmt.Sprintf("%s/q_auto,f_auto,so_0/v%d/%s.jpg", base, res.Version, res.PublicID)

	category := c.categories[index%len(c.categories)]
	title := res.Context.Custom.Caption
	if title == "" {
		title = fmt.Sprintf("%s clip %d", category, index+1)
	}

	return domain.ContentItem{
		ID:          res.PublicID,
		AlternateID: baseName(res.PublicID),
		MediaURL:    mediaURL,
		PosterURL:   posterURL,
		Kind:        kind,
		Title:       title,
		Category:    category,
		CreatedAt:   res.CreatedAt,
		IsFeatured:  res.Context.Custom.IsFeatured == "true",
	}
}

// baseName strips any folder prefix from a public id. Uploads may live in a
// folder, but links and rankings refer to the bare name.
func baseName(publicID string) string {
	if i := strings.LastIndexByte(publicID, '/'); i >= 0 {
		return publicID[i+1:]
	}
	return publicID
}

func (c *Client) persist(items []domain.ContentItem) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.kv.Set(listingKey, data); err != nil {
		c.logger.Warn("failed to persist listing snapshot", "error", err)
	}
}

// lastKnown returns the persisted snapshot, or an empty list if there is
// none or it no longer parses.
func (c *Client) lastKnown() []domain.ContentItem {
	data, ok := c.kv.Get(listingKey)
	if !ok {
		return nil
	}
	var items []domain.ContentItem
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn("corrupt listing snapshot discarded", "error", err)
		return nil
	}
	return items
}
