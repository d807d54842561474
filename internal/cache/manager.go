// Package cache manages the lifecycle of locally stored media bytes:
// download with progress, persisted membership, and eviction. It works the
// same whether or not the network is reachable; every failure degrades to
// "not saved", never to an error that escapes the boundary.
package cache

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vaultfeed/vaultfeed/internal/domain"
)

const mediaKeyPrefix = "media:"

// progressStep bounds the callback rate: one call per whole percent of
// advancement, not one per chunk.
const progressStep = 0.01

// indeterminateScale shapes the asymptotic progress curve used when the
// remote host does not announce a content length.
const indeterminateScale = 4 << 20

// Manager is the offline cache. At most one download per URL is active at
// a time; a duplicate request is rejected immediately, never queued.
type Manager struct {
	kv     domain.KV
	inter  domain.Interactions
	client *http.Client
	logger *slog.Logger

	mu       sync.Mutex
	inflight map[string]*domain.DownloadTask
}

func NewManager(kv domain.KV, inter domain.Interactions, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		kv:       kv,
		inter:    inter,
		client:   &http.Client{Timeout: 2 * time.Minute},
		logger:   logger,
		inflight: make(map[string]*domain.DownloadTask),
	}
}

// SetHTTPClient swaps the transport. Timeouts are the transport's job: the
// manager treats a transport timeout like any other failure.
func (m *Manager) SetHTTPClient(c *http.Client) { m.client = c }

// Download streams the byte content at url into the persistent store.
// onProgress receives a non-decreasing fraction at a bounded rate and,
// on success only, a final exactly-1.0 call. Returns false on any failure:
// duplicate in-flight download, network error, non-success response,
// truncated body, storage quota. Never panics past this boundary.
func (m *Manager) Download(ctx context.Context, url string, onProgress domain.ProgressFunc) bool {
	task, err := m.begin(url)
	if err != nil {
		m.logger.Warn("download rejected", "url", url, "error", err)
		return false
	}

	ok := m.fetch(ctx, url, task, onProgress)
	m.finish(ctx, url, task, ok)
	return ok
}

// begin registers the in-flight task for url, enforcing the one-task-per-url
// rule.
func (m *Manager) begin(url string) (*domain.DownloadTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, active := m.inflight[url]; active {
		return nil, domain.ErrDownloadInFlight
	}
	task := &domain.DownloadTask{
		ID:        uuid.NewString(),
		URL:       url,
		Status:    domain.TaskPending,
		StartedAt: time.Now(),
	}
	m.inflight[url] = task
	return task, nil
}

func (m *Manager) finish(ctx context.Context, url string, task *domain.DownloadTask, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case ok:
		task.Status = domain.TaskSucceeded
	case ctx.Err() != nil:
		task.Status = domain.TaskCancelled
	default:
		task.Status = domain.TaskFailed
	}
	delete(m.inflight, url)
}

func (m *Manager) fetch(ctx context.Context, url string, task *domain.DownloadTask, onProgress domain.ProgressFunc) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		m.logger.Error("invalid download url", "url", url, "error", err)
		return false
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Warn("download transport failure", "url", url, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.logger.Warn("download rejected by host", "url", url, "status", resp.StatusCode)
		return false
	}

	m.setProgress(task, 0, domain.TaskDownloading)

	total := resp.ContentLength
	var body bytes.Buffer
	chunk := make([]byte, 32*1024)
	lastEmit := 0.0

	for {
		n, readErr := resp.Body.Read(chunk)
		if n > 0 {
			body.Write(chunk[:n])
			f := fraction(body.Len(), total)
			m.setProgress(task, f, domain.TaskDownloading)
			if onProgress != nil && f >= lastEmit+progressStep {
				onProgress(f)
				lastEmit = f
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			m.logger.Warn("download stream dropped", "url", url, "read", body.Len(), "error", readErr)
			return false
		}
	}

	if total >= 0 && int64(body.Len()) < total {
		m.logger.Warn("download truncated", "url", url, "read", body.Len(), "expected", total)
		return false
	}

	if err := m.kv.Set(mediaKey(url), body.Bytes()); err != nil {
		m.logger.Warn("failed to persist download", "url", url, "error", err)
		return false
	}

	m.setProgress(task, 1, domain.TaskDownloading)
	if onProgress != nil {
		onProgress(1)
	}
	m.logger.Debug("download complete", "url", url, "bytes", body.Len())
	return true
}

func (m *Manager) setProgress(task *domain.DownloadTask, f float64, status domain.TaskStatus) {
	m.mu.Lock()
	task.Progress = f
	task.Status = status
	m.mu.Unlock()
}

// fraction maps bytes read onto [0,1). With a known total it approaches but
// never reaches 1 before completion; with an unknown total it follows an
// asymptotic curve so callbacks stay monotone.
func fraction(read int, total int64) float64 {
	if total > 0 {
		f := float64(read) / float64(total)
		if f > 0.99 {
			f = 0.99
		}
		return f
	}
	return float64(read) / float64(read+indeterminateScale)
}

// InFlight reports whether a download for url is currently active.
func (m *Manager) InFlight(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, active := m.inflight[url]
	return active
}

// IsCached reports whether the bytes for url are present in local storage.
// This checks the store directly, independent of the interaction ledger.
func (m *Manager) IsCached(url string) bool {
	_, ok := m.kv.Get(mediaKey(url))
	return ok
}

// Cached returns the stored bytes for url, if present.
func (m *Manager) Cached(url string) ([]byte, bool) {
	return m.kv.Get(mediaKey(url))
}

// Remove deletes the persisted payload for url. Removing an absent entry is
// a no-op, not an error.
func (m *Manager) Remove(url string) {
	if err := m.kv.Delete(mediaKey(url)); err != nil {
		m.logger.Warn("failed to evict cached media", "url", url, "error", err)
	}
}

// ToggleDownload flips the offline state of item: cached items are evicted
// and unmarked, absent items are downloaded and marked on success. Returns
// whether the item is downloaded afterwards.
func (m *Manager) ToggleDownload(ctx context.Context, item domain.ContentItem, onProgress domain.ProgressFunc) bool {
	if m.inter.Current().Downloaded(item.ID) {
		m.Remove(item.MediaURL)
		m.inter.Update(func(s domain.InteractionState) domain.InteractionState {
			return s.UnmarkDownloaded(item.ID)
		})
		return false
	}

	if !m.Download(ctx, item.MediaURL, onProgress) {
		return false
	}
	m.inter.Update(func(s domain.InteractionState) domain.InteractionState {
		return s.MarkDownloaded(item.ID)
	})
	return true
}

// DownloadAll sequentially downloads every item not yet cached and returns
// how many downloads succeeded. It never parallelizes, and a failed item
// does not stop the items after it.
func (m *Manager) DownloadAll(ctx context.Context, items []domain.ContentItem, onProgress func(itemID string, fraction float64)) int {
	succeeded := 0
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		if m.IsCached(item.MediaURL) {
			continue
		}

		itemID := item.ID
		ok := m.Download(ctx, item.MediaURL, func(f float64) {
			if onProgress != nil {
				onProgress(itemID, f)
			}
		})
		if !ok {
			continue
		}
		m.inter.Update(func(s domain.InteractionState) domain.InteractionState {
			return s.MarkDownloaded(itemID)
		})
		succeeded++
	}
	return succeeded
}

// Reconcile repairs divergence between the downloaded-set and actual cache
// presence (storage cleared externally, interrupted removals): memberships
// whose bytes are gone are dropped. Ids with no matching item are left
// alone since their URL cannot be verified.
func (m *Manager) Reconcile(items []domain.ContentItem) domain.InteractionState {
	state := m.inter.Current()
	stale := make([]string, 0)
	for _, id := range state.DownloadedIDs {
		for _, item := range items {
			if item.Matches(id) {
				if !m.IsCached(item.MediaURL) {
					stale = append(stale, id)
				}
				break
			}
		}
	}
	if len(stale) == 0 {
		return state
	}

	m.logger.Info("reconciling stale downloaded entries", "count", len(stale))
	return m.inter.Update(func(s domain.InteractionState) domain.InteractionState {
		for _, id := range stale {
			s = s.UnmarkDownloaded(id)
		}
		return s
	})
}

// OfflineItems returns the items available for offline playback, after
// reconciling the ledger against actual cache presence.
func (m *Manager) OfflineItems(items []domain.ContentItem) []domain.ContentItem {
	state := m.Reconcile(items)
	var out []domain.ContentItem
	for _, item := range items {
		if state.Downloaded(item.ID) {
			out = append(out, item)
		}
	}
	return out
}

func mediaKey(url string) string { return mediaKeyPrefix + url }
