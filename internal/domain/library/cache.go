package library

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache handles fetching a remote story library and keeping a copy on disk
type Cache struct {
	url        string
	cacheDir   string
	cacheFile  string
	maxAge     time.Duration
	httpClient *http.Client
	log        logrus.FieldLogger
}

// CachedLibrary represents the cached library data
type CachedLibrary struct {
	Library      StoryLibrary `json:"library"`
	LastUpdated  time.Time    `json:"last_updated"`
	TotalStories int          `json:"total_stories"`
}

// CacheInfo describes the state of the cache file
type CacheInfo struct {
	Exists       bool
	Path         string
	Size         int64
	LastModified time.Time
	Fresh        bool
	MaxAge       time.Duration
}

// NewCache creates a cache for the library published at url
func NewCache(url, cacheDir string, maxAge time.Duration) *Cache {
	log := logrus.WithField("component", "library")

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.WithError(err).Warn("Failed to create cache directory")
	}

	return &Cache{
		url:       url,
		cacheDir:  cacheDir,
		cacheFile: filepath.Join(cacheDir, "library_cache.json"),
		maxAge:    maxAge,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// GetLibrary returns the library, fetching from cache or the remote URL as needed
func (c *Cache) GetLibrary() (*StoryLibrary, error) {
	if c.isCacheFresh() {
		c.log.Debug("Loading story library from cache")
		return c.loadFromCache()
	}

	c.log.WithField("url", c.url).Info("Fetching story library")
	lib, err := c.fetch()
	if err != nil {
		// A stale copy beats nothing
		c.log.WithError(err).Warn("Fetch failed, trying stale cache")
		if cached, cacheErr := c.loadFromCache(); cacheErr == nil {
			return cached, nil
		}
		return nil, fmt.Errorf("failed to fetch library and no cache available: %w", err)
	}

	if err := c.saveToCache(lib); err != nil {
		c.log.WithError(err).Warn("Failed to save to cache")
	}

	return lib, nil
}

func (c *Cache) isCacheFresh() bool {
	info, err := os.Stat(c.cacheFile)
	if err != nil {
		return false
	}

	return time.Since(info.ModTime()) < c.maxAge
}

func (c *Cache) loadFromCache() (*StoryLibrary, error) {
	file, err := os.Open(c.cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	var cached CachedLibrary
	if err := json.NewDecoder(file).Decode(&cached); err != nil {
		return nil, fmt.Errorf("failed to decode cache file: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"stories":      len(cached.Library.Stories),
		"last_updated": cached.LastUpdated.Format(time.RFC3339),
	}).Debug("Loaded story library from cache")

	return &cached.Library, nil
}

func (c *Cache) saveToCache(lib *StoryLibrary) error {
	cached := CachedLibrary{
		Library:      *lib,
		LastUpdated:  time.Now(),
		TotalStories: len(lib.Stories),
	}

	file, err := os.Create(c.cacheFile)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cached); err != nil {
		return fmt.Errorf("failed to encode cache data: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"stories": len(lib.Stories),
		"file":    c.cacheFile,
	}).Info("Saved story library to cache")

	return nil
}

func (c *Cache) fetch() (*StoryLibrary, error) {
	if c.url == "" {
		return nil, fmt.Errorf("no library URL configured")
	}

	resp, err := c.httpClient.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var lib StoryLibrary
	if err := json.Unmarshal(body, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if lib.URL == "" {
		lib.URL = c.url
	}

	return &lib, nil
}

// ClearCache removes the cache file
func (c *Cache) ClearCache() error {
	if err := os.Remove(c.cacheFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	c.log.Info("Cleared story library cache")
	return nil
}

// Info returns information about the cache file
func (c *Cache) Info() CacheInfo {
	info := CacheInfo{Path: c.cacheFile, MaxAge: c.maxAge}

	if stat, err := os.Stat(c.cacheFile); err == nil {
		info.Exists = true
		info.Size = stat.Size()
		info.LastModified = stat.ModTime()
		info.Fresh = c.isCacheFresh()
	}

	return info
}
