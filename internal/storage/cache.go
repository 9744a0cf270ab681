package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dpshade/fill-in-the-blank/internal/models"
)

// StoryMetadata represents cached metadata for a story file
type StoryMetadata struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Author         string    `json:"author,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Width          int       `json:"width,omitempty"`
	Blanks         int       `json:"blanks"`
	HasFrontmatter bool      `json:"has_frontmatter"`
	FilePath       string    `json:"file_path"`
	ModTime        time.Time `json:"mod_time"`
	Size           int64     `json:"size"`
}

// MetadataCache keeps story metadata between runs so listing a large story
// directory does not re-read every file.
type MetadataCache struct {
	cacheDir  string
	cacheFile string
	metadata  map[string]*StoryMetadata
	mu        sync.RWMutex
}

// NewMetadataCache creates a new metadata cache rooted at baseDir
func NewMetadataCache(baseDir string) *MetadataCache {
	cacheDir := filepath.Join(baseDir, ".fill-in-the-blank", "cache")
	return &MetadataCache{
		cacheDir:  cacheDir,
		cacheFile: filepath.Join(cacheDir, "stories.json"),
		metadata:  make(map[string]*StoryMetadata),
	}
}

// Load loads the metadata cache from disk
func (c *MetadataCache) Load() error {
	data, err := os.ReadFile(c.cacheFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache file: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := json.Unmarshal(data, &c.metadata); err != nil || c.metadata == nil {
		// Corrupted cache, start fresh
		c.metadata = make(map[string]*StoryMetadata)
	}

	return nil
}

// Save writes the metadata cache to disk
func (c *MetadataCache) Save() error {
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	c.mu.RLock()
	data, err := json.MarshalIndent(c.metadata, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// Get returns the cached metadata for a file if it is still current
func (c *MetadataCache) Get(filePath string, fileInfo os.FileInfo) (*StoryMetadata, bool) {
	c.mu.RLock()
	cached, exists := c.metadata[filePath]
	c.mu.RUnlock()
	if !exists {
		return nil, false
	}

	if !fileInfo.ModTime().Equal(cached.ModTime) || fileInfo.Size() != cached.Size {
		return nil, false
	}

	return cached, true
}

// Set stores metadata for a story in the cache
func (c *MetadataCache) Set(fileInfo os.FileInfo, story *models.Story) {
	c.mu.Lock()
	c.metadata[story.FilePath] = &StoryMetadata{
		ID:             story.ID,
		Name:           story.Name,
		Author:         story.Author,
		Tags:           story.Tags,
		Width:          story.Width,
		Blanks:         story.Blanks,
		HasFrontmatter: story.HasFrontmatter,
		FilePath:       story.FilePath,
		ModTime:        fileInfo.ModTime(),
		Size:           fileInfo.Size(),
	}
	c.mu.Unlock()
}

// Cleanup removes cache entries for files that no longer exist
func (c *MetadataCache) Cleanup(existingFiles map[string]bool) bool {
	removed := false
	c.mu.Lock()
	for filePath := range c.metadata {
		if !existingFiles[filePath] {
			delete(c.metadata, filePath)
			removed = true
		}
	}
	c.mu.Unlock()
	return removed
}

// ToStory converts cached metadata back to a Story without content
func (m *StoryMetadata) ToStory() *models.Story {
	return &models.Story{
		ID:             m.ID,
		Name:           m.Name,
		Author:         m.Author,
		Tags:           m.Tags,
		Width:          m.Width,
		Blanks:         m.Blanks,
		HasFrontmatter: m.HasFrontmatter,
		FilePath:       m.FilePath,
		ModTime:        m.ModTime,
	}
}
