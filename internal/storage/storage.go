package storage

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/dpshade/fill-in-the-blank/internal/blanks"
	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/models"
	"gopkg.in/yaml.v3"
)

// Rand picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Storage reads stories from a directory of story files
type Storage struct {
	rootPath string
	storyDir string
	rng      Rand
	cache    *MetadataCache
}

// Option configures a Storage
type Option func(*Storage)

// WithRand sets the source used by LoadRandomStory
func WithRand(r Rand) Option {
	return func(s *Storage) {
		s.rng = r
	}
}

// WithSeed makes LoadRandomStory deterministic
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// NewStorage creates a storage rooted at rootPath. An empty storyDir means
// <rootPath>/stories.
func NewStorage(rootPath, storyDir string, opts ...Option) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".fill-in-the-blank")
	}
	if storyDir == "" {
		storyDir = filepath.Join(rootPath, "stories")
	}

	s := &Storage{
		rootPath: rootPath,
		storyDir: storyDir,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		cache:    NewMetadataCache(rootPath),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.cache.Load(); err != nil {
		// Cache is optional
		fmt.Fprintf(os.Stderr, "Warning: failed to load metadata cache: %v\n", err)
	}

	return s, nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// StoryDir returns the directory stories are read from
func (s *Storage) StoryDir() string {
	return s.storyDir
}

// InitLibrary creates the library directories and seeds sample stories into
// an empty story directory.
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		s.storyDir,
		filepath.Join(s.rootPath, "logs"),
		filepath.Join(s.rootPath, ".fill-in-the-blank", "cache"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.StorageError("create "+dir, err)
		}
	}

	files, err := s.storyFiles()
	if err == nil && len(files) > 0 {
		return nil
	}

	for name, content := range sampleStories {
		if err := os.WriteFile(filepath.Join(s.storyDir, name), []byte(content), 0644); err != nil {
			return errors.StorageError("write sample story "+name, err)
		}
	}

	return nil
}

// storyFiles lists the regular, non-hidden files in the story directory,
// sorted by name
func (s *Storage) storyFiles() ([]os.DirEntry, error) {
	entries, err := os.ReadDir(s.storyDir)
	if err != nil {
		return nil, errors.SourceUnavailableError(s.storyDir, err)
	}

	var files []os.DirEntry
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, entry)
	}

	return files, nil
}

// LoadStory loads a story by ID (file name without extension) or file name
func (s *Storage) LoadStory(id string) (*models.Story, error) {
	files, err := s.storyFiles()
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if f.Name() == id || storyID(f.Name()) == id {
			return s.loadFile(f.Name())
		}
	}

	return nil, errors.StoryNotFoundError(id)
}

// LoadRandomStory loads a story chosen uniformly from the story directory
func (s *Storage) LoadRandomStory() (*models.Story, error) {
	files, err := s.storyFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.SourceUnavailableError(s.storyDir, fmt.Errorf("no story files found"))
	}

	return s.loadFile(files[s.rng.IntN(len(files))].Name())
}

// ListStories returns every story's metadata without content, using the
// metadata cache where files are unchanged.
func (s *Storage) ListStories() ([]*models.Story, error) {
	files, err := s.storyFiles()
	if err != nil {
		return nil, err
	}

	var stories []*models.Story
	existingFiles := make(map[string]bool)
	cacheModified := false

	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to stat story %s: %v\n", f.Name(), err)
			continue
		}
		existingFiles[f.Name()] = true

		if cached, valid := s.cache.Get(f.Name(), info); valid {
			stories = append(stories, cached.ToStory())
			continue
		}

		story, err := s.loadFile(f.Name())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load story %s: %v\n", f.Name(), err)
			continue
		}
		s.cache.Set(info, story)
		cacheModified = true

		story.Content = ""
		stories = append(stories, story)
	}

	if s.cache.Cleanup(existingFiles) {
		cacheModified = true
	}
	if cacheModified {
		if err := s.cache.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save metadata cache: %v\n", err)
		}
	}

	return stories, nil
}

// SaveStory writes a story as YAML frontmatter followed by its template,
// to <ID>.md in the story directory.
func (s *Storage) SaveStory(story *models.Story) error {
	if err := os.MkdirAll(s.storyDir, 0755); err != nil {
		return errors.StorageError("create story directory", err)
	}

	content, err := serializeStory(story)
	if err != nil {
		return errors.StorageError("serialize story "+story.ID, err)
	}

	story.FilePath = story.ID + ".md"
	if err := os.WriteFile(filepath.Join(s.storyDir, story.FilePath), content, 0644); err != nil {
		return errors.StorageError("write story "+story.ID, err)
	}
	story.HasFrontmatter = true

	return nil
}

// RemoveStoryFile deletes a file from the story directory
func (s *Storage) RemoveStoryFile(name string) error {
	if err := os.Remove(filepath.Join(s.storyDir, name)); err != nil {
		return errors.StorageError("remove "+name, err)
	}
	return nil
}

func (s *Storage) loadFile(name string) (*models.Story, error) {
	fullPath := filepath.Join(s.storyDir, name)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, errors.SourceUnavailableError(fullPath, err)
	}
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, errors.SourceUnavailableError(fullPath, err)
	}

	story, err := parseStoryFile(content)
	if err != nil {
		return nil, errors.StorageError("parse "+name, err)
	}

	story.ID = storyID(name)
	story.FilePath = name
	story.ModTime = info.ModTime()
	story.Blanks = blanks.Count(story.Content)

	return story, nil
}

func storyID(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Helper functions

// parseStoryFile returns the file verbatim as the template unless it opens
// with a "---" frontmatter block.
func parseStoryFile(content []byte) (*models.Story, error) {
	text := string(content)
	if !strings.HasPrefix(text, "---\n") && !strings.HasPrefix(text, "---\r\n") {
		return &models.Story{Content: text}, nil
	}

	rest := text[strings.IndexByte(text, '\n')+1:]
	var frontmatterLines []string
	for {
		if rest == "" {
			return nil, fmt.Errorf("missing closing frontmatter delimiter")
		}
		line, tail, _ := strings.Cut(rest, "\n")
		rest = tail
		if strings.TrimRight(line, "\r") == "---" {
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}

	var story models.Story
	if err := yaml.Unmarshal([]byte(strings.Join(frontmatterLines, "\n")), &story); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	// Skip the blank line that conventionally follows the frontmatter
	story.Content = strings.TrimLeft(rest, "\r\n")
	story.HasFrontmatter = true

	return &story, nil
}

func serializeStory(story *models.Story) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(story); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString("---\n")

	if story.Content != "" {
		buf.WriteString("\n")
		buf.WriteString(story.Content)
		if !strings.HasSuffix(story.Content, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
