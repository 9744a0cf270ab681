// Command migrate-stories rewrites plain text stories as markdown files with
// YAML frontmatter so they can carry a title, author and tags.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dpshade/fill-in-the-blank/internal/config"
	"github.com/dpshade/fill-in-the-blank/internal/models"
	"github.com/dpshade/fill-in-the-blank/internal/service"
)

func main() {
	var yes bool
	flag.BoolVar(&yes, "yes", false, "Migrate without asking for confirmation")
	flag.Parse()

	rootDir, err := config.RootDir()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(rootDir)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	svc, err := service.NewService(cfg)
	if err != nil {
		fmt.Printf("Error initializing service: %v\n", err)
		os.Exit(1)
	}

	stories, err := svc.ListStories()
	if err != nil {
		fmt.Printf("Error listing stories: %v\n", err)
		os.Exit(1)
	}

	var needMigration []*models.Story
	for _, listed := range stories {
		story, err := svc.GetStory(listed.ID)
		if err != nil {
			fmt.Printf("Warning: skipping %s: %v\n", listed.FilePath, err)
			continue
		}
		if !story.HasFrontmatter {
			needMigration = append(needMigration, story)
		}
	}

	if len(needMigration) == 0 {
		fmt.Println("Every story already has frontmatter - migration not needed")
		return
	}

	fmt.Printf("Found %d stories without frontmatter:\n", len(needMigration))
	for _, story := range needMigration {
		fmt.Printf("  - %s -> %s.md (title: %s, %d blanks)\n",
			story.FilePath, story.ID, models.TitleFromID(story.ID), story.Blanks)
	}

	if !yes {
		fmt.Print("\nProceed with migration? (y/N): ")
		response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			fmt.Println("Migration cancelled")
			return
		}
	}

	storyDir := svc.Storage().StoryDir()
	migrated := 0
	for _, story := range needMigration {
		oldFilePath := story.FilePath
		target := story.ID + ".md"

		if target != oldFilePath {
			if _, err := os.Stat(filepath.Join(storyDir, target)); err == nil {
				fmt.Printf("Warning: %s already exists, leaving %s alone\n", target, oldFilePath)
				continue
			}
		}

		story.Name = models.TitleFromID(story.ID)
		if err := svc.Storage().SaveStory(story); err != nil {
			fmt.Printf("Error saving %s: %v\n", target, err)
			continue
		}

		if target != oldFilePath {
			if err := svc.Storage().RemoveStoryFile(oldFilePath); err != nil {
				fmt.Printf("Warning: Could not remove old file %s: %v\n", oldFilePath, err)
				continue
			}
		}
		fmt.Printf("Migrated %s to %s\n", oldFilePath, target)
		migrated++
	}

	fmt.Printf("Migration completed! Successfully migrated %d stories\n", migrated)
}
