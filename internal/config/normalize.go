package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCategories(); err != nil {
		return err
	}
	c.normalizeMatcher()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WatchDir) == "" {
		c.Paths.WatchDir = defaultWatchDir
	}
	if c.Paths.WatchDir, err = expandPath(c.Paths.WatchDir); err != nil {
		return fmt.Errorf("paths.watch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCategories() error {
	entries := []struct {
		name     string
		value    *string
		fallback string
	}{
		{"categories.documents", &c.Categories.Documents, defaultDocumentsDir},
		{"categories.images", &c.Categories.Images, defaultImagesDir},
		{"categories.videos", &c.Categories.Videos, defaultVideosDir},
		{"categories.audio", &c.Categories.Audio, defaultAudioDir},
		{"categories.archives", &c.Categories.Archives, defaultArchivesDir},
		{"categories.code", &c.Categories.Code, defaultCodeDir},
		{"categories.other", &c.Categories.Other, defaultOtherDir},
	}
	for _, entry := range entries {
		if strings.TrimSpace(*entry.value) == "" {
			*entry.value = entry.fallback
		}
		expanded, err := expandPath(*entry.value)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.name, err)
		}
		*entry.value = expanded
	}
	return nil
}

func (c *Config) normalizeMatcher() {
	if c.Matcher.SimilarityThreshold == 0 {
		c.Matcher.SimilarityThreshold = defaultMatcherThreshold
	}
	cleaned := c.Matcher.ExcludedFolders[:0]
	for _, folder := range c.Matcher.ExcludedFolders {
		folder = strings.TrimSpace(folder)
		if folder != "" {
			cleaned = append(cleaned, folder)
		}
	}
	c.Matcher.ExcludedFolders = cleaned
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays <= 0 {
		c.Logging.RetentionDays = defaultLogRetentionDays
	}
	if c.Workflow.Workers <= 0 {
		c.Workflow.Workers = defaultWorkers
	}
	if c.Workflow.QueuePollInterval <= 0 {
		c.Workflow.QueuePollInterval = defaultQueuePollInterval
	}
	if c.Workflow.ErrorRetryInterval <= 0 {
		c.Workflow.ErrorRetryInterval = defaultErrorRetryInterval
	}
	if c.Workflow.SettleSeconds <= 0 {
		c.Workflow.SettleSeconds = defaultSettleSeconds
	}
}
