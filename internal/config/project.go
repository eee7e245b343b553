package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renodesk/renodesk/internal/logging"
)

// ErrNoProject indicates no .renodesk project directory was found walking
// up from the start directory.
var ErrNoProject = errors.New("no .renodesk project directory found")

// projectDirName marks a project root when present as a subdirectory.
const projectDirName = ".renodesk"

// FindProjectRoot walks up from startDir looking for a directory that
// contains a .renodesk subdirectory and returns that directory. Returns
// ErrNoProject when the filesystem root is reached without a match.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}

	for {
		marker := filepath.Join(dir, projectDirName)
		if info, statErr := os.Stat(marker); statErr == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// ResolveProjectDir determines the project-local .renodesk directory.
// It checks, in order: the --project-dir flag value, the
// RENODESK_PROJECT_DIR environment variable, then a walk-up from startDir.
// Returns the absolute path to $PROJECT/.renodesk or "" when no project
// applies. The directory is not created; resolution is read-only.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	root, err := FindProjectRoot(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}
	return filepath.Join(root, projectDirName)
}

// LoadWithProjectOverlay loads the global config then shallow-merges
// $projectDir/config.yaml on top. A missing overlay file or a merge
// failure falls back to the global config with a warning.
func LoadWithProjectOverlay(ctx context.Context, globalPath, projectDir string) (*Config, error) {
	cfg, err := Load(globalPath)
	if err != nil {
		return nil, err
	}
	if projectDir == "" {
		return cfg, nil
	}

	overlayPath := filepath.Join(projectDir, "config.yaml")
	if _, statErr := os.Stat(overlayPath); statErr != nil {
		return cfg, nil
	}

	if mergeErr := ShallowMergeYAML(cfg, overlayPath); mergeErr != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(mergeErr).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global config")
	}
	return cfg, nil
}

// toAbsProjectDir converts dir to an absolute path and appends .renodesk
// unless the path already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == projectDirName {
		return abs
	}
	return filepath.Join(abs, projectDirName)
}
