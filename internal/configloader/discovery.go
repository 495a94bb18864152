package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths represents discovered configuration file paths.
// Missing files are empty strings.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// projectConfigNames are searched in each directory, most preferred first.
	projectConfigNames = []string{
		".brackettree.yml",
		".brackettree.yaml",
		"brackettree.yml",
		"brackettree.yaml",
	}

	// layerConfigNames are looked up in the system and user config directories.
	layerConfigNames = []string{"config.yaml", "config.yml"}

	// repositoryMarkers end the upward project search. A marker may be a
	// directory or a file, as .git is in worktrees and submodules.
	repositoryMarkers = []string{".git", ".hg", ".svn"}
)

// locations are the fixed directories consulted during discovery.
type locations struct {
	systemDir string
	userDir   string
	homeDir   string
}

func defaultLocations() locations {
	loc := locations{systemDir: "/etc/brackettree"}

	if home, err := os.UserHomeDir(); err == nil {
		loc.homeDir = home
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" && loc.homeDir != "" {
		configHome = filepath.Join(loc.homeDir, ".config")
	}
	if configHome != "" {
		loc.userDir = filepath.Join(configHome, "brackettree")
	}

	return loc
}

// DiscoverPaths finds the system, user and project config files that apply
// to workDir. The project file is the nearest one found walking upward.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	return defaultLocations().discover(ctx, workDir)
}

// FindProjectConfig searches upward from startDir (the working directory when
// empty) for a project config file. The search ends at a repository root, the
// home directory or the filesystem root; reaching one without a match returns
// an empty path.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	return defaultLocations().findProject(ctx, startDir)
}

func (loc locations) discover(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := loc.findProject(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstRegularFile(loc.systemDir, layerConfigNames),
		User:    firstRegularFile(loc.userDir, layerConfigNames),
		Project: project,
	}, nil
}

func (loc locations) findProject(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path := firstRegularFile(dir, projectConfigNames); path != "" {
			return path, nil
		}
		if loc.stopsSearch(dir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (loc locations) stopsSearch(dir string) bool {
	if loc.homeDir != "" && dir == loc.homeDir {
		return true
	}
	for _, marker := range repositoryMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// firstRegularFile returns the first of names that is a regular file in dir.
func firstRegularFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
