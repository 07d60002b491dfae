// FILE: lixenwraith/settings/discovery.go
package settings

import (
	"os"
	"path/filepath"
	"strings"
)

// DotenvDiscoveryOptions configures automatic dotenv file discovery
type DotenvDiscoveryOptions struct {
	// Base names of dotenv files to try in each directory (in order)
	Files []string

	// Custom search paths (searched before the defaults)
	Paths []string

	// Environment variable holding an explicit file path
	EnvVar string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool

	// Application name, used for the XDG sub-directory
	Name string
}

// DefaultDotenvDiscovery returns sensible defaults for an application:
// APPNAME_ENV_FILE, then ./appname.env and ./.env, then XDG config dirs.
func DefaultDotenvDiscovery(appName string) DotenvDiscoveryOptions {
	return DotenvDiscoveryOptions{
		Name:          appName,
		Files:         []string{appName + ".env", ".env"},
		EnvVar:        envVarName(appName, "env_file"),
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// DiscoverDotenv returns the first dotenv file found, or "" when there is none.
// An explicit path in opts.EnvVar is returned as-is without checking existence,
// so a mistyped path surfaces as an error when the file is read.
func DiscoverDotenv(opts DotenvDiscoveryOptions, lookup LookupFunc) string {
	if lookup == nil {
		lookup = OSLookup()
	}

	if opts.EnvVar != "" {
		if path, ok := lookup(opts.EnvVar); ok && path != "" {
			return path
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	if opts.UseXDG && opts.Name != "" {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name, lookup)...)
	}

	for _, dir := range searchPaths {
		for _, file := range opts.Files {
			path := filepath.Join(dir, file)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}

	// No file found is not an error - the process environment still applies
	return ""
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string, lookup LookupFunc) []string {
	var paths []string
	appName = strings.ToLower(appName)

	if xdgHome, _ := lookup("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home, _ := lookup("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs, _ := lookup("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
