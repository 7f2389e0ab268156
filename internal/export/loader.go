package export

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Loader reads export templates, preferring a custom override in
// {customDir}/{name} over the embedded default.
type Loader struct {
	embedFS   embed.FS
	root      string
	customDir string
	logger    hclog.Logger
}

// NewLoader creates a loader for the embedded templates under root. The
// custom directory defaults to DefaultTemplateDir.
func NewLoader(embedFS embed.FS, root string) *Loader {
	return &Loader{
		embedFS:   embedFS,
		root:      root,
		customDir: DefaultTemplateDir(),
		logger:    hclog.NewNullLogger(),
	}
}

// DefaultTemplateDir returns $XDG_CONFIG_HOME/designkit/templates, falling back
// to ~/.config/designkit/templates.
func DefaultTemplateDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "designkit", "templates")
}

// WithCustomDir sets the override directory. An empty dir disables overrides.
func (l *Loader) WithCustomDir(dir string) *Loader {
	l.customDir = dir
	return l
}

// WithLogger sets the logger used to report which template was chosen.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load returns the template content and whether it came from an override.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	if l.customDir != "" {
		customPath := l.CustomPath(filename)
		if content, err := os.ReadFile(customPath); err == nil {
			l.logger.Debug("using custom template", "path", customPath)
			return content, true, nil
		}
	}

	l.logger.Trace("using embedded template", "name", filename)
	content, err = l.embedFS.ReadFile(path.Join(l.root, filename))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}
	return content, false, nil
}

// CustomPath returns where an override for filename would live.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.customDir, filename)
}

// HasCustomTemplate reports whether an override exists for filename.
func (l *Loader) HasCustomTemplate(filename string) bool {
	if l.customDir == "" {
		return false
	}
	_, err := os.Stat(l.CustomPath(filename))
	return err == nil
}

// ListEmbeddedTemplates returns the embedded template names.
func (l *Loader) ListEmbeddedTemplates() ([]string, error) {
	var names []string
	err := fs.WalkDir(l.embedFS, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == ".tmpl" {
			names = append(names, strings.TrimPrefix(p, l.root+"/"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	return names, nil
}

// DumpTemplate writes an embedded template to the override directory so it
// can be edited. Existing files are kept unless force is set.
func (l *Loader) DumpTemplate(filename string, force bool) (string, error) {
	if l.customDir == "" {
		return "", fmt.Errorf("no custom template directory configured")
	}

	content, err := l.embedFS.ReadFile(path.Join(l.root, filename))
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	outputPath := l.CustomPath(filename)
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return "", fmt.Errorf("custom template already exists: %s (use --force to overwrite)", outputPath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", filepath.Dir(outputPath), err)
	}
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}
	return outputPath, nil
}
