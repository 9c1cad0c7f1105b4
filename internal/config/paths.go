package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all the application paths.
// The output directory follows the desktop convention of the original tool
// (a folder under the user's Downloads); logs live next to the executable.
type Paths struct {
	ExecutableDir string
	HomeDir       string
	DownloadsDir  string
	OutputDir     string
	LogsDir       string
}

// GetPaths resolves the application paths from the executable location and
// the current user's home directory.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}
	exeDir := filepath.Dir(exe)

	home, err := os.UserHomeDir()
	if err != nil {
		// Headless environments without HOME still get a usable layout
		home = exeDir
	}

	downloads := filepath.Join(home, "Downloads")

	return &Paths{
		ExecutableDir: exeDir,
		HomeDir:       home,
		DownloadsDir:  downloads,
		OutputDir:     filepath.Join(downloads, DefaultOutputFolder),
		LogsDir:       filepath.Join(exeDir, DefaultLogsDir),
	}, nil
}

// EnsureDirectories creates the output and log directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		slog.Default().Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetReportPath returns the path for a report file inside the output directory
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// ReportPathForDate returns the default workbook path for the given day
func (p *Paths) ReportPathForDate(date time.Time) string {
	return p.GetReportPath(date.Format(DefaultFileNamePattern) + WorkbookExtension)
}

// LogPathResolution logs path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("home", p.HomeDir),
			slog.String("output", p.OutputDir),
			slog.String("logs", p.LogsDir),
		))
}
