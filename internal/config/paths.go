package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// Everything hangs off one base directory:
//
//	<base>/
//	  ├── data/student_attendance.csv
//	  ├── outputs/                  (charts, summaries, metrics)
//	  └── logs/
type Paths struct {
	ExecutableDir string
	DataDir       string
	OutputDir     string
	LogsDir       string

	DatasetCSV  string
	DatasetXLSX string
}

// GetPaths returns the application paths relative to the executable location
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return GetPathsFrom(filepath.Dir(exe)), nil
}

// GetPathsFrom returns the directory layout rooted at base
func GetPathsFrom(base string) *Paths {
	dataDir := filepath.Join(base, DefaultDataDir)
	return &Paths{
		ExecutableDir: base,
		DataDir:       dataDir,
		OutputDir:     filepath.Join(base, DefaultOutputDir),
		LogsDir:       filepath.Join(base, DefaultLogsDir),
		DatasetCSV:    filepath.Join(dataDir, DatasetFileName),
		DatasetXLSX:   filepath.Join(dataDir, DatasetWorkbookName),
	}
}

// EnsureDirectories creates the data and logs directories.
// The output directory is created by the analyzer when it renders charts.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetRelativePath returns a path relative to the executable directory
func (p *Paths) GetRelativePath(subpath string) string {
	return filepath.Join(p.ExecutableDir, subpath)
}

// GetOutputPath returns the path for an artifact in the output directory
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs the resolved layout
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("outputs", p.OutputDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("dataset_csv", p.DatasetCSV),
			slog.String("dataset_xlsx", p.DatasetXLSX),
		))
}
