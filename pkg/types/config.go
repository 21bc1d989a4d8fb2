package types

// SourceConfig holds settings for syllabus discovery and text extraction.
type SourceConfig struct {
	// Dir is the directory scanned recursively for syllabus PDFs.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// OutputConfig holds settings for the emitted artifacts.
type OutputConfig struct {
	// CoursesDir receives one JSON file per course plus the consolidated
	// courses.json.
	CoursesDir string `json:"courses_dir" yaml:"courses_dir" mapstructure:"courses_dir"`

	// CalendarDir receives the rendered calendar and the schedule YAML.
	CalendarDir string `json:"calendar_dir" yaml:"calendar_dir" mapstructure:"calendar_dir"`
}

// CatalogConfig holds settings for the SQLite course catalog.
type CatalogConfig struct {
	// Dir is the directory holding the catalog database and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// PeriodConfig is the date range of one academic period as written in the
// config file. Dates are 2006-01-02 strings; parsing is deferred so a
// broken period only fails the run that selects it.
type PeriodConfig struct {
	StartDate string `json:"start_date" yaml:"start_date" mapstructure:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date" mapstructure:"end_date"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Source  SourceConfig  `json:"source" yaml:"source" mapstructure:"source"`
	Output  OutputConfig  `json:"output" yaml:"output" mapstructure:"output"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`

	// DefaultPeriod selects which configured period a run uses when no
	// --period flag is given.
	DefaultPeriod string `json:"default_period" yaml:"default_period" mapstructure:"default_period"`

	// Periods maps a period label to its date range.
	Periods map[string]PeriodConfig `json:"periods" yaml:"periods" mapstructure:"periods"`
}
