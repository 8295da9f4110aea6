package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultStrategy     string  `json:"default_strategy"`
	DefaultSlabLength   float64 `json:"default_slab_length"`
	DefaultSlabWidth    float64 `json:"default_slab_width"`
	DefaultKerfWidth    float64 `json:"default_kerf_width"`
	DefaultTrimMargin   float64 `json:"default_trim_margin"`
	DefaultMaterial     string  `json:"default_material"`
	DefaultWastePercent float64 `json:"default_waste_percent"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentJobs       []string `json:"recent_jobs"`
}

// maxRecentJobs caps the recent jobs list.
const maxRecentJobs = 10

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultStrategy:     defaults.Strategy,
		DefaultSlabLength:   defaults.Slab.LengthMm,
		DefaultSlabWidth:    defaults.Slab.WidthMm,
		DefaultKerfWidth:    defaults.Slab.KerfMm,
		DefaultTrimMargin:   defaults.Slab.TrimMarginMm,
		DefaultWastePercent: 10,
		AutoSaveInterval:    0,
		RecentJobs:          []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// NestSettings struct, used when creating a new job so it inherits the
// user's saved defaults.
func (c AppConfig) ApplyToSettings(s *NestSettings) {
	s.Strategy = c.DefaultStrategy
	s.Slab.LengthMm = c.DefaultSlabLength
	s.Slab.WidthMm = c.DefaultSlabWidth
	s.Slab.KerfMm = c.DefaultKerfWidth
	s.Slab.TrimMarginMm = c.DefaultTrimMargin
}

// AddRecentJob records a job path at the front of the recent list, removing
// duplicates and trimming to the cap.
func (c *AppConfig) AddRecentJob(path string) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentJobs {
		recent = recent[:maxRecentJobs]
	}
	c.RecentJobs = recent
}
