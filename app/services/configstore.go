package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/qkrtlwls123-a11y/leadership-360/app/models"
)

// DateLayout is the calendar format every survey date must use.
const DateLayout = "2006-01-02"

// ConfigStore persists the ordered list of survey sources as a JSON file
// with whole-file read/replace semantics.
type ConfigStore struct {
	Path string
}

func NewConfigStore(path string) *ConfigStore {
	return &ConfigStore{Path: path}
}

// Load reads all configured sources. A missing or malformed file reads as
// an empty list rather than an error.
func (s *ConfigStore) Load() ([]models.SurveySource, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", s.Path, err)
	}

	var sources []models.SurveySource
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, nil
	}
	return sources, nil
}

// Save replaces the whole config file with the given list.
func (s *ConfigStore) Save(sources []models.SurveySource) error {
	data, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", s.Path, err)
	}
	return nil
}

// Register validates a survey source and adds it to the config, replacing
// any existing entry with the same sheet URL. Returns true when an entry
// was updated rather than created.
func (s *ConfigStore) Register(src models.SurveySource) (bool, error) {
	entry := models.SurveySource{
		Client:     strings.TrimSpace(src.Client),
		Course:     strings.TrimSpace(src.Course),
		Manager:    strings.TrimSpace(src.Manager),
		Date:       strings.TrimSpace(src.Date),
		Category:   strings.TrimSpace(src.Category),
		SurveyName: strings.TrimSpace(src.SurveyName),
		SheetURL:   strings.TrimSpace(src.SheetURL),
	}

	fields := []struct {
		name, value string
	}{
		{"client", entry.Client},
		{"course", entry.Course},
		{"manager", entry.Manager},
		{"date", entry.Date},
		{"category", entry.Category},
		{"survey_name", entry.SurveyName},
		{"sheet_url", entry.SheetURL},
	}
	for _, f := range fields {
		if f.value == "" {
			return false, &ConfigurationError{Msg: "Missing field: " + f.name}
		}
	}

	if _, err := time.Parse(DateLayout, entry.Date); err != nil {
		return false, &ConfigurationError{Msg: "Date must be in YYYY-MM-DD format"}
	}

	sources, err := s.Load()
	if err != nil {
		return false, err
	}

	updated := false
	for i := range sources {
		if sources[i].SheetURL == entry.SheetURL {
			sources[i] = entry
			updated = true
			break
		}
	}
	if !updated {
		sources = append(sources, entry)
	}

	if err := s.Save(sources); err != nil {
		return false, err
	}
	return updated, nil
}
