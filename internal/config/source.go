package config

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Reader is the typed view of a sectioned configuration used by Bind.
//
// Every method returns def (or an empty slice) when the key is absent. Values
// that are present but malformed are coerced leniently rather than rejected;
// range and enum validation is the binder's job.
type Reader interface {
	ReadString(section, key, def string) string
	ReadInt(section, key string, def int) int
	ReadFloat(section, key string, def float64) float64
	// ReadFloats returns exactly five values, or nil.
	ReadFloats(section, key string) []float64
	ReadColor(section, key string, def color.NRGBA) color.NRGBA
}

// Source is an in-memory, case-insensitive set of sections holding string
// values. It is safe for concurrent reads.
type Source struct {
	sections map[string]map[string]string
}

// NewSource builds a Source from section -> key -> value.
func NewSource(sections map[string]map[string]string) *Source {
	s := &Source{sections: make(map[string]map[string]string, len(sections))}
	for name, kv := range sections {
		sec := s.section(name, true)
		for k, v := range kv {
			sec[strings.ToLower(k)] = v
		}
	}
	return s
}

// LoadTOML reads and parses a TOML configuration file.
func LoadTOML(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseTOML(string(data))
}

// ParseTOML parses TOML text into a Source. Each table is a section; keys at
// the top level belong to the section named "". Numbers and booleans are
// stored in their textual form and arrays are joined with ';'.
func ParseTOML(data string) (*Source, error) {
	var raw map[string]interface{}
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	s := &Source{sections: make(map[string]map[string]string)}
	for name, v := range raw {
		table, ok := v.(map[string]interface{})
		if !ok {
			s.section("", true)[strings.ToLower(name)] = stringify(v)
			continue
		}
		sec := s.section(name, true)
		for k, val := range table {
			sec[strings.ToLower(k)] = stringify(val)
		}
	}
	return s, nil
}

// Sections returns the section names in sorted order.
func (s *Source) Sections() []string {
	names := make([]string, 0, len(s.sections))
	for name := range s.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasSection reports whether the section exists.
func (s *Source) HasSection(section string) bool {
	return s.section(section, false) != nil
}

func (s *Source) section(name string, create bool) map[string]string {
	key := strings.ToLower(name)
	sec, ok := s.sections[key]
	if !ok && create {
		sec = make(map[string]string)
		s.sections[key] = sec
	}
	return sec
}

func (s *Source) lookup(section, key string) (string, bool) {
	sec := s.section(section, false)
	if sec == nil {
		return "", false
	}
	v, ok := sec[strings.ToLower(key)]
	return v, ok
}

// ReadString returns the raw value, or def when the key is absent.
func (s *Source) ReadString(section, key, def string) string {
	if v, ok := s.lookup(section, key); ok {
		return v
	}
	return def
}

// ReadInt parses the leading integer of the value.
func (s *Source) ReadInt(section, key string, def int) int {
	v, ok := s.lookup(section, key)
	if !ok {
		return def
	}
	return Atoi(v)
}

// ReadFloat parses the value as a float, returning def when it is absent,
// not a number or not finite.
func (s *Source) ReadFloat(section, key string, def float64) float64 {
	v, ok := s.lookup(section, key)
	if !ok {
		return def
	}
	f, ok := parseFloat(v)
	if !ok {
		return def
	}
	return f
}

// ReadFloats parses a ';' or ',' separated list of five floats.
func (s *Source) ReadFloats(section, key string) []float64 {
	v, ok := s.lookup(section, key)
	if !ok {
		return nil
	}
	return ParseFloats(v)
}

// ReadColor parses the value with ParseColor, returning def when it is absent
// or malformed.
func (s *Source) ReadColor(section, key string, def color.NRGBA) color.NRGBA {
	v, ok := s.lookup(section, key)
	if !ok {
		return def
	}
	c, err := ParseColor(v)
	if err != nil {
		return def
	}
	return c
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ";")
	}
	return fmt.Sprint(v)
}
