package domain

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeRegions Mode = "regions"
	ModeAuto    Mode = "auto"
)

func (m Mode) Valid() bool {
	return m == ModeRegions || m == ModeAuto
}

// Metadata is one fetched worksheet snapshot. Only the slice matching Mode is populated.
type Metadata struct {
	Mode              Mode
	DRMProtectedPages DRMPages
	Regions           []Region
	Pages             []GuidancePage
}

type Region struct {
	Name        string      `json:"name" yaml:"name"`
	Page        int         `json:"page" yaml:"page"`
	X           float64     `json:"x" yaml:"x"`
	Y           float64     `json:"y" yaml:"y"`
	Width       float64     `json:"width" yaml:"width"`
	Height      float64     `json:"height" yaml:"height"`
	Title       string      `json:"title" yaml:"title"`
	Description Description `json:"description" yaml:"description"`
}

type GuidancePage struct {
	PageNumber int        `json:"page_number" yaml:"page_number"`
	Guidance   []Guidance `json:"guidance" yaml:"guidance"`
}

type Guidance struct {
	Title       string      `json:"title" yaml:"title"`
	Description Description `json:"description" yaml:"description"`
}

// Description is authored either as a single string or as a list of strings.
type Description []string

func (d *Description) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*d = Description{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("description must be a string or a list of strings: %w", err)
	}
	*d = list
	return nil
}

func (d *Description) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*d = nil
			return nil
		}
		*d = Description{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("decode description list: %w", err)
		}
		*d = list
		return nil
	default:
		return fmt.Errorf("description must be a string or a list of strings")
	}
}

// DRMPages is either a blanket flag for every page or an explicit page set.
type DRMPages struct {
	All   bool
	Pages []int
}

func (d DRMPages) Protects(page int) bool {
	if d.All {
		return true
	}
	for _, p := range d.Pages {
		if p == page {
			return true
		}
	}
	return false
}

func (d *DRMPages) UnmarshalJSON(b []byte) error {
	var all bool
	if err := json.Unmarshal(b, &all); err == nil {
		*d = DRMPages{All: all}
		return nil
	}
	var pages []int
	if err := json.Unmarshal(b, &pages); err != nil {
		return fmt.Errorf("drmProtectedPages must be a boolean or a list of page numbers: %w", err)
	}
	sort.Ints(pages)
	*d = DRMPages{Pages: pages}
	return nil
}

func (d *DRMPages) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*d = DRMPages{}
			return nil
		}
		var all bool
		if err := node.Decode(&all); err != nil {
			return fmt.Errorf("decode drmProtectedPages flag: %w", err)
		}
		*d = DRMPages{All: all}
		return nil
	case yaml.SequenceNode:
		var pages []int
		if err := node.Decode(&pages); err != nil {
			return fmt.Errorf("decode drmProtectedPages list: %w", err)
		}
		sort.Ints(pages)
		*d = DRMPages{Pages: pages}
		return nil
	default:
		return fmt.Errorf("drmProtectedPages must be a boolean or a list of page numbers")
	}
}
