package domain

import (
	"fmt"
	"strings"
)

var placeholders = map[string]struct{}{
	"<br>":   {},
	"<br/>":  {},
	"<br />": {},
}

// Normalize derives the ordered content units of one page. Missing data yields an empty slice.
func Normalize(meta Metadata, page int) []ContentUnit {
	switch meta.Mode {
	case ModeRegions:
		return normalizeRegions(meta.Regions, page)
	case ModeAuto:
		return normalizeGuidance(meta.Pages, page)
	default:
		return []ContentUnit{}
	}
}

func normalizeRegions(regions []Region, page int) []ContentUnit {
	units := make([]ContentUnit, 0, len(regions))
	seen := map[string]struct{}{}
	for _, r := range regions {
		if r.Page != page {
			continue
		}
		idx := len(units)
		name := strings.TrimSpace(r.Name)
		if name == "" {
			name = fmt.Sprintf("region_%d", idx)
		}
		// Ids are unique within a page; a repeated name keeps its audio name.
		id := name
		for n := idx; ; n++ {
			if _, dup := seen[id]; !dup {
				break
			}
			id = fmt.Sprintf("%s_%d", name, n)
		}
		seen[id] = struct{}{}
		units = append(units, ContentUnit{
			ID:         id,
			Kind:       KindRegion,
			Name:       name,
			Title:      StripEmphasis(r.Title),
			RawTitle:   r.Title,
			Paragraphs: SplitParagraphs(r.Description),
			Page:       page,
			Index:      idx,
			Rect:       Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height},
		})
	}
	return units
}

func normalizeGuidance(pages []GuidancePage, page int) []ContentUnit {
	for _, p := range pages {
		if p.PageNumber != page {
			continue
		}
		units := make([]ContentUnit, 0, len(p.Guidance))
		for i, g := range p.Guidance {
			id := fmt.Sprintf("guidance_%d", i)
			units = append(units, ContentUnit{
				ID:         id,
				Kind:       KindGuidance,
				Name:       id,
				Title:      StripEmphasis(g.Title),
				RawTitle:   g.Title,
				Paragraphs: SplitParagraphs(g.Description),
				Page:       page,
				Index:      i,
			})
		}
		return units
	}
	return []ContentUnit{}
}

// SplitParagraphs splits every element on line breaks and drops blank lines, keeping order.
func SplitParagraphs(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ReplaceAll(part, "\r\n", "\n")
		for _, line := range strings.Split(part, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			out = append(out, line)
		}
	}
	return out
}

func placeholderOnly(paragraphs []string) bool {
	for _, p := range paragraphs {
		if _, ok := placeholders[strings.ToLower(strings.TrimSpace(p))]; !ok {
			return false
		}
	}
	return true
}
