package domain

// PageContent is the normalized content of one worksheet page.
type PageContent struct {
	WorksheetID  string
	Page         int
	Mode         Mode
	DRMProtected bool
	Units        []ContentUnit
}

// BuildPage normalizes meta for page and evaluates the DRM flag for that page only.
func BuildPage(worksheetID string, meta Metadata, page int) PageContent {
	return PageContent{
		WorksheetID:  worksheetID,
		Page:         page,
		Mode:         meta.Mode,
		DRMProtected: meta.DRMProtectedPages.Protects(page),
		Units:        Normalize(meta, page),
	}
}
