package templates

import "strings"

// BreadcrumbItem is one entry in a page trail.
type BreadcrumbItem struct {
	// Label is the visible breadcrumb text.
	Label string
	// URL is empty for the entry naming the current page.
	URL string
}

// BreadcrumbSegmentLabeler names a path segment. fullPath carries the
// accumulated path up to and including segment, for example
// "/system/settings/grid".
type BreadcrumbSegmentLabeler func(segment string, fullPath string, loc Localizer) string

// PathBreadcrumbOptions controls how a trail is derived from a path.
type PathBreadcrumbOptions struct {
	// IncludeRoot prepends a dashboard entry to non-empty trails.
	IncludeRoot bool
	// RootPath is the root entry's URL. Blank means "/".
	RootPath string
	// RootLabel is the localization key for the root entry.
	RootLabel string
	// LabelForSegment resolves labels for the remaining segments.
	// Blank results fall back to the raw segment.
	LabelForSegment BreadcrumbSegmentLabeler
}

// BuildPathBreadcrumbs derives a trail from a request path with a
// dashboard root and raw segment labels.
func BuildPathBreadcrumbs(path string, loc Localizer) []BreadcrumbItem {
	return BuildPathBreadcrumbsWithOptions(path, loc, PathBreadcrumbOptions{
		IncludeRoot: true,
		RootPath:    "/",
		RootLabel:   "dashboard.title",
	})
}

// BuildPathBreadcrumbsWithOptions derives a trail with caller-supplied
// labeling. The entry for the current page carries no URL unless it is
// the only segment.
func BuildPathBreadcrumbsWithOptions(path string, loc Localizer, options PathBreadcrumbOptions) []BreadcrumbItem {
	segments := splitPathSegments(path)
	if len(segments) == 0 {
		return []BreadcrumbItem{}
	}
	labelFor := options.LabelForSegment
	if labelFor == nil {
		labelFor = func(segment, _ string, _ Localizer) string { return segment }
	}

	trail := make([]BreadcrumbItem, 0, len(segments)+1)
	if options.IncludeRoot {
		trail = append(trail, BreadcrumbItem{Label: T(loc, options.RootLabel), URL: rootOrSlash(options.RootPath)})
	}

	accumulated := ""
	for i, segment := range segments {
		accumulated += "/" + segment
		label := strings.TrimSpace(labelFor(segment, accumulated, loc))
		if label == "" {
			label = segment
		}
		item := BreadcrumbItem{Label: label}
		if i < len(segments)-1 || len(segments) == 1 {
			item.URL = accumulated
		}
		trail = append(trail, item)
	}
	return trail
}

func splitPathSegments(path string) []string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return nil
	}
	var segments []string
	for _, segment := range strings.Split(trimmed, "/") {
		if segment = strings.TrimSpace(segment); segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func rootOrSlash(rootPath string) string {
	if rootPath = strings.TrimSpace(rootPath); rootPath != "" {
		return rootPath
	}
	return "/"
}
