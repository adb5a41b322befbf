package templates

import (
	"reflect"
	"testing"

	"golang.org/x/text/message"
)

type breadcrumbLocalizer struct{}

func (breadcrumbLocalizer) Sprintf(key message.Reference, _ ...any) string {
	if s, ok := key.(string); ok {
		switch s {
		case "dashboard.title":
			return "Dashboard"
		case "area.system":
			return "System"
		case "area.network":
			return "Network"
		}
		return s
	}
	return ""
}

func TestBuildPathBreadcrumbs(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []BreadcrumbItem
	}{
		{
			name: "single segment keeps its URL",
			path: "/alerts",
			expected: []BreadcrumbItem{
				{Label: "Dashboard", URL: "/"},
				{Label: "alerts", URL: "/alerts"},
			},
		},
		{
			name: "model page",
			path: "/system/settings",
			expected: []BreadcrumbItem{
				{Label: "Dashboard", URL: "/"},
				{Label: "system", URL: "/system"},
				{Label: "settings"},
			},
		},
		{
			name: "grid page",
			path: "/system/settings/grid",
			expected: []BreadcrumbItem{
				{Label: "Dashboard", URL: "/"},
				{Label: "system", URL: "/system"},
				{Label: "settings", URL: "/system/settings"},
				{Label: "grid"},
			},
		},
		{
			name: "repeated slashes collapse",
			path: "//system//settings/",
			expected: []BreadcrumbItem{
				{Label: "Dashboard", URL: "/"},
				{Label: "system", URL: "/system"},
				{Label: "settings"},
			},
		},
		{
			name:     "root has no trail",
			path:     "/",
			expected: []BreadcrumbItem{},
		},
		{
			name:     "blank path has no trail",
			path:     "   ",
			expected: []BreadcrumbItem{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := BuildPathBreadcrumbs(tc.path, breadcrumbLocalizer{})
			if !reflect.DeepEqual(got, tc.expected) {
				t.Fatalf("BuildPathBreadcrumbs(%q) = %#v, expected %#v", tc.path, got, tc.expected)
			}
		})
	}
}

func TestBuildPathBreadcrumbsWithOptionsUsesLabeler(t *testing.T) {
	labeler := func(segment string, fullPath string, loc Localizer) string {
		switch segment {
		case "system":
			return T(loc, "area.system")
		case "network":
			return T(loc, "area.network")
		}
		return ""
	}

	got := BuildPathBreadcrumbsWithOptions("/system/settings", breadcrumbLocalizer{}, PathBreadcrumbOptions{
		IncludeRoot:     true,
		RootPath:        "/",
		RootLabel:       "dashboard.title",
		LabelForSegment: labeler,
	})
	expected := []BreadcrumbItem{
		{Label: "Dashboard", URL: "/"},
		{Label: "System", URL: "/system"},
		{Label: "settings"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("breadcrumbs = %#v, expected %#v", got, expected)
	}
}

func TestBuildPathBreadcrumbsWithOptionsOmitsRoot(t *testing.T) {
	got := BuildPathBreadcrumbsWithOptions("/network/globalconfiguration", breadcrumbLocalizer{}, PathBreadcrumbOptions{})
	if len(got) == 0 {
		t.Fatal("expected a trail without the root entry")
	}
	if got[0].Label == "Dashboard" {
		t.Fatalf("trail should not start with Dashboard, got %#v", got)
	}
}
