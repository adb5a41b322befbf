package pathparts

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want []string
	}{
		{
			name: "empty path",
			path: "",
			want: []string{},
		},
		{
			name: "single segment",
			path: "grid",
			want: []string{"grid"},
		},
		{
			name: "multiple segments",
			path: "system/settings/grid",
			want: []string{"system", "settings", "grid"},
		},
		{
			name: "ignores repeated slashes and surrounding spaces",
			path: " /system//settings/ grid / ",
			want: []string{"system", "settings", "grid"},
		},
		{
			name: "trailing slash",
			path: "grid/",
			want: []string{"grid"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Split(tc.path)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Split(%q) = %#v, want %#v", tc.path, got, tc.want)
			}
		})
	}
}
