package route

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnsureTrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		wantOK   bool
		wantCode int
		wantLoc  string
	}{
		{
			name:     "already canonical",
			path:     "/system/settings/",
			wantOK:   false,
			wantCode: 200,
		},
		{
			name:     "missing trailing slash",
			path:     "/system/settings",
			wantOK:   true,
			wantCode: http.StatusMovedPermanently,
			wantLoc:  "/system/settings/",
		},
		{
			name:     "grid path keeps query",
			path:     "/system/settings/grid?order_by=-id&page_size=5",
			wantOK:   true,
			wantCode: http.StatusMovedPermanently,
			wantLoc:  "/system/settings/grid/?order_by=-id&page_size=5",
		},
		{
			name:     "root path",
			path:     "/",
			wantOK:   false,
			wantCode: 200,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()

			got := EnsureTrailingSlash(rec, req)
			if got != tc.wantOK {
				t.Fatalf("EnsureTrailingSlash = %v, want %v", got, tc.wantOK)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if got {
				if loc := rec.Header().Get("Location"); loc != tc.wantLoc {
					t.Fatalf("location = %q, want %q", loc, tc.wantLoc)
				}
				return
			}
		})
	}
}
