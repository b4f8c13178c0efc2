package settings

import "testing"

func TestSettings_Backends(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Settings
		wantProvider bool
		wantSearch   bool
	}{
		{name: "empty", cfg: Settings{}},
		{name: "blank token", cfg: Settings{Readwise: ReadwiseConfig{Token: "  "}}},
		{
			name:         "configured",
			cfg:          Settings{Readwise: ReadwiseConfig{Token: "tok"}, Search: SearchConfig{URL: "http://localhost:8080/search"}},
			wantProvider: true,
			wantSearch:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HasProvider(); got != tt.wantProvider {
				t.Fatalf("HasProvider() = %v, want %v", got, tt.wantProvider)
			}
			if got := tt.cfg.HasSearchBackend(); got != tt.wantSearch {
				t.Fatalf("HasSearchBackend() = %v, want %v", got, tt.wantSearch)
			}
		})
	}
}
