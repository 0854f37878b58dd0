package asset

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestServiceLifecycle(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	path := writeManifest(t, dir, `
bundles:
  - name: ui
    assets:
      - { name: glow, path: glow.frag, type: shader }
`)

	tests := []struct {
		name     string
		manifest string
		wantErr  bool
		wantLen  int
	}{
		{"no manifest", "", false, 0},
		{"missing file", filepath.Join(dir, "absent.yaml"), false, 0},
		{"loaded", path, false, 1},
		{"broken", writeManifest(t, t.TempDir(), "bundles: [\n"), true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(tt.manifest, zap.NewNop())
			err := s.Init()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init error = %v, wantErr %v", err, tt.wantErr)
			}
			if s.Manager().Len() != tt.wantLen {
				t.Errorf("Len = %d, want %d", s.Manager().Len(), tt.wantLen)
			}

			var published []any
			s.Contribute(func(c any) { published = append(published, c) })
			if len(published) != 1 || published[0] != s.Manager() {
				t.Errorf("published %v, want the manager", published)
			}

			if err := s.Stop(); err != nil {
				t.Fatalf("Stop: %v", err)
			}
			if s.Manager().Len() != 0 {
				t.Error("Stop kept assets")
			}
		})
	}
}
