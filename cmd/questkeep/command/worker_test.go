package command

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-questkeep/internal/progress"
	"github.com/pixil98/go-questkeep/internal/session"
	"github.com/pixil98/go-questkeep/internal/world"
	"github.com/pixil98/go-testutil"
)

func TestConfig_SessionOptionsFade(t *testing.T) {
	tests := map[string]struct {
		fade   string
		dt     float64
		expMap string
	}{
		"default fade still running": {dt: 0.1, expMap: progress.MapOverworld},
		"default fade done":          {dt: 0.6, expMap: "cave"},
		"zero fade":                  {fade: "0s", dt: 0.01, expMap: "cave"},
		"long fade":                  {fade: "2s", dt: 0.6, expMap: progress.MapOverworld},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &Config{
				FadeDuration: tt.fade,
				Storage: StorageConfig{
					Maps:     AssetConfig[*world.MapDef]{Path: filepath.Join("..", "..", "..", "assets", "maps")},
					SaveFile: filepath.Join(t.TempDir(), "save.json"),
				},
				Session: SessionConfig{PlayerName: "Hero"},
			}

			registry, err := cfg.Storage.BuildRegistry()
			testutil.AssertEqual(t, "registry err", err, nil)

			ledger := cfg.Session.BuildLedger()
			ledger.SetQuestState(progress.QuestSwordCollected)

			s, err := session.New(ledger, registry, cfg.Storage.BuildGateway("fade-test"), cfg.sessionOptions("fade-test", nil)...)
			testutil.AssertEqual(t, "session err", err, nil)

			ctx := context.Background()
			s.Interact(ctx, 136, 104)
			testutil.AssertEqual(t, "fading", s.Fading(), true)

			testutil.AssertEqual(t, "tick err", s.Tick(ctx, tt.dt), nil)
			testutil.AssertEqual(t, "map", ledger.CurrentMap(), tt.expMap)
		})
	}
}
