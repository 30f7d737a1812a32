package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.RootDir)
	assert.Equal(t, filepath.Join(root, "learning"), cfg.LearningDir)
	assert.Equal(t, filepath.Join(root, "cursor", "skills"), cfg.SkillsDir)
	assert.Equal(t, filepath.Join(root, "cursor", "skills-cursor"), cfg.SkillsCursorDir)
	assert.Equal(t, 5, cfg.PendingReminder)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8765, cfg.Server.Port)
	assert.Empty(t, cfg.Sync.Dest)
}

func TestLoadConfigFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "skillhub.yaml"), []byte(`
pending_reminder: 9
server:
  port: 9100
sync:
  dest: mirror
  ignore:
    - "**/draft-*"
`), 0644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.PendingReminder)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, filepath.Join(root, "mirror"), cfg.Sync.Dest)
	assert.Equal(t, []string{"**/draft-*"}, cfg.Sync.Ignore)
}

func TestEnvOverridesThreshold(t *testing.T) {
	t.Setenv("SKILLHUB_PENDING_REMINDER", "12")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.PendingReminder)
}

func TestCollectionsMap(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	cols := cfg.Collections()
	assert.Equal(t, cfg.SkillsDir, cols[TargetSkills])
	assert.Equal(t, cfg.SkillsCursorDir, cols[TargetSkillsCursor])
	assert.Len(t, cols, len(TargetNames))
}

func TestEnsureLayout(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cfg.EnsureLayout())

	for _, src := range []string{"manual", "generated"} {
		info, err := os.Stat(filepath.Join(cfg.LearningDir, src))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
