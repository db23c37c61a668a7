package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	r := Default()
	require.NoError(t, r.Validate())
	assert.Equal(t, 25.0, r.CollisionRadius())
	assert.InDelta(t, 1.0/60, r.TickSeconds(), 1e-12)
	assert.False(t, r.Weapons[WeaponPlasmaGun].Automatic)
	assert.True(t, r.Weapons[WeaponMiniGun].Automatic)
}

func TestLoadFromReader_OverridesDefaults(t *testing.T) {
	src := `
enemy_count: 2
enemy_speed: 2
escalate_when: "Kills >= 3"
weapons:
  mini_gun:
    automatic: true
    cooldown: 0.05
`
	r, err := LoadFromReader(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, r.EnemyCount)
	assert.Equal(t, 2.0, r.EnemySpeed)
	assert.Equal(t, "Kills >= 3", r.EscalateWhen)
	assert.Equal(t, 0.05, r.Weapons[WeaponMiniGun].Cooldown)
	// untouched keys keep their defaults
	assert.Equal(t, 50.0, r.TileSize)
	assert.Contains(t, r.Weapons, WeaponPlasmaGun)
}

func TestLoadFromReader_EmptyDocumentYieldsDefaults(t *testing.T) {
	r, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default().EnemyCount, r.EnemyCount)
}

func TestLoadFromReader_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("enemy_cnt: 3\n"))
	require.Error(t, err)
}

func TestLoadFromReader_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"zero tile":        "tile_size: 0\n",
		"oversized player": "player_size: 60\n",
		"negative enemies": "enemy_count: -1\n",
		"unknown weapon":   "start_weapon: railgun\n",
		"zero los step":    "los_step: 0\n",
		"empty rule":       "escalate_when: \"\"\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRules), "got %v", err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player_health: 4\n"), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, r.PlayerHealth)

	r, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().PlayerHealth, r.PlayerHealth)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestLoadTOML(t *testing.T) {
	src := `
enemy_count = 3
escalate_when = "Kills >= 2"

[weapons.mini_gun]
automatic = true
cooldown = 0.2
`
	r, err := LoadTOML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, 3, r.EnemyCount)
	assert.Equal(t, "Kills >= 2", r.EscalateWhen)
	assert.Equal(t, 0.2, r.Weapons[WeaponMiniGun].Cooldown)
	assert.Contains(t, r.Weapons, WeaponPlasmaGun)

	_, err = LoadTOML([]byte("enemy_cnt = 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enemy_cnt")

	_, err = LoadTOML([]byte("tile_size = 0\n"))
	assert.ErrorIs(t, err, ErrInvalidRules)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte("player_health = 6\n"), 0o600))
	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, r.PlayerHealth)
}
