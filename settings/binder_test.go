package settings

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) Document {
	t.Helper()
	doc, err := Parse(filepath.Join("testdata", "config.toml"))
	require.NoError(t, err)
	return doc
}

// remove deletes the value at a dotted path from doc.
func remove(doc Document, path string) {
	keys := strings.Split(path, ".")
	table := map[string]any(doc)
	for _, k := range keys[:len(keys)-1] {
		table = table[k].(map[string]any)
	}
	delete(table, keys[len(keys)-1])
}

// set replaces the value at a dotted path in doc.
func set(doc Document, path string, v any) {
	keys := strings.Split(path, ".")
	table := map[string]any(doc)
	for _, k := range keys[:len(keys)-1] {
		table = table[k].(map[string]any)
	}
	table[keys[len(keys)-1]] = v
}

func TestBind_AllFields(t *testing.T) {
	s, err := Bind(loadFixture(t))
	require.NoError(t, err)

	assert.Equal(t, "token-123", s.BotToken)
	assert.Equal(t, "CarFigures", s.BotName)
	assert.Equal(t, "c.", s.Prefix)
	assert.True(t, s.SpawnAlert)
	assert.Equal(t, 0x1F8B4C, s.DefaultEmbedColor)
	require.NotNil(t, s.ShardCount)
	assert.Equal(t, 2, *s.ShardCount)
	assert.Nil(t, s.MaxFavorites)

	assert.Equal(t, "carfigure", s.CollectibleName)
	assert.Equal(t, "Type", s.CartypeReplacement)
	assert.Equal(t, "kg", s.KGReplacement)

	assert.Equal(t, "garage", s.CarsGroupName)
	assert.Equal(t, "info", s.InfoGroupName)
	assert.Equal(t, "player", s.PlayerGroupName)
	assert.Equal(t, "compare", s.CompareCommandName)
	assert.Equal(t, "Compare two cars", s.CompareCommandDesc)

	assert.Equal(t, "https://github.com/example/carfigures", s.RepositoryLink)
	assert.Equal(t, "https://discord.gg/example", s.DiscordInvite)
	assert.Equal(t, "https://example.com/tos", s.TermsOfService)
	assert.Equal(t, "https://example.com/privacy", s.PrivacyPolicy)
	assert.Equal(t, "https://top.gg/bot/1", s.TopGG)

	assert.Equal(t, "A bot to collect cars.", s.InfoDescription)
	assert.Equal(t, "Started as a fork.", s.InfoHistory)
	assert.Equal(t, []string{"alice", "bob"}, s.Contributors)

	assert.Equal(t, []int64{111, 222}, s.SuperuserGuildIDs)
	assert.Equal(t, []int64{333}, s.RootRoleIDs)
	assert.Equal(t, []int64{}, s.SuperuserRoleIDs)
	require.NotNil(t, s.LogChannel)
	assert.Equal(t, int64(444), *s.LogChannel)

	assert.False(t, s.TeamOwners)
	assert.Equal(t, []int64{555, 666}, s.CoOwners)

	assert.True(t, s.PrometheusEnabled)
	assert.Equal(t, "127.0.0.1", s.PrometheusHost)
	assert.Equal(t, 9100, s.PrometheusPort)
}

func TestBind_MissingEachRequiredPath(t *testing.T) {
	for _, path := range RequiredPaths() {
		t.Run(path, func(t *testing.T) {
			doc := loadFixture(t)
			remove(doc, path)

			s, err := Bind(doc)
			assert.Nil(t, s)

			var missing *MissingKeyError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, path, missing.Path)
		})
	}
}

func TestBind_ReportsFirstFailureInDeclarationOrder(t *testing.T) {
	doc := loadFixture(t)
	remove(doc, "prometheus.port")
	remove(doc, "appearance.cartype")
	set(doc, "owners.co_owners", "nope")

	_, err := Bind(doc)

	var missing *MissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "appearance.cartype", missing.Path)
}

func TestBind_MissingSection(t *testing.T) {
	doc := loadFixture(t)
	delete(doc, "settings")

	_, err := Bind(doc)

	var missing *MissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "settings.bot_token", missing.Path)
}

func TestBind_OptionalPathsMayBeAbsent(t *testing.T) {
	doc := loadFixture(t)
	remove(doc, "settings.shard_count")

	s, err := Bind(doc)
	require.NoError(t, err)
	assert.Nil(t, s.ShardCount)
	assert.Nil(t, s.MaxFavorites)
}

func TestBind_TypeMismatch(t *testing.T) {
	tests := []struct {
		path     string
		value    any
		expected string
		actual   string
	}{
		{path: "settings.bot_name", value: int64(1), expected: "string", actual: "integer"},
		{path: "settings.spawnalert", value: "yes", expected: "boolean", actual: "string"},
		{path: "settings.default_embed_color", value: int64(0x1F8B4C), expected: "hex color string", actual: "integer"},
		{path: "settings.shard_count", value: "two", expected: "integer", actual: "string"},
		{path: "prometheus.port", value: 9100.5, expected: "integer", actual: "float"},
		{path: "info.about.contributors", value: "alice", expected: "array of strings", actual: "string"},
		{path: "info.about.contributors", value: []any{"alice", int64(2)}, expected: "array of strings", actual: "array containing integer"},
		{path: "superuser.guild_ids", value: []any{int64(1), "2"}, expected: "array of integers", actual: "array containing string"},
		{path: "superuser.log_channel", value: true, expected: "integer", actual: "boolean"},
		{path: "info.links.top_gg", value: map[string]any{}, expected: "string", actual: "table"},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.actual, func(t *testing.T) {
			doc := loadFixture(t)
			set(doc, tt.path, tt.value)

			s, err := Bind(doc)
			assert.Nil(t, s)

			var mismatch *TypeMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tt.path, mismatch.Path)
			assert.Equal(t, tt.expected, mismatch.Expected)
			assert.Equal(t, tt.actual, mismatch.Actual)
		})
	}
}

func TestBind_InvalidHexColor(t *testing.T) {
	doc := loadFixture(t)
	set(doc, "settings.default_embed_color", "zzzzzz")

	s, err := Bind(doc)
	assert.Nil(t, s)

	var invalid *InvalidFormatError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "settings.default_embed_color", invalid.Path)
	assert.Equal(t, "zzzzzz", invalid.Value)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "1F8B4C", want: 2067276},
		{in: "#1f8b4c", want: 2067276},
		{in: "0x000001", want: 1},
		{in: "FFFFFF", want: 16777215},
		{in: "zzzzzz", wantErr: true},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequiredPaths(t *testing.T) {
	paths := RequiredPaths()
	assert.Equal(t, "settings.bot_token", paths[0])
	assert.Equal(t, "prometheus.port", paths[len(paths)-1])
	assert.NotContains(t, paths, "settings.shard_count")
	assert.NotContains(t, paths, "settings.max_favorites")
}
