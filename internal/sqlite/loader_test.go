// Tests for JSONL loading: order, tolerance of bad lines and forward
// compatibility with keys this version does not know.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoad_SkipsUnusableLines(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		jsonl   string
		wantIDs []string
		ids     func(types.Snapshot) []string
	}{
		{
			name: "malformed and keyless records are skipped",
			file: recordsMapping.file,
			jsonl: `{"id":"r1","name":"One","category":"Premium","data":{}}
not json at all
{"name":"No id","category":"Boutique"}

{"id":"r2","name":"Two","category":"Boutique","data":{}}
`,
			wantIDs: []string{"r1", "r2"},
			ids: func(s types.Snapshot) []string {
				var out []string
				for _, r := range s.Records {
					out = append(out, r.ID)
				}
				return out
			},
		},
		{
			name: "duplicate record ids are both kept",
			file: recordsMapping.file,
			jsonl: `{"id":"r1","name":"First","category":"Premium"}
{"id":"r1","name":"Second","category":"Premium"}
`,
			wantIDs: []string{"r1", "r1"},
			ids: func(s types.Snapshot) []string {
				var out []string
				for _, r := range s.Records {
					out = append(out, r.ID)
				}
				return out
			},
		},
		{
			name: "second account with the same email is dropped",
			file: usersMapping.file,
			jsonl: `{"id":"u1","email":"ana@example.com","name":"Ana","role":"Admin","isActive":true}
{"id":"u2","email":"ANA@example.com","name":"Imposter","role":"User","isActive":true}
{"id":"u3","email":"bo@example.com","name":"Bo","role":"Owner","isActive":true}
`,
			wantIDs: []string{"u1", "u3"},
			ids: func(s types.Snapshot) []string {
				var out []string
				for _, u := range s.Users {
					out = append(out, u.ID)
				}
				return out
			},
		},
		{
			name: "duplicate field ids keep the first",
			file: fieldsMapping.file,
			jsonl: `{"id":"f2","name":"Second","type":"text"}
{"id":"f1","name":"First","type":"number"}
{"id":"f2","name":"Again","type":"text"}
`,
			wantIDs: []string{"f2", "f1"},
			ids: func(s types.Snapshot) []string {
				var out []string
				for _, f := range s.Schema {
					out = append(out, f.ID)
				}
				return out
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.jsonl)

			b := attach(t, emptyConfig(dir))
			snap, err := b.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, tt.ids(snap))
		})
	}
}

func TestLoad_UnknownKeysSurviveUnrelatedSaves(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, recordsMapping.file,
		`{"id":"r1","name":"One","category":"Premium","data":{"x":"1"},"futureField":"keep me"}`+"\n")

	b := attach(t, emptyConfig(dir))
	snap, err := b.Load()
	require.NoError(t, err)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "One", snap.Records[0].Name)
	assert.True(t, snap.Records[0].Value("x").Equal(types.Text("1")))

	require.NoError(t, b.Save(types.Patch{
		Parts:  types.PartSchema,
		Schema: []types.Field{{ID: "x", Name: "X", Type: types.FieldText}},
	}))

	body, err := os.ReadFile(filepath.Join(dir, recordsMapping.file))
	require.NoError(t, err)
	assert.Contains(t, string(body), "futureField", "records.jsonl is rewritten only when records change")
}

func TestLoad_SettingsFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, settingsMapping.file, `{"key":"config","value":"not an object"}
{"key":"session","value":{"currentUserId":"u1"}}
`)

	b := attach(t, emptyConfig(dir))
	snap, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultSystemConfig(), snap.Config)
	assert.Equal(t, "u1", snap.CurrentUserID)
}
