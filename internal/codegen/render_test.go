package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadContractDocument(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "gen", "openapi", "swagger.json"))
	require.NoError(t, err)
	return data
}

func TestRender_ContractDocument(t *testing.T) {
	doc, err := ParseDocument(loadContractDocument(t))
	require.NoError(t, err)

	files, err := Render(doc)
	require.NoError(t, err)
	require.Contains(t, files, "types.gen.go")
	require.Contains(t, files, "calls.gen.go")

	types := string(files["types.gen.go"])
	assert.Contains(t, types, "type User struct")
	assert.Contains(t, types, "type Product struct")
	assert.Contains(t, types, "type Error struct")
	// Field names follow the document mechanically, not Go convention.
	assert.Contains(t, types, "ImageUrl")
	assert.Contains(t, types, "Sku")
	assert.NotContains(t, types, "ImageURL")
	assert.Contains(t, types, "LastLoginAt *time.Time")

	calls := string(files["calls.gen.go"])
	assert.Contains(t, calls, "func (c *Client) GetApiUsers(ctx context.Context) ([]User, *http.Response, error)")
	assert.Contains(t, calls, "func (c *Client) GetApiUsersById(ctx context.Context, id int64) (*User, *http.Response, error)")
	assert.Contains(t, calls, "func (c *Client) PutApiProductsById(ctx context.Context, id int64, body Product) (*http.Response, error)")
	assert.Contains(t, calls, "func (c *Client) DeleteApiProductsById(ctx context.Context, id int64) (*http.Response, error)")
}

// Rendering the same document twice must produce byte-identical output.
func TestRender_Deterministic(t *testing.T) {
	data := loadContractDocument(t)

	first, err := ParseDocument(data)
	require.NoError(t, err)
	second, err := ParseDocument(data)
	require.NoError(t, err)

	filesA, err := Render(first)
	require.NoError(t, err)
	filesB, err := Render(second)
	require.NoError(t, err)

	require.Equal(t, len(filesA), len(filesB))
	for name, content := range filesA {
		assert.Equal(t, content, filesB[name], name)
	}
}

// The committed bindings in gen/sdk must match what the committed
// document renders to. A mismatch means a generator ran without its
// output being committed.
func TestRender_CommittedBindingsAreFresh(t *testing.T) {
	doc, err := ParseDocument(loadContractDocument(t))
	require.NoError(t, err)

	files, err := Render(doc)
	require.NoError(t, err)

	for name, content := range files {
		committed, err := os.ReadFile(filepath.Join("..", "..", "gen", "sdk", name))
		require.NoError(t, err)
		assert.Equal(t, string(content), string(committed), name)
	}
}

func TestRender_FieldTags(t *testing.T) {
	required := FieldDef{Name: "imageUrl", GoName: "ImageUrl", GoType: "string"}
	assert.Equal(t, "`json:\"imageUrl\"`", required.Tag())

	optional := FieldDef{Name: "updatedAt", GoName: "UpdatedAt", GoType: "*time.Time", Optional: true}
	assert.Equal(t, "`json:\"updatedAt,omitempty\"`", optional.Tag())
}
