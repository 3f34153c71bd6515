package bridge

import (
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueNamesAreCompleteAndUnique(t *testing.T) {
	want := []string{
		"list_accessions",
		"list_private_accessions",
		"get_accession",
		"get_private_accession",
		"update_accession",
		"list_subjects",
		"create_subject",
		"delete_subject",
	}

	catalogue := (&Handlers{}).Catalogue()
	require.Len(t, catalogue, len(want))

	seen := make(map[string]bool, len(catalogue))
	var got []string
	for _, tool := range catalogue {
		name := tool.Definition.Name
		assert.False(t, seen[name], "duplicate tool name %q", name)
		seen[name] = true
		got = append(got, name)
	}
	assert.ElementsMatch(t, want, got)
}

func TestCatalogueSchemasDeclareEveryFieldRequired(t *testing.T) {
	for _, tool := range (&Handlers{}).Catalogue() {
		t.Run(tool.Definition.Name, func(t *testing.T) {
			props := tool.Definition.InputSchema.Properties
			required := tool.Definition.InputSchema.Required
			assert.Len(t, required, len(props),
				"every declared property must be marked required so schema generation stays uniform")
		})
	}
}

func TestRegisterRejectsUnknownAllowlistName(t *testing.T) {
	h := testHandlers(newStubArchive())
	srv := server.NewMCPServer("sda-mcp-test", "0.0.0", server.WithToolCapabilities(true))

	err := Register(srv, h, []string{"list_accessions", "no_such_tool"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_tool")
}

func TestRegisterWithAllowlistSucceeds(t *testing.T) {
	h := testHandlers(newStubArchive())
	srv := server.NewMCPServer("sda-mcp-test", "0.0.0", server.WithToolCapabilities(true))

	require.NoError(t, Register(srv, h, []string{"list_subjects", "create_subject"}))
}

func TestDefinitionsMatchCatalogue(t *testing.T) {
	defs := Definitions()
	catalogue := (&Handlers{}).Catalogue()
	require.Len(t, defs, len(catalogue))
	for i, d := range defs {
		assert.Equal(t, catalogue[i].Definition.Name, d.Name)
	}
}
