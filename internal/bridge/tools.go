package bridge

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool is one catalogue entry: the schema the outer protocol advertises
// plus the pipeline that serves it. The catalogue is built once at
// startup and looked up by exact name at dispatch time.
type Tool struct {
	Definition mcp.Tool
	handler    toolFunc
}

// Every argument is declared required with an in-band "unspecified"
// sentinel instead of being optional, because some callers' schema
// generation degrades on optional fields. The normalizer turns
// sentinels back into true absence.

func paginationOpts() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("page",
			mcp.Required(),
			mcp.DefaultNumber(float64(PageSentinel)),
			mcp.Description("Page number, or -1 when unspecified"),
		),
		mcp.WithNumber("per_page",
			mcp.Required(),
			mcp.DefaultNumber(float64(PageSentinel)),
			mcp.Description("Items per page, or -1 when unspecified"),
		),
	}
}

func listAccessionsTool(name, desc string) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(desc)}
	opts = append(opts, paginationOpts()...)
	opts = append(opts,
		mcp.WithString("lang",
			mcp.Required(),
			mcp.DefaultString(""),
			mcp.Description("Metadata language filter: english, arabic, or empty when unspecified"),
		),
		mcp.WithArray("metadata_subjects",
			mcp.Required(),
			mcp.Description("Subject ids to filter by; empty array means no subject filter"),
			mcp.WithStringItems(),
		),
		mcp.WithBoolean("metadata_subjects_inclusive_filter",
			mcp.Required(),
			mcp.DefaultBool(false),
			mcp.Description("Match accessions carrying any of the subjects instead of all of them"),
		),
		mcp.WithString("query_term",
			mcp.Required(),
			mcp.DefaultString(""),
			mcp.Description("Free-text search term; empty when unspecified"),
		),
		mcp.WithString("url_filter",
			mcp.Required(),
			mcp.DefaultString(""),
			mcp.Description("Filter by seed URL; empty when unspecified"),
		),
		mcp.WithString("date_from",
			mcp.Required(),
			mcp.DefaultString(""),
			mcp.Description("Start date (YYYY-MM-DD); empty when unspecified"),
		),
		mcp.WithString("date_to",
			mcp.Required(),
			mcp.DefaultString(""),
			mcp.Description("End date (YYYY-MM-DD); empty when unspecified"),
		),
	)
	return mcp.NewTool(name, opts...)
}

func idTool(name, desc, idDesc string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(desc),
		mcp.WithString("id", mcp.Required(), mcp.Description(idDesc)),
	)
}

// Catalogue returns every tool the bridge exposes, in registration
// order. Six public operations; the accession reads also come in a
// private-scope variant.
func (h *Handlers) Catalogue() []Tool {
	updateOpts := []mcp.ToolOption{
		mcp.WithDescription("Update an accession's metadata. Fields left at their sentinel value are not changed."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Accession id")),
		mcp.WithString("visibility",
			mcp.Required(),
			mcp.DefaultString(""),
			mcp.Description("New visibility: public, private, or empty to leave unchanged"),
		),
		mcp.WithString("metadata_title",
			mcp.Required(),
			mcp.DefaultString(""),
			mcp.Description("New title; empty to leave unchanged"),
		),
		mcp.WithString("metadata_description",
			mcp.Required(),
			mcp.DefaultString(""),
			mcp.Description("New description; empty to leave unchanged"),
		),
		mcp.WithString("metadata_time",
			mcp.Required(),
			mcp.DefaultString(""),
			mcp.Description("New time period (ISO 8601); empty to leave unchanged"),
		),
		mcp.WithString("metadata_language",
			mcp.Required(),
			mcp.DefaultString(""),
			mcp.Description("New metadata language: english, arabic, or empty to leave unchanged"),
		),
		mcp.WithArray("metadata_subjects",
			mcp.Required(),
			mcp.Description("Replacement subject ids; empty array to leave unchanged"),
			mcp.WithStringItems(),
		),
	}

	return []Tool{
		{
			Definition: listAccessionsTool("list_accessions", "List public accessions in the archive with optional pagination and filters."),
			handler:    h.listAccessions,
		},
		{
			Definition: listAccessionsTool("list_private_accessions", "List private accessions in the archive with optional pagination and filters."),
			handler:    h.listPrivateAccessions,
		},
		{
			Definition: idTool("get_accession", "Get a single public accession, including its WACZ download URL.", "Accession id"),
			handler:    h.getAccession,
		},
		{
			Definition: idTool("get_private_accession", "Get a single private accession, including its WACZ download URL.", "Accession id"),
			handler:    h.getPrivateAccession,
		},
		{
			Definition: mcp.NewTool("update_accession", updateOpts...),
			handler:    h.updateAccession,
		},
		{
			Definition: mcp.NewTool("list_subjects",
				append([]mcp.ToolOption{
					mcp.WithDescription("List metadata subjects with optional pagination."),
				}, paginationOpts()...)...),
			handler: h.listSubjects,
		},
		{
			Definition: mcp.NewTool("create_subject",
				mcp.WithDescription("Create a metadata subject."),
				mcp.WithString("label", mcp.Required(), mcp.Description("Subject label; must be non-empty")),
				mcp.WithString("visibility",
					mcp.Required(),
					mcp.DefaultString("public"),
					mcp.Description("Subject visibility: public or private"),
				),
			),
			handler: h.createSubject,
		},
		{
			Definition: idTool("delete_subject", "Delete a metadata subject. A subject missing on the remote side is an error, not a success.", "Subject id"),
			handler:    h.deleteSubject,
		},
	}
}

// Definitions returns the tool schemas without live handlers, for
// introspection and doc generation.
func Definitions() []mcp.Tool {
	catalogue := (&Handlers{}).Catalogue()
	defs := make([]mcp.Tool, 0, len(catalogue))
	for _, t := range catalogue {
		defs = append(defs, t.Definition)
	}
	return defs
}

// Register adds the catalogue to the MCP server. A non-empty allowlist
// restricts registration to the named tools; names that match nothing
// in the catalogue fail startup, as does a duplicate catalogue entry.
func Register(srv *server.MCPServer, h *Handlers, allowlist []string) error {
	catalogue := h.Catalogue()

	byName := make(map[string]Tool, len(catalogue))
	for _, t := range catalogue {
		name := t.Definition.Name
		if _, dup := byName[name]; dup {
			return fmt.Errorf("duplicate tool registration: %s", name)
		}
		byName[name] = t
	}

	allowed := make(map[string]bool, len(allowlist))
	for _, name := range allowlist {
		if _, ok := byName[name]; !ok {
			return fmt.Errorf("tool allowlist names unknown tool %q", name)
		}
		allowed[name] = true
	}

	for _, t := range catalogue {
		if len(allowed) > 0 && !allowed[t.Definition.Name] {
			continue
		}
		srv.AddTool(t.Definition, h.handle(t.Definition.Name, t.handler))
	}
	return nil
}
