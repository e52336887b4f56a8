// Package mcpserver exposes the renderer over the Model Context Protocol,
// so agents can render docstrings and substitute templates without shelling
// out to the CLI.
package mcpserver

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/npmd-dev/npmd/internal/directive"
	"github.com/npmd-dev/npmd/internal/members"
	"github.com/npmd-dev/npmd/internal/render"
)

//go:embed instructions.md
var instructions string

type Server struct {
	mcpServer *server.MCPServer
	engine    *render.Engine
}

func NewServer(engine *render.Engine) *Server {
	s := &Server{engine: engine}

	mcpServer := server.NewMCPServer(
		"npmd",
		"0.1.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("render_object",
			mcp.WithDescription("Render the numpydoc docstring of an indexed object as Markdown, optionally expanding selected members into their own documented blocks."),
			mcp.WithString("obj",
				mcp.Description("Fully qualified object path (e.g., \"mypkg.MyClass.my_method\")"),
				mcp.Required(),
			),
			mcp.WithString("alias",
				mcp.Description("Display name used in the rendered header instead of the object path"),
			),
			mcp.WithString("examples_md_lang",
				mcp.Description("Language tag for example code fences (default \"python\"; \"raw\" for unlabeled fences)"),
			),
			mcp.WithNumber("md_section_level",
				mcp.Description("Heading level for docstring sections; the object header sits one level above (default 3)"),
			),
			mcp.WithArray("members",
				mcp.Description("Member selectors: \"public$\", \"private$\", \"dunder$\", \"+name\", \"-name\", or a bare member name"),
				mcp.Items(map[string]interface{}{"type": "string"}),
			),
			mcp.WithBoolean("remove_doctest_skip",
				mcp.Description("Strip \"# doctest: +SKIP\" markers from example input"),
			),
			mcp.WithBoolean("remove_doctest_blanklines",
				mcp.Description("Replace \"<BLANKLINE>\" markers in example output with empty lines"),
			),
		),
		s.handleRenderObject,
	)

	mcpServer.AddTool(
		mcp.NewTool("render_string",
			mcp.WithDescription("Substitute every {{...}} placeholder in a Markdown template with rendered documentation. With ignore_errors, failing placeholders stay verbatim and come back as issues."),
			mcp.WithString("text",
				mcp.Description("Template text containing placeholder lines"),
				mcp.Required(),
			),
			mcp.WithBoolean("ignore_errors",
				mcp.Description("Keep going past failing placeholders instead of aborting (default false)"),
			),
		),
		s.handleRenderString,
	)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"npdoc://{object}",
			"Rendered object documentation",
			mcp.WithTemplateDescription("Read the rendered Markdown documentation of a fully qualified object path."),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleReadResource,
	)
}

func (s *Server) handleRenderObject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	target, _ := args["obj"].(string)
	if target == "" {
		return mcp.NewToolResultError("missing required parameter: obj"), nil
	}

	d := &directive.Directive{
		Target:       target,
		ExamplesLang: directive.DefaultExamplesLang,
		SectionLevel: directive.DefaultSectionLevel,
	}
	if alias, ok := args["alias"].(string); ok {
		d.Alias = alias
	}
	if lang, ok := args["examples_md_lang"].(string); ok && lang != "" {
		d.ExamplesLang = lang
	}
	if level, ok := args["md_section_level"].(float64); ok {
		if level < 1 {
			return mcp.NewToolResultError("md_section_level must be at least 1"), nil
		}
		d.SectionLevel = int(level)
	}
	if skip, ok := args["remove_doctest_skip"].(bool); ok {
		d.RemoveDoctestSkip = skip
	}
	if blanks, ok := args["remove_doctest_blanklines"].(bool); ok {
		d.RemoveDoctestBlanklines = blanks
	}
	if rawMembers, ok := args["members"]; ok {
		membersJSON, _ := json.Marshal(rawMembers)
		var tokens []string
		if err := json.Unmarshal(membersJSON, &tokens); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid members parameter: %v", err)), nil
		}
		parsed, err := members.ParseTokens(tokens)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid members parameter: %v", err)), nil
		}
		d.Members = parsed
	}

	fragment, err := s.engine.RenderObject(d)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render %s: %v", target, err)), nil
	}
	return mcp.NewToolResultText(fragment), nil
}

type renderStringResponse struct {
	Markdown string              `json:"markdown"`
	Issues   []renderStringIssue `json:"issues,omitempty"`
}

type renderStringIssue struct {
	Line   string `json:"line"`
	Offset int    `json:"offset"`
	Error  string `json:"error"`
}

func (s *Server) handleRenderString(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	text, _ := args["text"].(string)
	if text == "" {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}
	ignoreErrors, _ := args["ignore_errors"].(bool)

	result, err := s.engine.RenderString(text, ignoreErrors)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering failed: %v", err)), nil
	}

	resp := renderStringResponse{Markdown: result.Text}
	for _, issue := range result.Issues {
		resp.Issues = append(resp.Issues, renderStringIssue{
			Line:   strings.TrimSpace(issue.Line),
			Offset: issue.Offset,
			Error:  issue.Err.Error(),
		})
	}
	resultJSON, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	target := strings.TrimPrefix(uri, "npdoc://")
	if target == "" || target == uri {
		return nil, fmt.Errorf("invalid resource URI: %s", uri)
	}

	d := &directive.Directive{
		Target:       target,
		ExamplesLang: directive.DefaultExamplesLang,
		SectionLevel: directive.DefaultSectionLevel,
	}
	fragment, err := s.engine.RenderObject(d)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", target, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     fragment,
		},
	}, nil
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) Shutdown(_ context.Context) error {
	return nil
}
