package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/propjson/internal/core/domain"
)

// ListFilesInput is the input schema for the list_files tool.
type ListFilesInput struct {
	Dir string `json:"dir" jsonschema:"directory to list"`
	Ext string `json:"ext,omitempty" jsonschema:"extension to match: json or properties (default json)"`
}

// ListFilesOutput is the output schema for the list_files tool.
type ListFilesOutput struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// FileInput identifies one file in a directory.
type FileInput struct {
	Dir  string `json:"dir" jsonschema:"directory containing the file"`
	File string `json:"file" jsonschema:"file name including extension"`
}

// ReadFileOutput is the output schema for the read_file tool.
type ReadFileOutput struct {
	Content string `json:"content"`
}

// ReadLinesOutput is the output schema for the read_lines tool.
type ReadLinesOutput struct {
	Lines []string `json:"lines"`
	Count int      `json:"count"`
}

// WriteJSONInput is the input schema for the write_json tool.
type WriteJSONInput struct {
	Dir     string `json:"dir" jsonschema:"output directory, which must exist"`
	File    string `json:"file" jsonschema:"file name; a .json or .properties extension is replaced"`
	Payload string `json:"payload" jsonschema:"serialised JSON written verbatim"`
}

// WritePropertiesInput is the input schema for the write_properties tool.
type WritePropertiesInput struct {
	Dir     string   `json:"dir" jsonschema:"output directory, which must exist"`
	File    string   `json:"file" jsonschema:"file name; a .json or .properties extension is replaced"`
	Entries []string `json:"entries" jsonschema:"entries written one per record, newlines escaped"`
}

// WriteOutput is the output schema for the write tools.
type WriteOutput struct {
	Path string `json:"path"`
}

// ConvertInput is the input schema for the convert tool.
type ConvertInput struct {
	SrcDir string `json:"src_dir" jsonschema:"directory holding the source files"`
	OutDir string `json:"out_dir,omitempty" jsonschema:"output directory (default src_dir)"`
	To     string `json:"to" jsonschema:"target format: properties or json"`
}

// ConvertOutput is the output schema for the convert tool.
type ConvertOutput struct {
	RunID     string   `json:"run_id"`
	Converted []string `json:"converted"`
	Skipped   []string `json:"skipped"`
}

// defaultRunLimit applies when list_runs is called without a limit.
const defaultRunLimit = 20

// ListRunsInput is the input schema for the list_runs tool.
type ListRunsInput struct {
	Limit *int `json:"limit,omitempty" jsonschema:"maximum number of runs (default 20, 0 or less for all)"`
}

// RunSummary describes one recorded conversion run.
type RunSummary struct {
	RunID       string   `json:"run_id"`
	SourceDir   string   `json:"source_dir"`
	OutputDir   string   `json:"output_dir"`
	Target      string   `json:"target"`
	Converted   []string `json:"converted"`
	Skipped     []string `json:"skipped"`
	StartedAt   string   `json:"started_at"`
	CompletedAt string   `json:"completed_at"`
}

// ListRunsOutput is the output schema for the list_runs tool.
type ListRunsOutput struct {
	Runs  []RunSummary `json:"runs"`
	Count int          `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_files",
		Description: "List .json or .properties files in a directory",
	}, s.handleListFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_file",
		Description: "Read a file as a UTF-8 string",
	}, s.handleReadFile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_lines",
		Description: "Read a file's lines, skipping blank lines and lines starting with # or !",
	}, s.handleReadLines)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "write_json",
		Description: "Write a JSON payload to <dir>/<file>.json",
	}, s.handleWriteJSON)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "write_properties",
		Description: "Write entries to <dir>/<file>.properties separated by blank lines",
	}, s.handleWriteProperties)

	if s.ports.Conversion != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "convert",
			Description: "Convert every file in a directory to the other format",
		}, s.handleConvert)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_runs",
			Description: "List recorded conversion runs, newest first",
		}, s.handleListRuns)
	}
}

func (s *Server) handleListFiles(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListFilesInput,
) (*mcp.CallToolResult, ListFilesOutput, error) {
	ext := input.Ext
	if ext == "" {
		ext = string(domain.FormatJSON)
	}
	format, err := domain.ParseFormat(ext)
	if err != nil {
		return nil, ListFilesOutput{}, err
	}

	files, err := s.ports.Files.ListByExtension(input.Dir, string(format))
	if err != nil {
		return nil, ListFilesOutput{}, err
	}
	return nil, ListFilesOutput{Files: files, Count: len(files)}, nil
}

func (s *Server) handleReadFile(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FileInput,
) (*mcp.CallToolResult, ReadFileOutput, error) {
	content, err := s.ports.Files.ReadAsString(input.Dir, input.File)
	if err != nil {
		return nil, ReadFileOutput{}, err
	}
	return nil, ReadFileOutput{Content: content}, nil
}

func (s *Server) handleReadLines(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FileInput,
) (*mcp.CallToolResult, ReadLinesOutput, error) {
	lines, err := s.ports.Files.ReadAsLines(ctx, input.Dir, input.File)
	if err != nil {
		return nil, ReadLinesOutput{}, err
	}
	return nil, ReadLinesOutput{Lines: lines, Count: len(lines)}, nil
}

func (s *Server) handleWriteJSON(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input WriteJSONInput,
) (*mcp.CallToolResult, WriteOutput, error) {
	path, err := s.ports.Files.WriteJSON(input.Dir, input.File, input.Payload)
	if err != nil {
		return nil, WriteOutput{}, err
	}
	return nil, WriteOutput{Path: path}, nil
}

func (s *Server) handleWriteProperties(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input WritePropertiesInput,
) (*mcp.CallToolResult, WriteOutput, error) {
	path, err := s.ports.Files.WriteProperties(input.Dir, input.File, input.Entries)
	if err != nil {
		return nil, WriteOutput{}, err
	}
	return nil, WriteOutput{Path: path}, nil
}

func (s *Server) handleConvert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConvertInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	target, err := domain.ParseFormat(input.To)
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	outDir := input.OutDir
	if outDir == "" {
		outDir = input.SrcDir
	}

	report, err := s.ports.Conversion.Convert(ctx, target, input.SrcDir, outDir)
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	return nil, ConvertOutput{
		RunID:     report.RunID,
		Converted: report.Converted,
		Skipped:   report.Skipped,
	}, nil
}

func (s *Server) handleListRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRunsInput,
) (*mcp.CallToolResult, ListRunsOutput, error) {
	limit := defaultRunLimit
	if input.Limit != nil {
		limit = *input.Limit
	}

	runs, err := s.ports.Conversion.History(ctx, limit)
	if err != nil {
		return nil, ListRunsOutput{}, err
	}

	summaries := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		summaries = append(summaries, RunSummary{
			RunID:       r.RunID,
			SourceDir:   r.SourceDir,
			OutputDir:   r.OutputDir,
			Target:      string(r.Target),
			Converted:   r.Converted,
			Skipped:     r.Skipped,
			StartedAt:   r.StartedAt.Format(time.RFC3339),
			CompletedAt: r.CompletedAt.Format(time.RFC3339),
		})
	}
	return nil, ListRunsOutput{Runs: summaries, Count: len(summaries)}, nil
}
