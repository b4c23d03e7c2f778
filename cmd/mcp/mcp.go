/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp provides the mcp command, serving snippet conversion to
// Model Context Protocol clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"io"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"bennypowers.dev/snipshift/backend"
	"bennypowers.dev/snipshift/convert"
	"bennypowers.dev/snipshift/internal/logger"
	"bennypowers.dev/snipshift/internal/version"
)

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve snippet tools over the Model Context Protocol",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing the
convert, validate and formats tools.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol
	logger.SetOutput(io.Discard)
	return NewServer().Run(cmd.Context(), &sdk.StdioTransport{})
}

// ConvertInput is the argument of the convert tool.
type ConvertInput struct {
	Data string `json:"data" jsonschema:"the snippet file contents"`
	From string `json:"from" jsonschema:"the format of data: ultisnips, ols or vscode"`
	To   string `json:"to" jsonschema:"the format to produce: ultisnips, ols or vscode"`
}

// ConvertOutput is the result of the convert tool.
type ConvertOutput struct {
	Output   string `json:"output" jsonschema:"the converted snippet file"`
	Snippets int    `json:"snippets" jsonschema:"the number of snippets converted"`
}

// ValidateInput is the argument of the validate tool.
type ValidateInput struct {
	Data   string `json:"data" jsonschema:"the snippet file contents"`
	Format string `json:"format" jsonschema:"the format of data: ultisnips, ols or vscode"`
}

// ValidateOutput is the result of the validate tool.
type ValidateOutput struct {
	Valid    bool   `json:"valid"`
	Snippets int    `json:"snippets"`
	Error    string `json:"error,omitempty" jsonschema:"the first parse error, when invalid"`
}

// FormatsInput is the (empty) argument of the formats tool.
type FormatsInput struct{}

// FormatInfo describes one supported format.
type FormatInfo struct {
	Name    string `json:"name"`
	InFlag  string `json:"inFlag" jsonschema:"the convert command flag reading this format"`
	OutFlag string `json:"outFlag" jsonschema:"the convert command flag writing this format"`
}

// FormatsOutput is the result of the formats tool.
type FormatsOutput struct {
	Formats []FormatInfo `json:"formats"`
}

// NewServer returns an MCP server with every snippet tool registered.
func NewServer() *sdk.Server {
	server := sdk.NewServer(&sdk.Implementation{
		Name:    "snipshift",
		Version: version.Get(),
	}, nil)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "convert",
		Description: "Convert a snippet file between the ultisnips, ols and vscode formats",
	}, handleConvert)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "validate",
		Description: "Parse a snippet file and report whether it is valid",
	}, handleValidate)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "formats",
		Description: "List the supported snippet formats",
	}, handleFormats)

	return server
}

func handleConvert(ctx context.Context, req *sdk.CallToolRequest, in ConvertInput) (*sdk.CallToolResult, ConvertOutput, error) {
	from, err := convert.ParseFormat(in.From)
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	to, err := convert.ParseFormat(in.To)
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	reader, err := convert.New(from)
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	file, err := reader.Read([]byte(in.Data))
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	writer, err := convert.New(to)
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	out, err := writer.Write(&file)
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	return nil, ConvertOutput{Output: string(out), Snippets: file.Len()}, nil
}

func handleValidate(ctx context.Context, req *sdk.CallToolRequest, in ValidateInput) (*sdk.CallToolResult, ValidateOutput, error) {
	format, err := convert.ParseFormat(in.Format)
	if err != nil {
		return nil, ValidateOutput{}, err
	}
	b, err := convert.New(format)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	file, err := b.Read([]byte(in.Data))
	if err != nil {
		return nil, ValidateOutput{Valid: false, Error: err.Error()}, nil
	}
	return nil, ValidateOutput{Valid: true, Snippets: file.Len()}, nil
}

func handleFormats(ctx context.Context, req *sdk.CallToolRequest, in FormatsInput) (*sdk.CallToolResult, FormatsOutput, error) {
	backends := convert.All()
	out := FormatsOutput{Formats: make([]FormatInfo, 0, len(backends))}
	for _, b := range backends {
		out.Formats = append(out.Formats, FormatInfo{
			Name:    b.Name(),
			InFlag:  "--" + backend.InFlag(b),
			OutFlag: "--" + backend.OutFlag(b),
		})
	}
	if len(out.Formats) == 0 {
		return nil, FormatsOutput{}, fmt.Errorf("no formats registered")
	}
	return nil, out, nil
}
