// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the tbres MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"TB Resonance Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: solve_resonance ---
	s.AddTool(mcp.NewTool("solve_resonance",
		mcp.WithDescription("Find the optimal assignment of part triples to slots under a chips budget, maximizing total resonance score."),
		mcp.WithString("parts", mcp.Description("Part inventory as 'TYPE:COUNT' pairs separated by commas (e.g. 'E:2,R4:1,R2:6'). Valid types: E, R4, R3, R2, R1, R, Y3, Y2, Y1, Y.")),
		mcp.WithNumber("chips", mcp.Description("Total chips budget shared across all slots. Defaults to 0.")),
		mcp.WithString("mins", mcp.Description("Comma-separated minimum score per slot (e.g. '4500,3500,3000'). One slot per entry.")),
		mcp.WithNumber("slots", mcp.Description("Number of slots when no minimums are given. Defaults to 1.")),
		mcp.WithString("preset", mcp.Description("Name of a builtin or saved preset to solve instead of explicit parts.")),
	), h.handleSolveResonance)

	// --- 2. Tool: list_presets ---
	s.AddTool(mcp.NewTool("list_presets",
		mcp.WithDescription("List the builtin presets and any presets saved in the history store."),
	), h.handleListPresets)

	// --- 3. Tool: get_solve_history ---
	s.AddTool(mcp.NewTool("get_solve_history",
		mcp.WithDescription("Return past solve runs recorded in the history store."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of runs returned (most recent first).")),
	), h.handleGetSolveHistory)

	// --- 4. Tool: get_multiplier_table ---
	s.AddTool(mcp.NewTool("get_multiplier_table",
		mcp.WithDescription("Return the part base values and the chips-cost to multiplier table used by the solver."),
	), h.handleGetMultiplierTable)

	return s
}

// StartMCPServer starts the tbres MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
