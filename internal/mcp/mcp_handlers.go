package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inzamam-khan123/tbres/core"
	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/internal/history"
	"github.com/inzamam-khan123/tbres/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// solveToolResponse is the JSON payload returned by the solve_resonance tool.
type solveToolResponse struct {
	Outcome     string                  `json:"outcome"`
	Input       schema.SolveInput       `json:"input"`
	Assignments []schema.SlotAssignment `json:"assignments,omitempty"`
	TotalScore  int                     `json:"total_score"`
}

func (h *toolHandler) handleSolveResonance(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	if preset := request.GetString("preset", ""); preset != "" {
		cfg.PresetName = preset
		if err := core.ResolvePreset(cfg); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid preset: %v", err)), nil
		}
	} else {
		input, err := parseSolveArguments(request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid solve parameters: %v", err)), nil
		}
		cfg.Input = input
	}

	result, err := core.RunSolve(cfg.Input, cfg.Rules, nil)
	outcome := schema.OutcomeSuccess
	if errors.Is(err, core.ErrInfeasible) {
		outcome = schema.OutcomeInfeasible
	} else if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("solve failed: %v", err)), nil
	}

	response := solveToolResponse{
		Outcome:     string(outcome),
		Input:       cfg.Input,
		Assignments: result.Assignments,
		TotalScore:  result.DisplayTotal(),
	}
	jsonData, _ := json.MarshalIndent(response, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListPresets(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	presets := make([]schema.Preset, 0, len(schema.BuiltinPresets))
	presets = append(presets, schema.BuiltinPresets...)

	if store := history.GetManager().GetHistoryStore(); store != nil {
		saved, err := store.ListPresets()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list saved presets: %v", err)), nil
		}
		presets = append(presets, saved...)
	}

	jsonData, _ := json.MarshalIndent(presets, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSolveHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := history.GetManager().GetHistoryStore()
	if store == nil {
		return mcp.NewToolResultError("history store is not initialized"), nil
	}

	runs, err := store.GetAllSolveRuns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to retrieve solve runs: %v", err)), nil
	}

	// Most recent first, optionally limited
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	if limit := request.GetInt("limit", 0); limit > 0 && limit < len(runs) {
		runs = runs[:limit]
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMultiplierTable(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := h.baseCfg.Rules
	if rules.BaseValues == nil {
		rules = schema.DefaultRuleset()
	}

	response := struct {
		BaseValues  map[schema.PartType]int  `json:"base_values"`
		Multipliers []schema.MultiplierEntry `json:"multipliers"`
	}{
		BaseValues:  rules.BaseValues,
		Multipliers: rules.Multipliers,
	}
	jsonData, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// parseSolveArguments builds a solve input from explicit tool arguments, with
// the same slot defaulting the CLI flags use.
func parseSolveArguments(request mcp.CallToolRequest) (schema.SolveInput, error) {
	inventory, err := schema.ParseInventory(request.GetString("parts", ""))
	if err != nil {
		return schema.SolveInput{}, err
	}

	chips := request.GetInt("chips", 0)
	if chips < 0 {
		return schema.SolveInput{}, fmt.Errorf("chips cannot be negative (received %d)", chips)
	}

	minimums, err := schema.ParseMinimums(request.GetString("mins", ""))
	if err != nil {
		return schema.SolveInput{}, err
	}

	slots := request.GetInt("slots", 0)
	if slots < 0 {
		return schema.SolveInput{}, fmt.Errorf("slots cannot be negative (received %d)", slots)
	}
	if len(minimums) > 0 {
		if slots > 0 && slots != len(minimums) {
			return schema.SolveInput{}, fmt.Errorf("slots is %d but mins lists %d minimums", slots, len(minimums))
		}
	} else {
		if slots == 0 {
			slots = contract.DefaultSlots
		}
		minimums = make([]int, slots)
	}

	return schema.SolveInput{
		Inventory: inventory,
		Chips:     chips,
		Minimums:  minimums,
	}, nil
}
