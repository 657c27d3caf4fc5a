package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

type sessionArgs struct {
	SessionID string `json:"session_id" jsonschema:"Session identifier returned by login"`
}

type loginArgs struct {
	Username string `json:"username" jsonschema:"Account username"`
	Password string `json:"password" jsonschema:"Account password"`
}

type registerArgs struct {
	Username string `json:"username" jsonschema:"3-20 letters, digits or underscores"`
	Password string `json:"password" jsonschema:"6-50 characters with a capital letter and a digit"`
	Role     string `json:"role" jsonschema:"Department: Cyber Security, Data Scientist or IT Operations"`
}

type surgeArgs struct {
	SessionID string `json:"session_id" jsonschema:"Session identifier returned by login"`
	Days      int    `json:"days,omitempty" jsonschema:"Window length in days (default from configuration)"`
	Category  string `json:"category,omitempty" jsonschema:"Threat category to analyse (default Phishing)"`
}

type archivingArgs struct {
	SessionID string `json:"session_id" jsonschema:"Session identifier returned by login"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of candidates (default from configuration)"`
}

type staleArgs struct {
	SessionID     string `json:"session_id" jsonschema:"Session identifier returned by login"`
	ThresholdDays int    `json:"threshold_days,omitempty" jsonschema:"Days without access after which a dataset is stale"`
	MaxAccesses   int    `json:"max_accesses,omitempty" jsonschema:"Access count in the last 30 days below which a dataset is rarely accessed"`
}

type updateIncidentArgs struct {
	SessionID           string   `json:"session_id" jsonschema:"Session identifier returned by login"`
	IncidentID          int64    `json:"incident_id" jsonschema:"Identifier of the incident to update"`
	ThreatCategory      string   `json:"threat_category,omitempty" jsonschema:"New threat category"`
	Severity            string   `json:"severity,omitempty" jsonschema:"New severity: High, Medium or Low"`
	Status              string   `json:"status,omitempty" jsonschema:"New status: Unresolved, In Progress or Resolved"`
	ResolutionTimeHours *float64 `json:"resolution_time_hours,omitempty" jsonschema:"Hours it took to resolve the incident"`
}

type askArgs struct {
	SessionID string `json:"session_id" jsonschema:"Session identifier returned by login"`
	Question  string `json:"question" jsonschema:"Question for the domain expert"`
	Tab       string `json:"tab,omitempty" jsonschema:"cyber, data or it (default: the tab of your role)"`
}

type tabArgs struct {
	SessionID string `json:"session_id" jsonschema:"Session identifier returned by login"`
	Tab       string `json:"tab,omitempty" jsonschema:"cyber, data or it (default: the tab of your role)"`
}

// handler is the shape of every tool implementation: decoded arguments in, a JSON-able result out.
type handler[In any] func(ctx context.Context, args In) (interface{}, error)

// addTool registers h under name. Handler errors become tool errors the client can read
// instead of protocol failures.
func addTool[In any](srv *mcp.Server, name, description string, h handler[In]) {
	mcp.AddTool(srv, &mcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *mcp.CallToolRequest, args In) (*mcp.CallToolResult, any, error) {
			log.Debug().Str("tool", name).Msg("Tool called")
			data, err := h(ctx, args)
			if err != nil {
				log.Warn().Err(err).Str("tool", name).Msg("Tool failed")
				return &mcp.CallToolResult{
					IsError: true,
					Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				}, nil, nil
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: formatResult(data)}},
			}, nil, nil
		})
}

func (s *Server) registerTools(srv *mcp.Server) {
	// Session
	addTool(srv, "login",
		"Log in with username and password. Returns a session_id that every other tool requires, and the dashboard tab your role can view.",
		s.handleLogin)
	addTool(srv, "logout",
		"End a session and discard its assistant conversations.",
		s.handleLogout)
	addTool(srv, "register_user",
		"Create a new account. Username: 3-20 letters, digits or underscores. Password: 6-50 characters including a capital letter and a digit.",
		s.handleRegister)

	// Cyber security tab
	addTool(srv, "incident_overview",
		"Cyber security tab: incident metrics, phishing surge, resolution bottleneck, backlog and daily counts.",
		s.handleIncidentOverview)
	addTool(srv, "phishing_surge",
		"Compare incidents of a category (default Phishing) in the most recent window against the window before it.",
		s.handlePhishingSurge)
	addTool(srv, "resolution_bottleneck",
		"Find the threat category with the highest average resolution time among resolved incidents.",
		s.handleResolutionBottleneck)
	addTool(srv, "incident_backlog",
		"Unresolved incident counts per category and per severity.",
		s.handleIncidentBacklog)
	addTool(srv, "update_incident",
		"Change the category, severity, status or resolution time of an incident. Only supplied fields are changed.",
		s.handleUpdateIncident)

	// Data governance tab
	addTool(srv, "dataset_overview",
		"Data governance tab: storage metrics, per-department consumption, dependencies, archiving and stale datasets.",
		s.handleDatasetOverview)
	addTool(srv, "dependency_analysis",
		"Datasets with the most dependencies and the dependency risk level distribution.",
		s.handleDependencyAnalysis)
	addTool(srv, "archiving_recommendations",
		"Rank datasets by archive score (size, staleness, access rarity) and estimate the storage and cost savings.",
		s.handleArchivingRecommendations)
	addTool(srv, "stale_datasets",
		"Datasets not accessed for longer than a threshold and datasets rarely accessed in the last 30 days.",
		s.handleStaleDatasets)

	// IT operations tab
	addTool(srv, "ticket_overview",
		"IT operations tab: ticket metrics, staff performance, process bottleneck and priority breakdown.",
		s.handleTicketOverview)
	addTool(srv, "staff_performance",
		"Average resolution time per staff member, the team average and the slowest member's gap to it.",
		s.handleStaffPerformance)
	addTool(srv, "process_bottleneck",
		"The ticket process stage with the highest average time spent.",
		s.handleProcessBottleneck)

	// Assistant
	addTool(srv, "ask_assistant",
		"Ask the domain expert of a tab a question about the current data. The conversation is kept per session and tab.",
		s.handleAskAssistant)
	addTool(srv, "clear_chat",
		"Clear the assistant conversation of a tab.",
		s.handleClearChat)
}
