package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/service"
	"github.com/sayanitariq-techno/Tariq/internal/store"
	"github.com/sayanitariq-techno/Tariq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day1 = testutil.Day1

func newTestServer(t *testing.T) (*server.MCPServer, service.ScheduleService) {
	t.Helper()
	st := store.New(store.WithClock(store.FixedClock{T: day1.Add(3 * time.Hour)}))
	schedule := service.NewScheduleService(st)
	ctx := context.Background()

	_, err := schedule.AddPackage(ctx, testutil.NewTestPackage("Drum D-110", testutil.WithPackageID("P1")))
	require.NoError(t, err)
	for _, a := range []domain.Activity{
		testutil.NewTestActivity("P1", "Drain", testutil.WithActivityID("A1"), testutil.WithTag("D-110"), testutil.WithWindow(0, 2)),
		testutil.NewTestActivity("P1", "Open", testutil.WithActivityID("A2"), testutil.WithTag("D-110"), testutil.WithWindow(2, 4)),
	} {
		_, err := schedule.AddActivity(ctx, a)
		require.NoError(t, err)
	}
	return NewServer(schedule, service.NewReportService(st)), schedule
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	return result
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content)
	text, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServerInitialization(t *testing.T) {
	s, _ := newTestServer(t)
	stdio := server.NewStdioServer(s)

	r, w := io.Pipe()
	stdout := &bytes.Buffer{}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() { _ = stdio.Listen(ctx, r, stdout) }()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test-client", Version: "1.0.0"}
	data, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params":  initReq.Params,
	})
	require.NoError(t, err)
	_, err = w.Write(append(data, '\n'))
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)

	var resp struct {
		ID     int `json:"id"`
		Result struct {
			ServerInfo struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp), stdout.String())
	assert.Equal(t, 1, resp.ID)
	assert.Equal(t, "Tariq", resp.Result.ServerInfo.Name)
	assert.Equal(t, Version, resp.Result.ServerInfo.Version)
}

func TestListTools(t *testing.T) {
	s, _ := newTestServer(t)

	r := callTool(t, s, "list_packages", map[string]any{})
	require.False(t, r.IsError)
	var pkgs struct {
		Packages []packageJSON `json:"packages"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, r)), &pkgs))
	require.Len(t, pkgs.Packages, 1)
	assert.Equal(t, "Not Started", pkgs.Packages[0].Status)
	assert.Equal(t, 2, pkgs.Packages[0].Total)

	r = callTool(t, s, "list_packages", map[string]any{"priority": "urgent"})
	assert.True(t, r.IsError)

	r = callTool(t, s, "list_activities", map[string]any{"package_id": "P1"})
	require.False(t, r.IsError)
	var acts struct {
		Activities []activityJSON `json:"activities"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, r)), &acts))
	assert.Len(t, acts.Activities, 2)

	r = callTool(t, s, "search_activities", map[string]any{"query": "d-1"})
	require.False(t, r.IsError)
	assert.Contains(t, resultText(t, r), `"A2"`)
}

func TestSetStatusAndHolds(t *testing.T) {
	s, schedule := newTestServer(t)

	r := callTool(t, s, "set_status", map[string]any{"id": "A2", "status": "in_progress"})
	require.True(t, r.IsError)
	assert.Contains(t, resultText(t, r), "prerequisite not met")

	r = callTool(t, s, "set_status", map[string]any{"id": "A1", "status": "in_progress"})
	require.False(t, r.IsError, resultText(t, r))

	r = callTool(t, s, "set_status", map[string]any{"id": "A1", "status": "On Hold"})
	require.True(t, r.IsError)

	r = callTool(t, s, "set_status", map[string]any{"id": "A1", "status": "On Hold", "reason": "Gas test", "remarks": "LEL high"})
	require.False(t, r.IsError, resultText(t, r))

	a, err := schedule.GetActivity(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOnHold, a.Status)

	r = callTool(t, s, "hold_log", map[string]any{})
	require.False(t, r.IsError)
	assert.Contains(t, resultText(t, r), `"reason":"Gas test"`)

	r = callTool(t, s, "hold_summary", map[string]any{})
	require.False(t, r.IsError)
	var summary struct {
		Reasons []holdSummaryJSON `json:"reasons"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, r)), &summary))
	require.Len(t, summary.Reasons, 1)
	assert.Equal(t, 1, summary.Reasons[0].Count)
}

func TestProjectStatsTool(t *testing.T) {
	s, _ := newTestServer(t)

	r := callTool(t, s, "project_stats", map[string]any{"as_of": day1.Add(3 * time.Hour).Format(time.RFC3339)})
	require.False(t, r.IsError, resultText(t, r))
	var stats statsJSON
	require.NoError(t, json.Unmarshal([]byte(resultText(t, r)), &stats))
	assert.Equal(t, 2, stats.TotalActivities)
	assert.Equal(t, []string{"A1", "A2"}, stats.Delayed)
	assert.Equal(t, "formula", stats.EstimateSource)
	assert.InDelta(t, 75, stats.PlannedProgress, 0.01)

	r = callTool(t, s, "project_stats", map[string]any{"as_of": "yesterday"})
	assert.True(t, r.IsError)

	r = callTool(t, s, "s_curve", map[string]any{"package_id": "NOPE"})
	assert.True(t, r.IsError)
}
