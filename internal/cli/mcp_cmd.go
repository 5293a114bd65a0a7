package cli

import (
	tariqmcp "github.com/sayanitariq-techno/Tariq/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the schedule to MCP clients over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Logger != nil {
				app.Logger.Info("mcp server starting", "transport", "stdio", "version", tariqmcp.Version)
			}
			return tariqmcp.Serve(tariqmcp.NewServer(app.Schedule, app.Reports))
		},
	}
}
