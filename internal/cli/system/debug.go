package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/logger"
)

type DebugCmd struct {
	Config  *DebugConfigCmd  `cmd:"" help:"Show resolved configuration as JSON."`
	Session *DebugSessionCmd `cmd:"" help:"Dump the current user as JSON."`
}

type DebugConfigCmd struct{}

func (cmd *DebugConfigCmd) Run(ctx *cli.Context) error {
	return dump(map[string]any{
		"apiUrl":    ctx.Config.APIURL,
		"configDir": ctx.Config.ConfigDir,
		"logFile":   logger.File(ctx.Config.ConfigDir),
		"timezone":  ctx.Config.Timezone,
		"debug":     ctx.Config.Debug,
	})
}

type DebugSessionCmd struct{}

func (cmd *DebugSessionCmd) Run(ctx *cli.Context) error {
	rctx, stop := cli.Interruptible()
	defer stop()
	if err := ctx.RequireAuth(rctx); err != nil {
		return err
	}
	u, _ := ctx.Session.User()
	return dump(map[string]any{
		"state": ctx.Session.State().String(),
		"user":  u,
	})
}

func dump(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
