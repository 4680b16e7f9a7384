package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/vburojevic/brainbar/internal/cdp"
	"github.com/vburojevic/brainbar/internal/target"
)

// TargetsCmd lists every debuggable surface the browser exposes and marks
// the one the watch command would attach to.
type TargetsCmd struct {
	Port           int           `short:"p" default:"${config_port}" help:"Remote debugging port"`
	WS             string        `name:"ws" help:"Override browser WebSocket URL (skips /json/version discovery)"`
	TargetContains string        `default:"${config_target_contains}" help:"Prefer targets whose title/URL contains this"`
	Timeout        time.Duration `default:"${config_timeout}" help:"Per-request CDP deadline"`
}

type targetRow struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	TargetID string `json:"targetId"`
	Score    int    `json:"score"`
	Selected bool   `json:"selected"`
}

// Run executes the targets command
func (c *TargetsCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wsURL := c.WS
	if wsURL == "" {
		var err error
		wsURL, err = cdp.DiscoverWebSocketURL(ctx, cdp.DebugBaseURL(c.Port))
		if err != nil {
			return err
		}
	}
	globals.Debug("dialing %s", wsURL)

	client, err := cdp.Dial(ctx, wsURL, c.Timeout)
	if err != nil {
		return err
	}
	defer client.Close()

	targets, err := client.ListTargets()
	if err != nil {
		return err
	}

	chosen, _ := target.Choose(targets, c.TargetContains)
	rows := lo.Map(targets, func(t cdp.Target, _ int) targetRow {
		return targetRow{
			Type:     t.Type,
			Title:    t.Title,
			URL:      t.URL,
			TargetID: t.TargetID,
			Score:    target.Score(t, c.TargetContains),
			Selected: t.TargetID == chosen.TargetID,
		}
	})

	if globals.Format == "ndjson" {
		enc := json.NewEncoder(globals.Stdout)
		for _, row := range rows {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	}

	if len(rows) == 0 {
		fmt.Fprintln(globals.Stderr, "No targets exposed.")
		return nil
	}

	table := tablewriter.NewTable(globals.Stdout)
	table.Header("", "Type", "Title", "URL", "Score")
	for _, row := range rows {
		mark := ""
		if row.Selected {
			mark = accent(globals, "*")
		}
		if err := table.Append([]string{mark, row.Type, row.Title, row.URL, strconv.Itoa(row.Score)}); err != nil {
			return err
		}
	}
	return table.Render()
}
