package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/arenafc/internal/api/response"
	"github.com/mcoot/arenafc/internal/maintenance"
	"github.com/mcoot/arenafc/internal/model"
	"github.com/mcoot/arenafc/internal/rating"
	"github.com/mcoot/arenafc/internal/storage/sqlite"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Player:
		o.printPlayer(v)
	case []response.Player:
		o.printPlayers(v)
	case model.Stats:
		o.printStats(v)
	case []response.Game:
		o.printGames(v)
	case response.CreateGameResponse:
		_, _ = fmt.Fprintf(o.w, "%s: %s\n", v.Message, v.ID)
	case response.HealthResponse:
		_, _ = fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case maintenance.BackupFile:
		_, _ = fmt.Fprintf(o.w, "Backup written to %s (%d bytes)\n", v.Path, v.Size)
	case []maintenance.BackupFile:
		o.printBackups(v)
	case []sqlite.Migration:
		o.printMigrations(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) table() *tabwriter.Writer {
	return tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func (o *Output) printPlayer(p response.Player) {
	_, _ = fmt.Fprintf(o.w, "Player: %s (%s)\n", p.Name, p.ID)
	_, _ = fmt.Fprintf(o.w, "Rating: %s\n", formatRating(p.Rating))
	_, _ = fmt.Fprintf(o.w, "Created: %s\n", p.CreatedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(o.w, "Updated: %s\n", p.UpdatedAt.Format(time.RFC3339))
}

func (o *Output) printPlayers(players []response.Player) {
	if len(players) == 0 {
		_, _ = fmt.Fprintln(o.w, "No players")
		return
	}
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tRATING")
	for _, p := range players {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, formatRating(p.Rating))
	}
	_ = tw.Flush()
}

func (o *Output) printStats(s model.Stats) {
	_, _ = fmt.Fprintf(o.w, "Players: %d\n", s.Total)
	_, _ = fmt.Fprintf(o.w, "Average rating: %.2f\n", s.AverageRating)
	_, _ = fmt.Fprintln(o.w, "By rating:")
	for _, level := range rating.Levels() {
		count := s.ByRating[level]
		_, _ = fmt.Fprintf(o.w, "  %-4s %3d %s\n", formatRating(level), count, strings.Repeat("#", count))
	}
}

func (o *Output) printGames(games []response.Game) {
	if len(games) == 0 {
		_, _ = fmt.Fprintln(o.w, "No games")
		return
	}
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "DATE\tSCORE\tTEAM 1\tTEAM 2\tSTATUS\tID")
	for _, g := range games {
		_, _ = fmt.Fprintf(tw, "%s\t%d-%d\t%s\t%s\t%s\t%s\n",
			g.Date.Format(time.RFC3339),
			g.Team1Score, g.Team2Score,
			strings.Join(g.Team1Players, ","),
			strings.Join(g.Team2Players, ","),
			g.Status, g.ID)
	}
	_ = tw.Flush()
}

func (o *Output) printBackups(backups []maintenance.BackupFile) {
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(o.w, "No backups")
		return
	}
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "CREATED\tSIZE\tPATH")
	for _, b := range backups {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", b.Created.Format(time.RFC3339), b.Size, b.Path)
	}
	_ = tw.Flush()
}

func (o *Output) printMigrations(migrations []sqlite.Migration) {
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "MIGRATION\tAPPLIED")
	for _, m := range migrations {
		applied := "pending"
		if m.Applied {
			applied = m.AppliedAt.Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", m.Name, applied)
	}
	_ = tw.Flush()
}
