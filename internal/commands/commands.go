// Package commands implements the bot command set. The dispatcher takes an
// already-parsed command name and argument string and produces reply text;
// transport-level update handling lives elsewhere.
package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/avenkat/caprelay/internal/errors"
	"github.com/avenkat/caprelay/internal/extractor"
	"github.com/avenkat/caprelay/internal/formatter"
	"github.com/avenkat/caprelay/internal/logger"
	"github.com/avenkat/caprelay/internal/models"
	"github.com/avenkat/caprelay/internal/rotation"
	"github.com/avenkat/caprelay/internal/settings"
	"github.com/avenkat/caprelay/internal/stats"
	"github.com/avenkat/caprelay/internal/store"
	"github.com/avenkat/caprelay/internal/telegram"
)

// ChatProber checks that a chat is reachable. Implemented by telegram.Client.
type ChatProber interface {
	GetChat(ctx context.Context, chatID string) (*telegram.Chat, error)
}

// Dispatcher routes bot commands to their handlers. The store and prober
// are optional; without a store mutations are not persisted, without a
// prober dumpstatus reports the transport as unavailable.
type Dispatcher struct {
	formatter *formatter.Formatter
	rotator   *rotation.Rotator
	settings  *settings.Settings
	stats     *stats.Stats
	store     *store.Store
	prober    ChatProber
}

// New creates a Dispatcher
func New(f *formatter.Formatter, rot *rotation.Rotator, set *settings.Settings, st *stats.Stats, db *store.Store, prober ChatProber) *Dispatcher {
	return &Dispatcher{
		formatter: f,
		rotator:   rot,
		settings:  set,
		stats:     st,
		store:     db,
		prober:    prober,
	}
}

// Dispatch handles one command and returns the reply text. Usage problems
// come back as reply text, not errors; the error return is reserved for
// internal failures.
func (d *Dispatcher) Dispatch(ctx context.Context, command, args string) (string, error) {
	command = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(command)), "/")
	args = strings.TrimSpace(args)

	logger.AppLogger().WithFields(map[string]interface{}{
		"command": command,
	}).Debug("dispatching command")

	switch command {
	case "start":
		return d.handleStart(), nil
	case "help":
		return d.handleHelp(), nil
	case "name":
		return d.handleName(args), nil
	case "format":
		return d.handleFormat(args), nil
	case "status":
		return d.handleStatus(), nil
	case "stats":
		return d.handleStats(), nil
	case "quality":
		return d.handleQuality(), nil
	case "addprefix":
		return d.handleAddPrefix(args), nil
	case "prefixlist":
		return d.handlePrefixList(), nil
	case "delprefix":
		return d.handleDelPrefix(args), nil
	case "dumpchannel":
		return d.handleDumpChannel(args), nil
	case "dumpstatus":
		return d.handleDumpStatus(ctx), nil
	default:
		return fmt.Sprintf("Unknown command: /%s. Try /help.", command), nil
	}
}

func (d *Dispatcher) handleStart() string {
	return "Caption relay is running.\n" +
		"Send any caption through /format to see the normalized output.\n" +
		"Use /help for the full command list."
}

func (d *Dispatcher) handleHelp() string {
	return strings.Join([]string{
		"Commands:",
		"/name [title|auto] - set a fixed title, or switch back to auto-detect",
		"/format <caption> - format a caption without forwarding it",
		"/status - current settings",
		"/stats - processing counters and uptime",
		"/quality - supported resolutions",
		"/addprefix <prefix> - append a prefix to the rotation",
		"/prefixlist - show the rotation order",
		"/delprefix <n> - remove the prefix at position n",
		"/dumpchannel [target] - show or set the dump destination",
		"/dumpstatus - check that the dump destination is reachable",
	}, "\n")
}

func (d *Dispatcher) handleName(args string) string {
	switch {
	case args == "":
		if name := d.settings.FixedName(); name != "" {
			return fmt.Sprintf("Fixed title: %s", name)
		}
		return "Title mode: auto-detect from captions"
	case strings.EqualFold(args, "auto"):
		d.settings.SetFixedName("")
		d.persist()
		return "Title mode set to auto-detect"
	default:
		d.settings.SetFixedName(args)
		d.persist()
		return fmt.Sprintf("Fixed title set to: %s", args)
	}
}

func (d *Dispatcher) handleFormat(args string) string {
	if args == "" {
		return "Usage: /format <caption>"
	}

	out, err := d.formatter.Format(args)
	if err != nil {
		if apperrors.IsEmptyCaption(err) {
			return "Nothing to format: the caption is empty."
		}
		d.recordActivity(models.ActionFormat, models.StatusFailed, err.Error())
		return fmt.Sprintf("Formatting failed: %v", err)
	}

	d.recordActivity(models.ActionFormat, models.StatusSuccess, "")
	d.persist()
	return out
}

func (d *Dispatcher) handleStatus() string {
	name := d.settings.FixedName()
	if name == "" {
		name = "auto-detect"
	}
	target := d.settings.DumpTarget()
	if target == "" {
		target = "not configured"
	}

	return strings.Join([]string{
		"Status:",
		fmt.Sprintf("Title: %s", name),
		fmt.Sprintf("Dump destination: %s", target),
		fmt.Sprintf("Prefixes: %d", len(d.rotator.List())),
		fmt.Sprintf("Next prefix: %s", d.rotator.Peek()),
		fmt.Sprintf("Messages counted: %d", d.rotator.Counter()),
	}, "\n")
}

func (d *Dispatcher) handleStats() string {
	if d.stats == nil {
		return "Statistics are not enabled."
	}
	snap := d.stats.Snapshot()

	return strings.Join([]string{
		"Statistics:",
		fmt.Sprintf("Processed: %d", snap.Processed),
		fmt.Sprintf("Formatted: %d", snap.Formatted),
		fmt.Sprintf("Forwarded: %d", snap.Forwarded),
		fmt.Sprintf("Forward failures: %d", snap.ForwardFailed),
		fmt.Sprintf("Uptime: %s", snap.Uptime.Round(time.Second)),
	}, "\n")
}

func (d *Dispatcher) handleQuality() string {
	return "Supported resolutions: " + strings.Join(extractor.AllowedQualities(), ", ") +
		"\nAnything else falls back to " + extractor.DefaultQuality + "."
}

func (d *Dispatcher) handleAddPrefix(args string) string {
	if args == "" {
		return "Usage: /addprefix <prefix>"
	}

	if err := d.rotator.Add(args); err != nil {
		return fmt.Sprintf("Not added: %v", err)
	}
	d.persist()
	return fmt.Sprintf("Prefix added: %s (%d total)", args, len(d.rotator.List()))
}

func (d *Dispatcher) handlePrefixList() string {
	list := d.rotator.List()
	if len(list) == 0 {
		return fmt.Sprintf("No prefixes configured; using the default %q.", rotation.DefaultPrefix)
	}

	lines := make([]string, 0, len(list)+1)
	lines = append(lines, "Prefix rotation:")
	for i, prefix := range list {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, prefix))
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) handleDelPrefix(args string) string {
	if args == "" {
		return "Usage: /delprefix <position>"
	}

	position, err := strconv.Atoi(args)
	if err != nil {
		return fmt.Sprintf("Not a position: %q. Use the number shown by /prefixlist.", args)
	}

	// /prefixlist numbers entries from 1.
	removed, err := d.rotator.Delete(position - 1)
	if err != nil {
		return fmt.Sprintf("Not removed: %v", err)
	}
	d.persist()
	return fmt.Sprintf("Prefix removed: %s (%d left)", removed, len(d.rotator.List()))
}

func (d *Dispatcher) handleDumpChannel(args string) string {
	if args == "" {
		if target := d.settings.DumpTarget(); target != "" {
			return fmt.Sprintf("Dump destination: %s", target)
		}
		return "No dump destination configured. Use /dumpchannel <target>."
	}

	if strings.EqualFold(args, "off") {
		d.settings.SetDumpTarget("")
		d.persist()
		return "Dump forwarding disabled."
	}

	d.settings.SetDumpTarget(args)
	d.persist()
	return fmt.Sprintf("Dump destination set to: %s", args)
}

func (d *Dispatcher) handleDumpStatus(ctx context.Context) string {
	target := d.settings.DumpTarget()
	if target == "" {
		return "No dump destination configured."
	}
	if d.prober == nil {
		return "Transport is not available; cannot check the destination."
	}

	chat, err := d.prober.GetChat(ctx, target)
	if err != nil {
		return fmt.Sprintf("Destination %s is not reachable: %v", target, err)
	}

	title := chat.Title
	if title == "" {
		title = chat.Username
	}
	return fmt.Sprintf("Destination %s is reachable (%s %q).", target, chat.Type, title)
}

// persist snapshots the mutable state into the store, when one is wired
func (d *Dispatcher) persist() {
	if d.store == nil {
		return
	}
	prefixes, counter := d.rotator.Snapshot()
	d.store.Save(store.State{
		FixedName:  d.settings.FixedName(),
		DumpTarget: d.settings.DumpTarget(),
		Prefixes:   prefixes,
		Counter:    counter,
	})
}

func (d *Dispatcher) recordActivity(action models.ActivityAction, status models.ActivityStatus, detail string) {
	if d.store == nil {
		return
	}
	d.store.RecordActivity(action, status, detail)
}
