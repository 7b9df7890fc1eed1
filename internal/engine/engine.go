// Package engine implements the reshaping core: allow-list filtering,
// per-(user, channel) metadata accumulation, and event partitioning.
package engine

import (
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/restat/internal/model"
)

// messageSentinel marks a record as a plain message rather than a command.
const messageSentinel = "_message"

// Engine folds stat records into the accumulated run state. Feed it
// batches with Consume, then snapshot with Result. Not safe for
// concurrent use; the pipeline is single-threaded by design.
type Engine struct {
	allow    map[string]struct{}
	keys     []string // user-entry keys in first-seen order
	users    map[string]*model.UserEntry
	messages []model.MessageEvent
	commands []model.CommandEvent
	ignored  map[string]struct{}
	scanned  int
	kept     int
}

// Result is the immutable outcome of a run: the three output datasets
// plus the counters and diagnostics the report needs.
type Result struct {
	Users    []model.UserEntry
	Messages []model.MessageEvent
	Commands []model.CommandEvent
	Scanned  int
	Kept     int
	Ignored  []string // channels seen but not allow-listed, sorted ascending
}

// New creates an Engine filtering on the given channel allow-list.
func New(channels []string) *Engine {
	allow := make(map[string]struct{}, len(channels))
	for _, id := range channels {
		allow[id] = struct{}{}
	}
	return &Engine{
		allow:   allow,
		users:   make(map[string]*model.UserEntry),
		ignored: make(map[string]struct{}),
	}
}

// Consume folds a batch of records into the accumulated state.
// The first invalid qualifying record aborts with an error; records for
// channels outside the allow-list are never validated.
func (e *Engine) Consume(records []model.StatRecord) error {
	for i := range records {
		if err := e.consume(&records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) consume(r *model.StatRecord) error {
	e.scanned++

	// Absent channel: silently skipped, not reported as ignored.
	if r.GuildID == "" {
		return nil
	}
	if _, ok := e.allow[r.GuildID]; !ok {
		e.ignored[r.GuildID] = struct{}{}
		return nil
	}
	e.kept++

	if r.UserID == "" {
		return fmt.Errorf("engine: record for channel %s has no userId", r.GuildID)
	}

	key := r.UserID + ":" + r.GuildID
	entry, ok := e.users[key]
	if !ok {
		entry = &model.UserEntry{
			UserID:      r.UserID,
			ChannelID:   r.GuildID,
			ChannelName: normName(r.GuildName),
			UserName:    normName(r.UserName),
		}
		e.users[key] = entry
		e.keys = append(e.keys, key)
	} else {
		// Non-empty names overwrite; blanks never clobber a known name.
		if r.UserName != "" {
			entry.UserName = normName(r.UserName)
		}
		if r.GuildName != "" {
			entry.ChannelName = normName(r.GuildName)
		}
	}

	switch {
	case r.Command == messageSentinel:
		if r.LastTime == nil {
			return fmt.Errorf("engine: message record for %s has no lastTime", key)
		}
		e.messages = append(e.messages, model.MessageEvent{
			UserID:    r.UserID,
			ChannelID: r.GuildID,
			Type:      model.TypeText,
			Count:     r.Count,
			Timestamp: *r.LastTime,
		})
	case r.Command != "":
		if r.LastTime == nil {
			return fmt.Errorf("engine: command record for %s has no lastTime", key)
		}
		e.commands = append(e.commands, model.CommandEvent{
			UserID:    r.UserID,
			ChannelID: r.GuildID,
			Command:   r.Command,
			Count:     r.Count,
			Timestamp: *r.LastTime,
		})
	}
	// No command at all: the record contributes to user accumulation only.
	return nil
}

// Result snapshots the accumulated state. Users keep first-seen insertion
// order; events keep append order. All slices are non-nil so the outputs
// serialize as empty arrays rather than null.
func (e *Engine) Result() Result {
	users := make([]model.UserEntry, 0, len(e.keys))
	for _, key := range e.keys {
		users = append(users, *e.users[key])
	}

	messages := e.messages
	if messages == nil {
		messages = []model.MessageEvent{}
	}
	commands := e.commands
	if commands == nil {
		commands = []model.CommandEvent{}
	}

	return Result{
		Users:    users,
		Messages: messages,
		Commands: commands,
		Scanned:  e.scanned,
		Kept:     e.kept,
		Ignored:  sortChannels(e.ignored),
	}
}

// sortChannels orders identifiers numerically ascending; anything that
// does not parse as an integer sorts after the numeric ones, lexically.
func sortChannels(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aerr := strconv.ParseInt(ids[i], 10, 64)
		b, berr := strconv.ParseInt(ids[j], 10, 64)
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}

// normName canonicalizes a display name to NFC so visually identical
// names compare and serialize identically across source files.
func normName(s string) string {
	return norm.NFC.String(s)
}
