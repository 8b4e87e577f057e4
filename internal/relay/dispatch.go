package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lagcraft/statusboard/internal/storage"
	"github.com/lagcraft/statusboard/internal/update"
)

// errNoRow marks update/delete targets that matched no stored row.
// These are handled as no-ops: logged, not broadcast, never fatal.
var errNoRow = errors.New("no matching row")

// Dispatcher routes producer envelopes to the store. Every failure -
// malformed JSON, unknown type/action, validation error, no-op target,
// store error - drops the message without closing the connection.
type Dispatcher struct {
	store  storage.Store
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher backed by the given store
func NewDispatcher(store storage.Store, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		logger: logger.With(slog.String("component", "relay-dispatch")),
	}
}

// Apply parses and applies one producer message. On success it returns
// the broadcast frame, which echoes the producer's original data rather
// than the store's normalized row, and true. On any failure it returns
// nil and false.
func (d *Dispatcher) Apply(ctx context.Context, raw []byte) (frame []byte, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("relay handler panic recovered", slog.Any("panic", r))
			frame, ok = nil, false
		}
	}()

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		d.logger.Warn("relay message dropped - malformed json", slog.Any("error", err))
		return nil, false
	}

	var err error
	switch env.Type {
	case KindTeam:
		err = d.applyTeam(ctx, env.Action, env.Data)
	case KindPlayer:
		err = d.applyPlayer(ctx, env.Action, env.Data)
	case KindAlliance:
		err = d.applyAlliance(ctx, env.Action, env.Data)
	case KindEvent:
		err = d.applyEvent(ctx, env.Action, env.Data)
	case KindChat:
		err = d.applyChat(ctx, env.Action, env.Data)
	default:
		d.logger.Warn("relay message dropped - unknown type",
			slog.String("type", env.Type))
		return nil, false
	}
	if err != nil {
		d.logger.Warn("relay mutation dropped",
			slog.String("type", env.Type),
			slog.String("action", env.Action),
			slog.Any("error", err))
		return nil, false
	}

	frame, marshalErr := json.Marshal(env)
	if marshalErr != nil {
		d.logger.Error("relay broadcast frame marshal failed", slog.Any("error", marshalErr))
		return nil, false
	}
	return frame, true
}

func (d *Dispatcher) applyTeam(ctx context.Context, action string, data json.RawMessage) error {
	switch action {
	case ActionCreate:
		insert, err := update.Team(data)
		if err != nil {
			return err
		}
		_, err = d.store.CreateTeam(ctx, insert)
		return err

	case ActionUpdate:
		id, ok := update.ID(data)
		if !ok {
			return &update.FieldError{Field: "id", Reason: "required for update"}
		}
		patch, err := update.TeamPatch(data)
		if err != nil {
			return err
		}
		_, err = d.store.UpdateTeam(ctx, id, patch)
		return err

	case ActionDelete:
		id, ok := update.ID(data)
		if !ok {
			return &update.FieldError{Field: "id", Reason: "required for delete"}
		}
		deleted, err := d.store.DeleteTeam(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return errNoRow
		}
		return nil

	default:
		return fmt.Errorf("unknown team action %q", action)
	}
}

func (d *Dispatcher) applyPlayer(ctx context.Context, action string, data json.RawMessage) error {
	switch action {
	case ActionCreate:
		insert, err := update.Player(data)
		if err != nil {
			return err
		}
		_, err = d.store.CreatePlayer(ctx, insert)
		return err

	case ActionUpdate:
		// Full patch when an id is present, otherwise the producer's
		// name+isOnline shorthand for presence changes
		if id, ok := update.ID(data); ok {
			patch, err := update.PlayerPatch(data)
			if err != nil {
				return err
			}
			_, err = d.store.UpdatePlayer(ctx, id, patch)
			return err
		}
		name, isOnline, ok := update.OnlineShorthand(data)
		if !ok {
			return &update.FieldError{Field: "id", Reason: "id or name+isOnline required for update"}
		}
		_, err := d.store.UpdatePlayerOnlineStatus(ctx, name, isOnline)
		return err

	case ActionDelete:
		id, ok := update.ID(data)
		if !ok {
			return &update.FieldError{Field: "id", Reason: "required for delete"}
		}
		deleted, err := d.store.DeletePlayer(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return errNoRow
		}
		return nil

	default:
		return fmt.Errorf("unknown player action %q", action)
	}
}

func (d *Dispatcher) applyAlliance(ctx context.Context, action string, data json.RawMessage) error {
	switch action {
	case ActionCreate:
		insert, err := update.Alliance(data)
		if err != nil {
			return err
		}
		_, err = d.store.CreateAlliance(ctx, insert)
		return err

	case ActionDelete:
		// Delete by id when present, else by team pair in either order
		var deleted bool
		var err error
		if id, ok := update.ID(data); ok {
			deleted, err = d.store.DeleteAlliance(ctx, id)
		} else if team1ID, team2ID, ok := update.TeamPair(data); ok {
			deleted, err = d.store.DeleteAllianceByTeams(ctx, team1ID, team2ID)
		} else {
			return &update.FieldError{Field: "id", Reason: "id or team pair required for delete"}
		}
		if err != nil {
			return err
		}
		if !deleted {
			return errNoRow
		}
		return nil

	default:
		return fmt.Errorf("unknown alliance action %q", action)
	}
}

func (d *Dispatcher) applyEvent(ctx context.Context, action string, data json.RawMessage) error {
	// Events are append-only; create is implicit when action is omitted
	if action != "" && action != ActionCreate {
		return fmt.Errorf("unknown event action %q", action)
	}
	insert, err := update.Event(data)
	if err != nil {
		return err
	}
	_, err = d.store.CreateEvent(ctx, insert)
	return err
}

func (d *Dispatcher) applyChat(ctx context.Context, action string, data json.RawMessage) error {
	if action != "" && action != ActionCreate {
		return fmt.Errorf("unknown chat action %q", action)
	}
	insert, err := update.Chat(data)
	if err != nil {
		return err
	}
	_, err = d.store.CreateChatMessage(ctx, insert)
	return err
}
