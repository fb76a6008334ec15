package command

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/vyrodovalexey/listbot/internal/model"
	"github.com/vyrodovalexey/listbot/internal/store"
)

// DefaultStoreTimeout bounds a single store call when none is configured.
const DefaultStoreTimeout = 2 * time.Second

// Outcome classifies how a command ended.
type Outcome string

// Command outcomes.
const (
	OutcomeOK           Outcome = "ok"
	OutcomeInvalid      Outcome = "invalid"
	OutcomeNoList       Outcome = "no_list"
	OutcomeBadIndex     Outcome = "bad_index"
	OutcomeStoreFailure Outcome = "store_failure"
)

// Request is a single dispatch against one channel's list.
type Request struct {
	Command   Command
	ChannelID string
	UserName  string
	Trigger   string
}

// Result is the reply text plus the outcome it was produced by.
// Err carries the underlying store error for logging only.
type Result struct {
	Text    string
	Outcome Outcome
	Err     error
}

// Executor runs parsed commands against a ListStore.
// It holds no per-channel state; concurrent read-then-write sequences on the
// same channel are last-writer-wins.
type Executor struct {
	store   store.ListStore
	logger  *zap.Logger
	timeout time.Duration
}

// NewExecutor creates a new Executor. A non-positive timeout selects
// DefaultStoreTimeout.
func NewExecutor(s store.ListStore, logger *zap.Logger, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &Executor{
		store:   s,
		logger:  logger,
		timeout: timeout,
	}
}

// indexMessages holds the per-operation replies for a missing list and a
// bad item number.
type indexMessages struct {
	noList   string
	badIndex string
}

// Execute runs req and returns the reply. It never returns an error: every
// failure is translated into reply text.
func (e *Executor) Execute(ctx context.Context, req Request) Result {
	res := e.dispatch(ctx, req)

	commandsTotal.WithLabelValues(req.Command.Kind.String(), string(res.Outcome)).Inc()

	if res.Err != nil {
		e.logger.Error("store operation failed",
			zap.String("command", req.Command.Kind.String()),
			zap.String("channel_id", req.ChannelID),
			zap.Error(res.Err),
		)
	} else {
		e.logger.Debug("command executed",
			zap.String("command", req.Command.Kind.String()),
			zap.String("channel_id", req.ChannelID),
			zap.String("outcome", string(res.Outcome)),
		)
	}

	return res
}

func (e *Executor) dispatch(ctx context.Context, req Request) Result {
	cmd := req.Command

	// The existence check runs once and is reused by every branch below.
	var listExists bool
	if cmd.Kind.needsList() {
		exists, err := e.exists(ctx, req.ChannelID)
		if err != nil {
			return storeFailure(err)
		}
		listExists = exists
	}

	switch cmd.Kind {
	case KindShowAll:
		return e.showAll(ctx, req.ChannelID, listExists)
	case KindShowItem:
		return e.showItem(ctx, req.ChannelID, cmd.Index, listExists)
	case KindAdd:
		return e.add(ctx, req.ChannelID, model.NewItem(cmd.Text, req.UserName))
	case KindSupport:
		return e.rewrite(ctx, req.ChannelID, cmd.Index, listExists,
			indexMessages{noList: MsgNothingSupport, badIndex: MsgBadIndexSupport},
			func(item string) string { return model.SupportItem(item, req.UserName) },
			MsgSupported)
	case KindRemove:
		return e.remove(ctx, req.ChannelID, cmd.Index, listExists)
	case KindComplete:
		return e.rewrite(ctx, req.ChannelID, cmd.Index, listExists,
			indexMessages{noList: MsgNothingComplete, badIndex: MsgBadIndex},
			model.CompleteItem,
			MsgItemCompleted)
	case KindClearList:
		return e.clear(ctx, req.ChannelID, listExists)
	case KindHelp:
		return Result{Text: HelpText(req.Trigger), Outcome: OutcomeOK}
	default:
		return Result{Text: InvalidText(req.Trigger), Outcome: OutcomeInvalid}
	}
}

func (e *Executor) showAll(ctx context.Context, channel string, listExists bool) Result {
	if !listExists {
		return Result{Text: MsgNothingToShow, Outcome: OutcomeNoList}
	}

	var items []string
	err := e.call(ctx, "read_all", func(ctx context.Context) error {
		var err error
		items, err = e.store.ReadAll(ctx, channel)
		return err
	})
	if err != nil {
		return storeFailure(err)
	}

	if len(items) == 0 {
		return Result{Text: MsgNothingToShow, Outcome: OutcomeNoList}
	}

	return Result{Text: FormatList(items), Outcome: OutcomeOK}
}

func (e *Executor) showItem(ctx context.Context, channel string, index int, listExists bool) Result {
	msgs := indexMessages{noList: MsgNothingToShow, badIndex: MsgBadIndex}

	item, res, ok := e.resolve(ctx, channel, index, listExists, msgs)
	if !ok {
		return res
	}

	return Result{Text: FormatItem(item), Outcome: OutcomeOK}
}

func (e *Executor) add(ctx context.Context, channel, item string) Result {
	err := e.call(ctx, "append", func(ctx context.Context) error {
		return e.store.Append(ctx, channel, item)
	})
	if err != nil {
		return storeFailure(err)
	}

	return Result{Text: MsgItemAdded, Outcome: OutcomeOK}
}

// rewrite replaces the item at index with mutate(item), keeping its position.
func (e *Executor) rewrite(
	ctx context.Context,
	channel string,
	index int,
	listExists bool,
	msgs indexMessages,
	mutate func(string) string,
	success string,
) Result {
	item, res, ok := e.resolve(ctx, channel, index, listExists, msgs)
	if !ok {
		return res
	}

	err := e.call(ctx, "replace_at", func(ctx context.Context) error {
		return e.store.ReplaceAt(ctx, channel, index-1, mutate(item))
	})
	if errors.Is(err, store.ErrNotFound) {
		return Result{Text: msgs.badIndex, Outcome: OutcomeBadIndex}
	}
	if err != nil {
		return storeFailure(err)
	}

	return Result{Text: success, Outcome: OutcomeOK}
}

// remove deletes the first entry whose value equals the item currently at
// index. Identical items are indistinguishable, so a duplicate earlier in the
// list is the one removed.
func (e *Executor) remove(ctx context.Context, channel string, index int, listExists bool) Result {
	msgs := indexMessages{noList: MsgNothingRemove, badIndex: MsgBadIndex}

	item, res, ok := e.resolve(ctx, channel, index, listExists, msgs)
	if !ok {
		return res
	}

	err := e.call(ctx, "remove_first_match", func(ctx context.Context) error {
		return e.store.RemoveFirstMatch(ctx, channel, item)
	})
	if errors.Is(err, store.ErrNotFound) {
		return Result{Text: msgs.badIndex, Outcome: OutcomeBadIndex}
	}
	if err != nil {
		return storeFailure(err)
	}

	return Result{Text: MsgItemRemoved, Outcome: OutcomeOK}
}

func (e *Executor) clear(ctx context.Context, channel string, listExists bool) Result {
	if !listExists {
		return Result{Text: MsgNothingToClear, Outcome: OutcomeNoList}
	}

	err := e.call(ctx, "delete_key", func(ctx context.Context) error {
		return e.store.DeleteKey(ctx, channel)
	})
	if err != nil {
		return storeFailure(err)
	}

	return Result{Text: MsgListCleared, Outcome: OutcomeOK}
}

// resolve reads the item behind a 1-based index. When ok is false, res holds
// the reply to send instead.
func (e *Executor) resolve(
	ctx context.Context,
	channel string,
	index int,
	listExists bool,
	msgs indexMessages,
) (item string, res Result, ok bool) {
	if !listExists {
		return "", Result{Text: msgs.noList, Outcome: OutcomeNoList}, false
	}

	if index < 1 {
		return "", Result{Text: msgs.badIndex, Outcome: OutcomeBadIndex}, false
	}

	err := e.call(ctx, "read_at", func(ctx context.Context) error {
		var err error
		item, err = e.store.ReadAt(ctx, channel, index-1)
		return err
	})
	if errors.Is(err, store.ErrNotFound) || (err == nil && item == "") {
		return "", Result{Text: msgs.badIndex, Outcome: OutcomeBadIndex}, false
	}
	if err != nil {
		return "", storeFailure(err), false
	}

	return item, Result{}, true
}

func (e *Executor) exists(ctx context.Context, channel string) (bool, error) {
	var exists bool
	err := e.call(ctx, "exists", func(ctx context.Context) error {
		var err error
		exists, err = e.store.Exists(ctx, channel)
		return err
	})
	return exists, err
}

// call runs one store operation under the per-call timeout and records its
// duration.
func (e *Executor) call(ctx context.Context, operation string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	storeCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	return err
}

func storeFailure(err error) Result {
	return Result{Text: MsgStoreFailure, Outcome: OutcomeStoreFailure, Err: err}
}
