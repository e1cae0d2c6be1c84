// Package synth rewrites documentation trees with prose, cross-references and
// examples recovered from the binding contract.
package synth

import (
	"log/slog"

	"docfixer/internal/core/config"
	"docfixer/internal/core/errors"
	"docfixer/internal/data/contract"
	"docfixer/internal/data/docstore"
	"docfixer/internal/engine/corpus"
	"docfixer/internal/shared/observability"
	"docfixer/internal/shared/util"
)

// Ids of the blocks synthesized into a notification member's remarks.
const (
	toolRemarkID        = "tool-remark"
	toolRemarkIntroID   = "tool-remark-intro"
	toolRemarkExampleID = "tool-remark-example"
)

// State is the per-run bookkeeping shared by all synthesis steps. The
// orchestrator owns it; nothing survives the run.
type State struct {
	warned map[string]bool
	uses   map[string][]*contract.Type
	args   map[string]*contract.Type
}

func NewState() *State {
	return &State{
		warned: make(map[string]bool),
		uses:   make(map[string][]*contract.Type),
		args:   make(map[string]*contract.Type),
	}
}

// firstWarning reports whether t has not been warned about yet, and marks it.
func (s *State) firstWarning(t *contract.Type) bool {
	key := t.FullName()
	if s.warned[key] {
		return false
	}
	s.warned[key] = true
	return true
}

// RecordUse notes that user posts a notification carrying args.
func (s *State) RecordUse(args, user *contract.Type) {
	if args == nil {
		return
	}
	key := args.FullName()
	s.args[key] = args
	for _, u := range s.uses[key] {
		if u == user {
			return
		}
	}
	s.uses[key] = append(s.uses[key], user)
}

// NotificationUse is one entry of the notification use index.
type NotificationUse struct {
	EventArgs *contract.Type
	Users     []*contract.Type
}

// NotificationUses returns the index sorted by event-args type name.
func (s *State) NotificationUses() []NotificationUse {
	keys := util.SortedKeys(s.uses)
	out := make([]NotificationUse, 0, len(keys))
	for _, k := range keys {
		out = append(out, NotificationUse{EventArgs: s.args[k], Users: s.uses[k]})
	}
	return out
}

type Synthesizer struct {
	cfg     *config.Config
	profile config.Profile
	locator *docstore.Locator
	miner   corpus.Miner
	state   *State
	log     *slog.Logger

	isStringConst func(string) bool
}

// New builds a synthesizer. miner may be nil; it is only consulted when
// merging is enabled in cfg.
func New(cfg *config.Config, locator *docstore.Locator, miner corpus.Miner, state *State, log *slog.Logger) *Synthesizer {
	if log == nil {
		log = slog.Default()
	}
	return &Synthesizer{
		cfg:     cfg,
		profile: cfg.ActiveProfile(),
		locator: locator,
		miner:   miner,
		state:   state,
		log:     log,

		isStringConst: contract.StringConstantPredicate(cfg.StringConstantTypes()),
	}
}

// stale emits the one-shot "documentation out of date" warning for t.
func (s *Synthesizer) stale(t *contract.Type, member, kind string) error {
	if s.state.firstWarning(t) {
		s.log.Warn("document is not up-to-date with the latest assembly",
			"type", t.FullName(), "member", member, "kind", kind)
	}
	observability.SkipsTotal.WithLabelValues(string(errors.CodeStaleDocument)).Inc()
	err := errors.New(errors.CodeStaleDocument, "no documentation node for member")
	err = errors.AddContext(err, errors.CtxType, t.FullName())
	return errors.AddContext(err, errors.CtxMember, member)
}

func (s *Synthesizer) foundation(name string) string {
	return s.profile.Namespace + ".Foundation." + name
}
