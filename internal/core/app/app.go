// Package app drives a synthesis run over every type of a binding contract.
package app

import (
	"log/slog"

	"docfixer/internal/core/config"
	"docfixer/internal/core/errors"
	"docfixer/internal/data/contract"
	"docfixer/internal/data/doctree"
	"docfixer/internal/engine/classify"
	"docfixer/internal/engine/corpus"
)

type App struct {
	Config   *config.Config
	Contract contract.Provider
	DocRoot  string

	// Storage and Miner may be replaced before Run.
	Storage doctree.Storage
	Miner   corpus.Miner
	Logger  *slog.Logger

	matcher    *config.TypeMatcher
	classifier *classify.Classifier
}

// New prepares a run against the documentation tree under docRoot. When
// merging is enabled the corpus is indexed up front, so a bad docset path
// fails before any document is touched.
func New(cfg *config.Config, provider contract.Provider, docRoot string) (*App, error) {
	matcher, err := config.NewTypeMatcher(cfg.Filter)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid type filter")
	}

	a := &App{
		Config:   cfg,
		Contract: provider,
		DocRoot:  docRoot,
		Storage:  doctree.NewFileStorage(),
		Logger:   slog.Default(),
		matcher:  matcher,
		classifier: classify.New(
			cfg.Naming.NotificationSuffix,
			contract.StringConstantPredicate(cfg.StringConstantTypes()),
		),
	}

	if cfg.Merge.Enabled {
		root := cfg.CorpusRoot()
		ds, err := corpus.OpenDocSet(root, cfg.Merge.PageCache)
		if err != nil {
			err = errors.Wrap(err, errors.CodeUsage, "cannot open documentation corpus")
			return nil, errors.AddContext(err, errors.CtxPath, root)
		}
		a.Miner = ds
	}
	return a, nil
}
