// Package translator coordinates conversion with a vocabulary assembled from
// the embedded list, an optional vocabulary file and the user store.
package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/eotext/internal/apperr"
	"github.com/starford/eotext/internal/checksum"
	"github.com/starford/eotext/internal/vocabstore"
	"github.com/starford/eotext/pkg/esperanto"
)

// Source tells where a vocabulary entry comes from.
type Source string

// Entry sources.
const (
	SourceBuiltin Source = "builtin"
	SourceFile    Source = "file"
	SourceUser    Source = "user"
)

// Event kinds passed to an EventCallback.
const (
	EventAdded    = "added"
	EventReloaded = "reloaded"
)

// EventCallback is called after the vocabulary changed. word is empty for
// reloads.
type EventCallback func(kind, word, version string)

// WordItem is a vocabulary entry as exposed to clients.
type WordItem struct {
	Word    string     `json:"word"`
	Source  Source     `json:"source"`
	AddedAt *time.Time `json:"added_at,omitempty"`
}

// Conversion is the result of a conversion request.
type Conversion struct {
	From              string `json:"from"`
	To                string `json:"to"`
	Result            string `json:"result"`
	VocabularyVersion string `json:"vocabulary_version"`
}

// snapshot is the immutable state published to readers.
type snapshot struct {
	conv    *esperanto.Converter
	items   []WordItem
	index   map[string]int
	version string
}

// Service converts text and manages the vocabulary. Conversions read the
// current snapshot without locking; reloads build a new snapshot and swap it
// in.
type Service struct {
	store     vocabstore.Store
	filePath  string
	mode      esperanto.MatchMode
	capsAware bool
	compose   bool
	logger    *slog.Logger
	onEvent   EventCallback
	now       func() time.Time

	mu    sync.Mutex // serializes reloads and appends
	state atomic.Pointer[snapshot]
}

// Option configures a Service.
type Option func(*Service)

// WithStore sets the user vocabulary store. Without a store the vocabulary
// is read-only.
func WithStore(store vocabstore.Store) Option {
	return func(s *Service) { s.store = store }
}

// WithVocabularyFile adds the entries of a vocabulary YAML file.
func WithVocabularyFile(path string) Option {
	return func(s *Service) { s.filePath = path }
}

// WithMatchMode sets the vocabulary match mode.
func WithMatchMode(mode esperanto.MatchMode) Option {
	return func(s *Service) { s.mode = mode }
}

// WithCapsAwareSuffix enables uppercase suffixes inside all-capital words.
func WithCapsAwareSuffix(enabled bool) Option {
	return func(s *Service) { s.capsAware = enabled }
}

// WithComposeMarks folds decomposed circumflex and breve letters before
// encoding.
func WithComposeMarks(enabled bool) Option {
	return func(s *Service) { s.compose = enabled }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithEventCallback registers a function called after vocabulary changes.
func WithEventCallback(cb EventCallback) Option {
	return func(s *Service) { s.onEvent = cb }
}

// NewService creates a service and loads the vocabulary.
func NewService(ctx context.Context, opts ...Option) (*Service, error) {
	s := &Service{
		mode:   esperanto.MatchFragment,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rebuild(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Convert converts text between two systems named by their codes ("u", "x",
// "h") or names.
func (s *Service) Convert(_ context.Context, from, to, text string) (*Conversion, error) {
	src, err := esperanto.ParseSystem(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	dst, err := esperanto.ParseSystem(to)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", apperr.ErrInvalidInput)
	}
	snap := s.state.Load()
	result, err := snap.conv.Convert(src, dst, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	return &Conversion{
		From:              src.String(),
		To:                dst.String(),
		Result:            result,
		VocabularyVersion: snap.version,
	}, nil
}

// Converter returns the converter of the current snapshot.
func (s *Service) Converter() *esperanto.Converter {
	return s.state.Load().conv
}

// Version returns a fingerprint of the current vocabulary and match mode.
func (s *Service) Version() string {
	return s.state.Load().version
}

// Words returns every vocabulary entry in lexical order.
func (s *Service) Words(_ context.Context) []WordItem {
	items := s.state.Load().items
	out := make([]WordItem, len(items))
	copy(out, items)
	return out
}

// Word looks up a single entry.
func (s *Service) Word(_ context.Context, word string) (*WordItem, error) {
	n, err := esperanto.NormalizeEntry(word)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	snap := s.state.Load()
	i, ok := snap.index[n]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	item := snap.items[i]
	return &item, nil
}

// AddWord validates word, appends it to the user store and activates it. The
// new snapshot is derived from the current one, so a broken vocabulary file
// does not keep a stored word inactive.
func (s *Service) AddWord(ctx context.Context, word string) (*WordItem, error) {
	if s.store == nil {
		return nil, apperr.ErrReadOnly
	}
	err := validation.Validate(word,
		validation.Required,
		validation.RuneLength(2, 64),
		validation.By(validEntry),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	n, _ := esperanto.NormalizeEntry(word)

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Load()
	if _, ok := cur.index[n]; ok {
		return nil, fmt.Errorf("%q: %w", n, apperr.ErrAlreadyExists)
	}
	vocab, err := cur.conv.Vocabulary().With(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}

	// A row may already exist when another process shares the database.
	var addedAt time.Time
	row, err := s.store.Get(ctx, n)
	switch {
	case err == nil:
		addedAt = row.AddedAt
	case errors.Is(err, apperr.ErrNotFound):
		addedAt = s.now().UTC()
		if err := s.store.Append(ctx, n, addedAt); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	items := append(slices.Clone(cur.items), WordItem{Word: n, Source: SourceUser, AddedAt: &addedAt})
	snap := s.publish(vocab, items)
	item := snap.items[snap.index[n]]

	s.logger.Info("vocabulary: word added", slog.String("word", n), slog.String("version", snap.version))
	s.emit(EventAdded, n, snap.version)
	return &item, nil
}

// Reload re-reads the vocabulary file and the user store. On failure the
// previous vocabulary stays active.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Load().version
	if err := s.rebuild(ctx); err != nil {
		return err
	}
	version := s.state.Load().version
	s.logger.Info("vocabulary: reloaded",
		slog.String("version", version),
		slog.Bool("changed", version != prev))
	s.emit(EventReloaded, "", version)
	return nil
}

func (s *Service) emit(kind, word, version string) {
	if s.onEvent != nil {
		s.onEvent(kind, word, version)
	}
}

// rebuild assembles a new snapshot. Callers hold s.mu.
func (s *Service) rebuild(ctx context.Context) error {
	vocab, err := esperanto.DefaultVocabulary().WithMode(s.mode)
	if err != nil {
		return fmt.Errorf("translator: %w", err)
	}

	var items []WordItem
	index := make(map[string]int)
	add := func(word string, src Source, addedAt *time.Time) {
		if _, ok := index[word]; ok {
			return
		}
		index[word] = len(items)
		items = append(items, WordItem{Word: word, Source: src, AddedAt: addedAt})
	}
	for _, w := range vocab.Entries() {
		add(w, SourceBuiltin, nil)
	}

	if s.filePath != "" {
		entries, err := loadFile(s.filePath)
		if err != nil {
			return err
		}
		if vocab, err = vocab.With(entries...); err != nil {
			return fmt.Errorf("translator: %s: %w", s.filePath, err)
		}
		for _, e := range entries {
			n, _ := esperanto.NormalizeEntry(e)
			add(n, SourceFile, nil)
		}
	}

	if s.store != nil {
		rows, err := s.store.List(ctx)
		if err != nil {
			return fmt.Errorf("translator: %w", err)
		}
		words := make([]string, len(rows))
		for i, r := range rows {
			words[i] = r.Word
			addedAt := r.AddedAt
			add(r.Word, SourceUser, &addedAt)
		}
		if vocab, err = vocab.With(words...); err != nil {
			return fmt.Errorf("translator: user vocabulary: %w", err)
		}
	}

	s.publish(vocab, items)
	return nil
}

// publish sorts items, builds the converter for vocab and swaps in the new
// snapshot. Callers hold s.mu.
func (s *Service) publish(vocab *esperanto.Vocabulary, items []WordItem) *snapshot {
	slices.SortFunc(items, func(a, b WordItem) int {
		return strings.Compare(a.Word, b.Word)
	})
	index := make(map[string]int, len(items))
	for i, it := range items {
		index[it.Word] = i
	}

	parts := append([]string{string(vocab.Mode())}, vocab.Entries()...)
	snap := &snapshot{
		conv: esperanto.NewConverter(
			esperanto.WithVocabulary(vocab),
			esperanto.WithCapsAwareSuffix(s.capsAware),
			esperanto.WithComposeMarks(s.compose),
		),
		items:   items,
		index:   index,
		version: checksum.Fingerprint(parts...),
	}
	s.state.Store(snap)
	return snap
}

func loadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("translator: read vocabulary file: %w", err)
	}
	f, err := esperanto.ParseVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("translator: %s: %w", path, err)
	}
	return f.Entries(), nil
}

func validEntry(value any) error {
	word, _ := value.(string)
	if _, err := esperanto.NormalizeEntry(word); err != nil {
		return errors.New(strings.TrimPrefix(err.Error(), esperanto.ErrInvalidEntry.Error()+": "))
	}
	return nil
}
