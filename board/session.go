package board

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"wordslot/announce"
	"wordslot/schedule"
)

// Session is one exercise from start to finish.
type Session struct {
	cfg    Config
	log    *zap.Logger
	sched  *schedule.Scheduler
	ann    *announce.Channel
	store  *Store
	sel    *SelectionController
	engine *Engine
	val    *Validator
	menus  *menuSet
	focus  *FocusRequest
}

type Option func(*sessionOptions)

type sessionOptions struct {
	log   *zap.Logger
	sink  announce.Sink
	sched *schedule.Scheduler
}

func WithLogger(l *zap.Logger) Option {
	return func(o *sessionOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSink mirrors announcements to the rendering layer.
func WithSink(s announce.Sink) Option {
	return func(o *sessionOptions) { o.sink = s }
}

func WithScheduler(s *schedule.Scheduler) Option {
	return func(o *sessionOptions) {
		if s != nil {
			o.sched = s
		}
	}
}

// New validates cfg and builds a session. The initial arrangement is
// checked once so a pre-filled board starts with the right marker.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	o := sessionOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sched == nil {
		o.sched = schedule.New()
	}

	s := &Session{cfg: cfg, log: o.log, sched: o.sched}
	s.ann = announce.New(s.sched, cfg.AnnounceDelay,
		announce.WithSink(o.sink),
		announce.WithLogger(o.log.Named("announce")))
	s.store = newStore(cfg)
	s.sel = newSelectionController(s.store, s.ann, o.log.Named("selection"))
	s.val = newValidator(s.store, cfg.Target, cfg.Messages, s.ann, o.log.Named("validator"))
	s.engine = &Engine{
		store:        s.store,
		sel:          s.sel,
		val:          s.val,
		ann:          s.ann,
		sched:        s.sched,
		log:          o.log.Named("engine"),
		flashDelay:   cfg.FlashDelay,
		requestFocus: s.requestFocus,
	}
	s.menus = newMenuSet(s.store.slots)
	s.store.Subscribe(func(Change) { s.refreshMenus() })

	if s.store.Filled() > 0 {
		s.val.CheckAll()
	}
	s.log.Info("session started",
		zap.Int("slots", len(cfg.Slots)),
		zap.Int("tokens", len(cfg.Tokens)),
		zap.Int("placed", s.store.Filled()))
	return s, nil
}

func (s *Session) Store() *Store { return s.store }

func (s *Session) Engine() *Engine { return s.engine }

func (s *Session) Selection() *SelectionController { return s.sel }

func (s *Session) Validator() *Validator { return s.val }

func (s *Session) Announcer() *announce.Channel { return s.ann }

func (s *Session) Scheduler() *schedule.Scheduler { return s.sched }

func (s *Session) Config() Config { return s.cfg }

func (s *Session) Outcome() Outcome { return s.val.Outcome() }

func (s *Session) Marker() Marker { return s.val.Marker() }

// Live is the text last written to the live region.
func (s *Session) Live() string { return s.ann.Live() }

// Status is the text last written to the persistent status line.
func (s *Session) Status() string { return s.ann.Status() }

// Grabbed reports whether tok renders in the grabbed style: selected, or
// in the short flash after a swap.
func (s *Session) Grabbed(tok Token) bool {
	return s.sel.IsSelected(tok) || s.engine.Flashing(tok)
}

func (s *Session) DescribedBy(tok Token) string { return s.sel.DescribedBy(tok) }

// SelectToken grabs tok. With ModalityPointer this is a drag start and
// replaces any earlier selection.
func (s *Session) SelectToken(tok Token, modality Modality) error {
	if !s.store.HasToken(tok) {
		return s.structural(fmt.Errorf("select: %w %q", ErrUnknownToken, tok))
	}
	if modality == ModalityPointer {
		return s.absorb(s.sel.Replace(tok, modality))
	}
	return s.ActivateToken(tok)
}

// ActivateToken is a keyboard or click activation of tok.
//
// With nothing selected tok is grabbed; activating the selected token again
// releases it. With a different token selected the pair is swapped when
// both are placed, the word-bank one is placed when only one is, and the
// selection moves to tok when neither is.
func (s *Session) ActivateToken(tok Token) error {
	if !s.store.HasToken(tok) {
		return s.structural(fmt.Errorf("activate: %w %q", ErrUnknownToken, tok))
	}
	held, ok := s.sel.Selected()
	if ok && held == tok {
		s.sel.Deselect()
		return nil
	}
	err := s.sel.Select(tok, ModalityKeyboard)
	if !errors.Is(err, ErrAlreadySelected) {
		return s.absorb(err)
	}
	if _, err := s.engine.Swap(held, tok); err != nil {
		if errors.Is(err, ErrNotPlaced) {
			return s.absorb(s.sel.Replace(tok, ModalityKeyboard))
		}
		return s.absorb(err)
	}
	return nil
}

// ActivateSlot drops the selected token into id. Without a selection it
// does nothing.
func (s *Session) ActivateSlot(id SlotID) error {
	if !s.store.HasSlot(id) {
		return s.structural(fmt.Errorf("activate: %w %q", ErrUnknownSlot, id))
	}
	_, err := s.engine.PlaceInSlot(id)
	return s.absorb(err)
}

// Drop ends a pointer drag over target.
func (s *Session) Drop(target DropTarget) error {
	held, ok := s.sel.Selected()
	if !ok {
		return nil
	}
	switch target.Kind {
	case DropSlot:
		return s.ActivateSlot(target.Slot)
	case DropToken:
		if !s.store.HasToken(target.Token) {
			return s.structural(fmt.Errorf("drop: %w %q", ErrUnknownToken, target.Token))
		}
		if target.Token == held {
			s.sel.clear()
			s.ann.Announce(droppedMessage(held), false)
			return nil
		}
		if _, err := s.engine.Swap(held, target.Token); err != nil {
			if errors.Is(err, ErrNotPlaced) {
				s.sel.Cancel()
				return nil
			}
			return s.absorb(err)
		}
		return nil
	default:
		s.sel.Cancel()
		return nil
	}
}

// Cancel releases the selection without moving anything.
func (s *Session) Cancel() bool {
	return s.sel.Cancel()
}

// ReturnToPool sends a placed token back to the word bank.
func (s *Session) ReturnToPool(tok Token) error {
	_, err := s.engine.ReturnToPool(tok)
	if Classify(err) == ClassStructural {
		return s.structural(err)
	}
	return nil
}

// ClearSlot returns the occupant of id, if any, to the word bank.
func (s *Session) ClearSlot(id SlotID) error {
	if !s.store.HasSlot(id) {
		return s.structural(fmt.Errorf("clear: %w %q", ErrUnknownSlot, id))
	}
	tok, ok := s.store.Occupant(id)
	if !ok {
		return nil
	}
	return s.ReturnToPool(tok)
}

// PlaceFromPool is the menu's place action. A token that has left the word
// bank since the menu was built is announced and ignored, and any selection
// is kept.
func (s *Session) PlaceFromPool(tok Token, id SlotID) error {
	if !s.store.HasSlot(id) {
		return s.structural(fmt.Errorf("place: %w %q", ErrUnknownSlot, id))
	}
	if !s.store.HasToken(tok) {
		return s.structural(fmt.Errorf("place: %w %q", ErrUnknownToken, tok))
	}
	_, err := s.engine.PlaceFromPool(tok, id)
	return s.absorb(err)
}

// TakeFocusRequest returns and clears the pending focus request.
func (s *Session) TakeFocusRequest() (FocusRequest, bool) {
	if s.focus == nil {
		return FocusRequest{}, false
	}
	req := *s.focus
	s.focus = nil
	return req, true
}

func (s *Session) requestFocus(req FocusRequest) {
	s.focus = &req
}

// Fire runs a timer previously handed out by the scheduler.
func (s *Session) Fire(t schedule.Timer) bool {
	return s.sched.Fire(t)
}

// Flush runs every pending callback immediately.
func (s *Session) Flush() int {
	return s.sched.Flush()
}

// Timers returns timers armed since the last call.
func (s *Session) Timers() []schedule.Timer {
	return s.sched.Drain()
}

// absorb turns recoverable errors into no-ops.
func (s *Session) absorb(err error) error {
	switch Classify(err) {
	case ClassNone:
		return nil
	case ClassStructural:
		return s.structural(err)
	default:
		s.log.Debug("ignored", zap.Stringer("class", Classify(err)), zap.Error(err))
		return nil
	}
}

func (s *Session) structural(err error) error {
	s.log.Error("structural inconsistency", zap.Error(err))
	return err
}
