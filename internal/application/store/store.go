package store

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

var tracer = otel.Tracer("inventory-store")

// FetchFunc lee la colección completa del servidor. limit <= 0 usa el default del store.
type FetchFunc[T any] func(ctx context.Context, limit int) (T, error)

// Refresher lo implementa todo store; lo usa el coordinador de mutaciones.
type Refresher interface {
	Name() string
	Refresh(ctx context.Context) error
}

// Store posee una colección, su estado de carga y su último error.
// Cada refresh recibe una secuencia creciente; un resultado más viejo que el último aplicado se descarta.
type Store[T any] struct {
	name         string
	fetch        FetchFunc[T]
	defaultLimit int
	size         func(T) int
	clone        func(T) T
	log          *logger.Logger
	metrics      *Metrics

	mu        sync.Mutex
	data      T
	result    State // idle, ready o errored: estado del último resultado aplicado
	errMsg    string
	lastErr   error
	issued    uint64
	applied   uint64
	inflight  int
	updatedAt time.Time
	subs      map[int]chan Snapshot[T]
	nextSub   int

	loadedOnce sync.Once
	loaded     chan struct{}
}

// Option configura un Store.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *Metrics
	lazy    bool
	ctx     context.Context
}

// WithLogger asigna el logger del store.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics asigna métricas compartidas entre stores.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLazyLoad desactiva el refresh inicial al construir el store.
func WithLazyLoad() Option {
	return func(o *options) { o.lazy = true }
}

// WithInitialContext contexto del refresh inicial (por defecto context.Background()).
func WithInitialContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// New construye el store y, salvo WithLazyLoad, dispara el refresh inicial en segundo plano.
// size cuenta elementos para logs y métricas; puede ser nil.
func New[T any](name string, fetch FetchFunc[T], defaultLimit int, size func(T) int, opts ...Option) *Store[T] {
	return newStore(name, fetch, defaultLimit, size, nil, opts...)
}

// newStore como New; clone (si no es nil) copia los datos que salen del store.
func newStore[T any](name string, fetch FetchFunc[T], defaultLimit int, size func(T) int, clone func(T) T, opts ...Option) *Store[T] {
	o := options{log: logger.Nop(), ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Store[T]{
		name:         name,
		fetch:        fetch,
		defaultLimit: defaultLimit,
		size:         size,
		clone:        clone,
		log:          o.log.Named("store." + name),
		metrics:      o.metrics,
		result:       StateIdle,
		subs:         make(map[int]chan Snapshot[T]),
		loaded:       make(chan struct{}),
	}
	if !o.lazy {
		go func() { _ = s.Refresh(o.ctx) }()
	}
	return s
}

// Name nombre del store (products, stock-movements, audit-logs, meta).
func (s *Store[T]) Name() string {
	return s.name
}

// Refresh recarga la colección con el límite por defecto.
func (s *Store[T]) Refresh(ctx context.Context) error {
	return s.RefreshWithLimit(ctx, s.defaultLimit)
}

// RefreshWithLimit recarga la colección completa. En éxito reemplaza los datos y limpia el error;
// en fallo conserva los datos anteriores y registra el mensaje. Devuelve el error del fetch.
// No se cancelan refresh en vuelo; si terminan fuera de orden gana el más reciente emitido.
func (s *Store[T]) RefreshWithLimit(ctx context.Context, limit int) error {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.inflight++
	s.notifyLocked()
	s.mu.Unlock()

	ctx, span := tracer.Start(ctx, "store.Refresh", trace.WithAttributes(
		attribute.String("store.name", s.name),
		attribute.Int64("store.seq", int64(seq)),
		attribute.Int("store.limit", limit),
	))
	defer span.End()

	data, err := s.fetch(ctx, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.markLoaded()
	s.inflight--

	if seq < s.applied {
		s.log.WithContext(ctx).Debug().
			Uint64("version", seq).
			Uint64("applied", s.applied).
			Msg("resultado obsoleto descartado")
		s.metrics.refresh(s.name, outcomeStale)
		span.SetAttributes(attribute.Bool("store.stale", true))
		s.notifyLocked()
		return err
	}
	s.applied = seq

	if err != nil {
		s.result = StateErrored
		s.errMsg = domain.Message(err)
		s.lastErr = err
		s.log.WithContext(ctx).Warn().Err(err).Uint64("version", seq).Msg("refresh fallido, se conservan los datos anteriores")
		s.metrics.refresh(s.name, outcomeError)
		span.RecordError(err)
		span.SetStatus(codes.Error, s.errMsg)
		s.notifyLocked()
		return err
	}

	if s.clone != nil {
		data = s.clone(data)
	}
	s.data = data
	s.result = StateReady
	s.errMsg = ""
	s.lastErr = nil
	s.updatedAt = time.Now()
	n := -1
	if s.size != nil {
		n = s.size(data)
	}
	s.log.WithContext(ctx).Debug().Int("items", n).Uint64("version", seq).Msg("refresh aplicado")
	s.metrics.refresh(s.name, outcomeOK)
	s.metrics.setItems(s.name, n)
	s.notifyLocked()
	return nil
}

// Snapshot devuelve el estado actual.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Data devuelve la colección actual. Los stores de colecciones devuelven una copia.
func (s *Store[T]) Data() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataLocked()
}

func (s *Store[T]) dataLocked() T {
	if s.clone == nil {
		return s.data
	}
	return s.clone(s.data)
}

// Err devuelve el último error aplicado, o nil.
func (s *Store[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// DismissError oculta el error visible sin tocar los datos; el estado queda ready si hay datos.
func (s *Store[T]) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result != StateErrored {
		return
	}
	s.errMsg = ""
	s.lastErr = nil
	if s.updatedAt.IsZero() {
		s.result = StateIdle
	} else {
		s.result = StateReady
	}
	s.notifyLocked()
}

// Loaded se cierra cuando termina el primer refresh, con o sin éxito.
func (s *Store[T]) Loaded() <-chan struct{} {
	return s.loaded
}

// WaitLoaded bloquea hasta el primer refresh o hasta que ctx termine.
func (s *Store[T]) WaitLoaded(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registra un consumidor. El canal tiene buffer 1 y conserva solo la instantánea más reciente:
// un consumidor lento nunca bloquea al store. cancel cierra el canal.
func (s *Store[T]) Subscribe() (<-chan Snapshot[T], func()) {
	ch := make(chan Snapshot[T], 1)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

func (s *Store[T]) snapshotLocked() Snapshot[T] {
	st := s.result
	if s.inflight > 0 {
		st = StateLoading
	}
	return Snapshot[T]{
		Name:      s.name,
		Data:      s.dataLocked(),
		State:     st,
		Loading:   s.inflight > 0,
		Error:     s.errMsg,
		Version:   s.applied,
		UpdatedAt: s.updatedAt,
	}
}

func (s *Store[T]) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *Store[T]) markLoaded() {
	s.loadedOnce.Do(func() { close(s.loaded) })
}
