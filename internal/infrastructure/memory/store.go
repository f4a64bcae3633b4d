// Package memory implementa los puertos de persistencia en memoria con transacciones
// optimistas: las lecturas toman copias, las escrituras se acumulan en la tx y al
// confirmar se verifica que cada registro escrito conserve la versión leída.
// Se usa en pruebas y con APP_STORE=memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/entregas-epp/internal/application/inventory"
	"github.com/jhoicas/entregas-epp/internal/domain"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado confirmado compartido.
type Store struct {
	mu         sync.RWMutex
	equipment  map[string]*entity.EquipmentStock
	deliveries map[string]*entity.Delivery
	movements  []*entity.StockMovement
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		equipment:  make(map[string]*entity.EquipmentStock),
		deliveries: make(map[string]*entity.Delivery),
	}
}

// PutEquipment carga o reemplaza registros de stock (rol del catálogo, fuera del motor).
// El total de equipos con tallas se recalcula; Version arranca en 1.
func (s *Store) PutEquipment(stocks ...*entity.EquipmentStock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range stocks {
		c := st.Clone()
		c.RecomputeAggregate()
		if prev, ok := s.equipment[c.ID]; ok {
			c.Version = prev.Version + 1
		} else if c.Version == 0 {
			c.Version = 1
		}
		s.equipment[c.ID] = c
	}
}

// Run ejecuta fn en una transacción optimista y confirma si fn retorna nil.
// Si el contexto se cancela antes de confirmar no se escribe nada.
func (s *Store) Run(ctx context.Context, fn inventory.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := newTxn(s)
	if err := fn(&stockRepo{t: t}, &deliveryRepo{t: t}, &movementRepo{t: t}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.commit()
}

// EquipmentStocks repositorio fuera de transacción (cada escritura confirma sola).
func (s *Store) EquipmentStocks() repository.EquipmentStockRepository {
	return &stockRepo{store: s}
}

// Deliveries repositorio de entregas fuera de transacción.
func (s *Store) Deliveries() repository.DeliveryRepository {
	return &deliveryRepo{store: s}
}

// Movements repositorio de kardex fuera de transacción.
func (s *Store) Movements() repository.StockMovementRepository {
	return &movementRepo{store: s}
}

// autoCommit ejecuta una escritura suelta como transacción propia.
func (s *Store) autoCommit(ctx context.Context, fn func(t *txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := newTxn(s)
	if err := fn(t); err != nil {
		return err
	}
	return t.commit()
}

// ── transacción ──────────────────────────────────────────────────────────────

type stagedStock struct {
	stock    *entity.EquipmentStock
	expected int64 // versión confirmada que se leyó
}

type stagedDelivery struct {
	delivery *entity.Delivery // nil = eliminada
	expected int64            // 0 = creación
}

type txn struct {
	store      *Store
	stocks     map[string]*stagedStock
	deliveries map[string]*stagedDelivery
	movements  []*entity.StockMovement
}

func newTxn(s *Store) *txn {
	return &txn{
		store:      s,
		stocks:     make(map[string]*stagedStock),
		deliveries: make(map[string]*stagedDelivery),
	}
}

func (t *txn) getStock(id string) *entity.EquipmentStock {
	if st, ok := t.stocks[id]; ok {
		return st.stock.Clone()
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.store.equipment[id].Clone()
}

func (t *txn) putStock(stock *entity.EquipmentStock) error {
	expected := stock.Version
	if st, ok := t.stocks[stock.ID]; ok {
		if st.stock.Version != stock.Version {
			return fmt.Errorf("%w: equipo %s", domain.ErrConflict, stock.ID)
		}
		expected = st.expected
	}
	c := stock.Clone()
	c.Version = stock.Version + 1
	t.stocks[stock.ID] = &stagedStock{stock: c, expected: expected}
	stock.Version = c.Version
	return nil
}

func (t *txn) getDelivery(id string) *entity.Delivery {
	if st, ok := t.deliveries[id]; ok {
		return st.delivery.Clone()
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.store.deliveries[id].Clone()
}

func (t *txn) stageDelivery(id string, d *entity.Delivery, readVersion int64) {
	expected := readVersion
	if st, ok := t.deliveries[id]; ok {
		expected = st.expected
	}
	t.deliveries[id] = &stagedDelivery{delivery: d, expected: expected}
}

// commit verifica versiones bajo el lock de escritura y aplica todo o nada.
func (t *txn) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, st := range t.stocks {
		cur, ok := s.equipment[id]
		if !ok || cur.Version != st.expected {
			return fmt.Errorf("%w: equipo %s", domain.ErrConflict, id)
		}
	}
	for id, st := range t.deliveries {
		cur, ok := s.deliveries[id]
		switch {
		case st.expected == 0 && ok:
			return fmt.Errorf("%w: entrega %s ya existe", domain.ErrConflict, id)
		case st.expected != 0 && (!ok || cur.Version != st.expected):
			return fmt.Errorf("%w: entrega %s", domain.ErrConflict, id)
		}
	}

	for id, st := range t.stocks {
		s.equipment[id] = st.stock
	}
	for id, st := range t.deliveries {
		if st.delivery == nil {
			delete(s.deliveries, id)
			continue
		}
		s.deliveries[id] = st.delivery
	}
	s.movements = append(s.movements, t.movements...)
	return nil
}

// ── repositorios ─────────────────────────────────────────────────────────────

// Cada adaptador trabaja sobre una tx (t != nil) o confirma cada escritura (store != nil).

type stockRepo struct {
	t     *txn
	store *Store
}

func (r *stockRepo) txn() *txn {
	if r.t != nil {
		return r.t
	}
	return newTxn(r.store)
}

func (r *stockRepo) Get(ctx context.Context, id string) (*entity.EquipmentStock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.txn().getStock(id), nil
}

func (r *stockRepo) GetMany(ctx context.Context, ids []string) (map[string]*entity.EquipmentStock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := r.txn()
	out := make(map[string]*entity.EquipmentStock, len(ids))
	for _, id := range ids {
		if st := t.getStock(id); st != nil {
			out[id] = st
		}
	}
	return out, nil
}

func (r *stockRepo) List(ctx context.Context) ([]*entity.EquipmentStock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := r.txn()
	seen := make(map[string]struct{})
	t.store.mu.RLock()
	for id := range t.store.equipment {
		seen[id] = struct{}{}
	}
	t.store.mu.RUnlock()
	for id := range t.stocks {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*entity.EquipmentStock, 0, len(ids))
	for _, id := range ids {
		if st := t.getStock(id); st != nil {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *stockRepo) Update(ctx context.Context, stock *entity.EquipmentStock) error {
	if r.t != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		return r.t.putStock(stock)
	}
	return r.store.autoCommit(ctx, func(t *txn) error { return t.putStock(stock) })
}

type deliveryRepo struct {
	t     *txn
	store *Store
}

func (r *deliveryRepo) run(ctx context.Context, fn func(t *txn) error) error {
	if r.t != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(r.t)
	}
	return r.store.autoCommit(ctx, fn)
}

func (r *deliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.t != nil {
		return r.t.getDelivery(id), nil
	}
	return newTxn(r.store).getDelivery(id), nil
}

func (r *deliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	return r.run(ctx, func(t *txn) error {
		if t.getDelivery(d.ID) != nil {
			return fmt.Errorf("%w: entrega %s ya existe", domain.ErrConflict, d.ID)
		}
		d.Version = 1
		t.stageDelivery(d.ID, d.Clone(), 0)
		return nil
	})
}

func (r *deliveryRepo) Replace(ctx context.Context, d *entity.Delivery) error {
	return r.run(ctx, func(t *txn) error {
		cur := t.getDelivery(d.ID)
		if cur == nil || cur.Version != d.Version {
			return fmt.Errorf("%w: entrega %s", domain.ErrConflict, d.ID)
		}
		c := d.Clone()
		c.Version = d.Version + 1
		t.stageDelivery(d.ID, c, d.Version)
		d.Version = c.Version
		return nil
	})
}

func (r *deliveryRepo) Delete(ctx context.Context, id string, version int64) error {
	return r.run(ctx, func(t *txn) error {
		cur := t.getDelivery(id)
		if cur == nil || cur.Version != version {
			return fmt.Errorf("%w: entrega %s", domain.ErrConflict, id)
		}
		t.stageDelivery(id, nil, version)
		return nil
	})
}

func (r *deliveryRepo) List(ctx context.Context, f repository.DeliveryFilter) ([]*entity.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	if r.t != nil {
		s = r.t.store
	}
	s.mu.RLock()
	all := make([]*entity.Delivery, 0, len(s.deliveries))
	for _, d := range s.deliveries {
		if f.WorkerID != "" && d.WorkerID != f.WorkerID {
			continue
		}
		if f.Area != "" && d.Area != f.Area {
			continue
		}
		if f.From != nil && d.DeliveryDate.Before(*f.From) {
			continue
		}
		if f.To != nil && d.DeliveryDate.After(*f.To) {
			continue
		}
		all = append(all, d.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].DeliveryDate.Equal(all[j].DeliveryDate) {
			return all[i].DeliveryDate.After(all[j].DeliveryDate)
		}
		return all[i].ID < all[j].ID
	})
	return page(all, f.Limit, f.Offset), nil
}

type movementRepo struct {
	t     *txn
	store *Store
}

func (r *movementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := *m
	if r.t != nil {
		r.t.movements = append(r.t.movements, &c)
		return nil
	}
	return r.store.autoCommit(ctx, func(t *txn) error {
		t.movements = append(t.movements, &c)
		return nil
	})
}

func (r *movementRepo) ListByEquipment(ctx context.Context, equipmentID string, limit, offset int) ([]*entity.StockMovement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	if r.t != nil {
		s = r.t.store
	}
	s.mu.RLock()
	out := make([]*entity.StockMovement, 0)
	for i := len(s.movements) - 1; i >= 0; i-- {
		if m := s.movements[i]; m.EquipmentID == equipmentID {
			c := *m
			out = append(out, &c)
		}
	}
	s.mu.RUnlock()
	return page(out, limit, offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
