package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo catálogo en memoria; conserva el orden de inserción.
type ItemRepo struct {
	s  *Store
	tx *state
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	return r.s.view(r.tx, func(st *state) error {
		if _, ok := st.items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		st.items[item.ID] = *item
		st.itemSeq = append(st.itemSeq, item.ID)
		return nil
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out entity.Item
	err := r.s.view(r.tx, func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ItemRepo) List(_ context.Context, filter repository.ItemFilter) ([]entity.Item, error) {
	var out []entity.Item
	err := r.s.view(r.tx, func(st *state) error {
		for _, id := range st.itemSeq {
			it := st.items[id]
			switch {
			case filter.Vendor != "":
				if it.Vendor != filter.Vendor {
					continue
				}
			case filter.Type != "":
				if it.Type != filter.Type {
					continue
				}
			}
			out = append(out, it)
		}
		return nil
	})
	return out, err
}

// Update modifica datos descriptivos, par y valor; no toca quantity_on_hand.
func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	return r.s.view(r.tx, func(st *state) error {
		cur, ok := st.items[item.ID]
		if !ok {
			return fmt.Errorf("%w: item %s", domain.ErrNotFound, item.ID)
		}
		cur.Name = item.Name
		cur.Vendor = item.Vendor
		cur.Type = item.Type
		cur.Par = item.Par
		cur.UnitValue = item.UnitValue
		cur.UpdatedAt = time.Now()
		st.items[item.ID] = cur
		item.QuantityOnHand = cur.QuantityOnHand
		item.UpdatedAt = cur.UpdatedAt
		return nil
	})
}

func (r *ItemRepo) Delete(_ context.Context, id string) error {
	return r.s.view(r.tx, func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		delete(st.items, id)
		for i, v := range st.itemSeq {
			if v == id {
				st.itemSeq = append(st.itemSeq[:i:i], st.itemSeq[i+1:]...)
				break
			}
		}
		return nil
	})
}

func (r *ItemRepo) IncrementQuantity(_ context.Context, id string, delta int) (*entity.Item, error) {
	return r.mutateQuantity(id, func(cur int) int { return cur + delta })
}

func (r *ItemRepo) SetQuantity(_ context.Context, id string, quantity int) (*entity.Item, error) {
	return r.mutateQuantity(id, func(int) int { return quantity })
}

func (r *ItemRepo) mutateQuantity(id string, next func(cur int) int) (*entity.Item, error) {
	var out entity.Item
	err := r.s.view(r.tx, func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		q := next(it.QuantityOnHand)
		if q < 0 {
			return fmt.Errorf("%w: item %s quantity_on_hand quedaría en %d", domain.ErrValidation, id, q)
		}
		it.QuantityOnHand = q
		it.UpdatedAt = time.Now()
		st.items[id] = it
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
