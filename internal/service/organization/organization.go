package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"samudra/internal/entities"
	"samudra/pkg/hierarchy"
	"samudra/pkg/logger"
)

type unitNode = hierarchy.Node[int64, entities.OrgUnit]

type Organization struct {
	repository Repository
	txManager  TxManager
	log        serviceLogger
}

func New(repository Repository, txManager TxManager, log serviceLogger) *Organization {
	return &Organization{
		repository: repository,
		txManager:  txManager,
		log:        log,
	}
}

func (s *Organization) CreateUnit(ctx context.Context, unitModify entities.OrgUnitModify) (*entities.OrgUnit, error) {
	if err := validateCreate(unitModify); err != nil {
		return nil, err
	}
	trimModify(&unitModify)
	if unitModify.Status == nil {
		status := entities.DefaultOrgUnitStatus
		unitModify.Status = &status
	}

	var unit *entities.OrgUnit
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		level := 0
		if unitModify.ParentID != nil {
			parent, err := s.repository.GetByID(ctx, unitModify.Kind, *unitModify.ParentID)
			if err != nil {
				return referenceError(err, ErrParentNotFound, *unitModify.ParentID)
			}
			level = parent.Level + 1
		}
		if err := s.checkDivision(ctx, unitModify.DivisionID); err != nil {
			return err
		}
		unitModify.Level = &level

		id, err := s.repository.Create(ctx, unitModify)
		if err != nil {
			return fmt.Errorf("create %s: %w", unitModify.Kind, err)
		}

		unit, err = s.repository.GetByID(ctx, unitModify.Kind, id)
		if err != nil {
			return fmt.Errorf("get created %s: %w", unitModify.Kind, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return unit, nil
}

// UpdateUnit переименовывает и/или переносит узел. При переносе уровень
// пересчитывается для всего поддерева в той же транзакции.
func (s *Organization) UpdateUnit(ctx context.Context, unitModify entities.OrgUnitModify) (*entities.OrgUnit, error) {
	if err := validateUpdate(unitModify); err != nil {
		return nil, err
	}
	trimModify(&unitModify)

	var unit *entities.OrgUnit
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		units, err := s.repository.GetAll(ctx, unitModify.Kind)
		if err != nil {
			return fmt.Errorf("get %s list: %w", unitModify.Kind, err)
		}

		current, ok := findUnit(units, *unitModify.ID)
		if !ok {
			return fmt.Errorf("%w: %s %d", ErrUnitNotFound, unitModify.Kind, *unitModify.ID)
		}

		parentID := current.ParentID
		switch {
		case unitModify.ClearParent:
			parentID = nil
		case unitModify.ParentID != nil:
			parentID = unitModify.ParentID
		}

		reparent := !sameParent(current.ParentID, parentID)
		if reparent {
			if err := hierarchy.CheckReparent(units, current.ID, parentID); err != nil {
				switch {
				case errors.Is(err, hierarchy.ErrCycle):
					return fmt.Errorf("%w: %v", ErrUnitCycle, err)
				case errors.Is(err, hierarchy.ErrNodeNotFound):
					return fmt.Errorf("%w: %v", ErrParentNotFound, err)
				}
				return fmt.Errorf("check reparent: %w", err)
			}
		}
		if err := s.checkDivision(ctx, unitModify.DivisionID); err != nil {
			return err
		}

		unit, err = s.repository.Update(ctx, unitModify)
		if err != nil {
			return fmt.Errorf("update %s: %w", unitModify.Kind, err)
		}
		if !reparent {
			return nil
		}

		levels := recomputeLevels(units, *unit)
		if err := s.repository.UpdateLevels(ctx, unitModify.Kind, levels); err != nil {
			return fmt.Errorf("update %s levels: %w", unitModify.Kind, err)
		}
		unit.Level = levels[unit.ID]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return unit, nil
}

func (s *Organization) GetUnit(ctx context.Context, kind entities.OrgUnitKind, id int64) (*entities.OrgUnit, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}

	unit, err := s.repository.GetByID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return unit, nil
}

// Hierarchy возвращает весь лес, либо одно поддерево, если задан rootID.
func (s *Organization) Hierarchy(ctx context.Context, kind entities.OrgUnitKind, rootID *int64) ([]entities.OrgUnitTree, error) {
	units, err := s.list(ctx, kind)
	if err != nil {
		return nil, err
	}

	if rootID == nil {
		roots := hierarchy.Build[int64](units)
		trees := make([]entities.OrgUnitTree, 0, len(roots))
		for _, root := range roots {
			trees = append(trees, toTree(root))
		}
		return trees, nil
	}

	root, err := hierarchy.Subtree[int64](units, *rootID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %d", ErrUnitNotFound, kind, *rootID)
	}
	return []entities.OrgUnitTree{toTree(root)}, nil
}

func (s *Organization) Descendants(ctx context.Context, kind entities.OrgUnitKind, id int64) ([]entities.OrgUnit, error) {
	units, err := s.list(ctx, kind)
	if err != nil {
		return nil, err
	}

	descendants, err := hierarchy.Descendants[int64](units, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %d", ErrUnitNotFound, kind, id)
	}
	return descendants, nil
}

// Ancestors возвращает цепочку от прямого родителя до корня.
func (s *Organization) Ancestors(ctx context.Context, kind entities.OrgUnitKind, id int64) ([]entities.OrgUnit, error) {
	units, err := s.list(ctx, kind)
	if err != nil {
		return nil, err
	}

	ancestors, err := hierarchy.Ancestors[int64](units, id)
	switch {
	case errors.Is(err, hierarchy.ErrNodeNotFound):
		return nil, fmt.Errorf("%w: %s %d", ErrUnitNotFound, kind, id)
	case errors.Is(err, hierarchy.ErrCycle):
		// цепочка возвращается до точки замыкания
		s.log.Warn("unit hierarchy contains a cycle",
			logger.NewField("kind", kind.String()),
			logger.NewField("id", id),
		)
	case err != nil:
		return nil, fmt.Errorf("get ancestors: %w", err)
	}
	return ancestors, nil
}

func (s *Organization) list(ctx context.Context, kind entities.OrgUnitKind) ([]entities.OrgUnit, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}

	units, err := s.repository.GetAll(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s list: %w", kind, err)
	}
	return units, nil
}

func (s *Organization) checkDivision(ctx context.Context, divisionID *int64) error {
	if divisionID == nil {
		return nil
	}
	if _, err := s.repository.GetByID(ctx, entities.KindDivision, *divisionID); err != nil {
		return referenceError(err, ErrDivisionNotFound, *divisionID)
	}
	return nil
}

func referenceError(err error, notFound error, id int64) error {
	if errors.Is(err, ErrUnitNotFound) {
		return fmt.Errorf("%w: %d", notFound, id)
	}
	return fmt.Errorf("get reference %d: %w", id, err)
}

// recomputeLevels применяет новое положение узла и считает уровни его поддерева.
func recomputeLevels(units []entities.OrgUnit, updated entities.OrgUnit) map[int64]int {
	moved := make([]entities.OrgUnit, len(units))
	copy(moved, units)

	base := 0
	for i, u := range moved {
		if u.ID == updated.ID {
			moved[i] = updated
		}
		if updated.ParentID != nil && u.ID == *updated.ParentID {
			base = u.Level + 1
		}
	}

	levels := make(map[int64]int)
	root, err := hierarchy.Subtree[int64](moved, updated.ID)
	if err != nil {
		levels[updated.ID] = base
		return levels
	}
	hierarchy.Walk([]*unitNode{root}, func(node *unitNode, depth int) {
		levels[node.Item.ID] = base + depth
	})
	return levels
}

func toTree(node *unitNode) entities.OrgUnitTree {
	tree := entities.OrgUnitTree{
		Unit:     node.Item,
		Children: make([]entities.OrgUnitTree, 0, len(node.Children)),
	}
	for _, child := range node.Children {
		tree.Children = append(tree.Children, toTree(child))
	}
	return tree
}

func findUnit(units []entities.OrgUnit, id int64) (entities.OrgUnit, bool) {
	for _, u := range units {
		if u.ID == id {
			return u, true
		}
	}
	return entities.OrgUnit{}, false
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func trimModify(m *entities.OrgUnitModify) {
	if m.Code != nil {
		code := strings.TrimSpace(*m.Code)
		m.Code = &code
	}
	if m.Name != nil {
		name := strings.TrimSpace(*m.Name)
		m.Name = &name
	}
	if m.Description != nil {
		description := strings.TrimSpace(*m.Description)
		m.Description = &description
	}
}
