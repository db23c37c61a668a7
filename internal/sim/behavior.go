package sim

import (
	"fmt"

	bt "github.com/joeycumines/go-behaviortree"
)

// buildEnemyTree wires one enemy's per-tick decision tree:
//
//	Sequence
//	├── retarget
//	├── Selector
//	│   ├── Sequence
//	│   │   ├── Selector(pathCurrent, replan)
//	│   │   └── advance
//	│   └── succeed      (no route: stand still)
//	└── fireGate
func (s *Session) buildEnemyTree(e *Enemy) bt.Node {
	leaf := func(fn func() bool) bt.Node {
		return bt.New(func([]bt.Node) (bt.Status, error) {
			if fn() {
				return bt.Success, nil
			}
			return bt.Failure, nil
		})
	}

	retarget := leaf(func() bool {
		e.Target = s.player.Cell(s.grid)
		return true
	})
	pathCurrent := leaf(func() bool {
		return e.State() == EnemySeeking
	})
	replan := leaf(func() bool {
		return s.replan(e)
	})
	advance := leaf(func() bool {
		from := e.Cell(s.grid)
		StepAlongPath(s.grid, e)
		s.log.AddVerbose(s.tick, enemyLabel(e.ID), CatMove, "step",
			fmt.Sprintf("(%.1f,%.1f) from %v", e.X, e.Y, from), float64(len(e.Path)))
		return true
	})
	succeed := leaf(func() bool { return true })
	fireGate := leaf(func() bool {
		return s.enemyTryFire(e)
	})

	return bt.New(
		bt.Sequence,
		retarget,
		bt.New(
			bt.Selector,
			bt.New(
				bt.Sequence,
				bt.New(bt.Selector, pathCurrent, replan),
				advance,
			),
			succeed,
		),
		fireGate,
	)
}

// replan runs A* from the enemy's cell to its target and reports whether a
// route exists.
func (s *Session) replan(e *Enemy) bool {
	from := e.Cell(s.grid)
	e.Path = FindPath(s.grid, from, e.Target)
	e.Replans++
	s.stats.Replans++
	s.log.AddVerbose(s.tick, enemyLabel(e.ID), CatNav, "replan",
		fmt.Sprintf("%v -> %v len=%d", from, e.Target, len(e.Path)), float64(len(e.Path)))
	return len(e.Path) > 0
}

// runEnemy ticks the enemy's tree. The tree never errors; a failing status
// only means the fire gate stayed closed.
func (s *Session) runEnemy(e *Enemy) {
	if e.tree == nil {
		e.tree = s.buildEnemyTree(e)
	}
	if _, err := e.tree.Tick(); err != nil {
		s.logger.Warn("enemy tree failed", "enemy", e.ID, "err", err)
	}
}
