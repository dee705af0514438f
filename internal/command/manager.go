// Package command implements undoable scene mutations and the history
// that records them.
package command

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vecedit/vecedit/internal/event"
)

// ErrReentrant is returned when push, undo or redo is called from a change
// listener while the manager is still dispatching.
var ErrReentrant = errors.New("history is busy")

// Command is one reversible mutation. Apply must leave the scene
// untouched when it fails.
type Command interface {
	Desc() string
	Apply() error
	Revert() error
}

// Change is the payload of the history change event.
type Change struct {
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

// Stats reports the stack depths.
type Stats struct {
	Undo int `json:"undo"`
	Redo int `json:"redo"`
}

// Manager keeps the undo and redo stacks.
type Manager struct {
	undo   []Command
	redo   []Command
	limit  int
	busy   bool
	logger *slog.Logger
	change event.Emitter[Change]
}

// NewManager creates a history. limit caps the undo stack (oldest entries
// are dropped); 0 keeps everything.
func NewManager(limit int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{limit: limit, logger: logger}
}

// OnChange subscribes to the change event.
func (m *Manager) OnChange(fn func(Change)) event.SubscriptionID {
	return m.change.On(fn)
}

// OffChange removes a change listener.
func (m *Manager) OffChange(id event.SubscriptionID) {
	m.change.Off(id)
}

// PushCommand applies cmd, records it and drops the redo stack.
func (m *Manager) PushCommand(cmd Command) error {
	if m.busy {
		return ErrReentrant
	}
	m.busy = true
	defer func() { m.busy = false }()

	if err := cmd.Apply(); err != nil {
		m.logger.Error("failed to apply command", "desc", cmd.Desc(), "error", err)
		return fmt.Errorf("apply %q: %w", cmd.Desc(), err)
	}
	m.undo = append(m.undo, cmd)
	if m.limit > 0 && len(m.undo) > m.limit {
		m.undo = append([]Command(nil), m.undo[len(m.undo)-m.limit:]...)
	}
	m.redo = nil
	m.logger.Debug("command pushed", "desc", cmd.Desc(), "undo", len(m.undo))
	m.emit()
	return nil
}

// Undo reverts the most recent command. It is a no-op on an empty stack.
func (m *Manager) Undo() error {
	if m.busy {
		return ErrReentrant
	}
	if len(m.undo) == 0 {
		return nil
	}
	m.busy = true
	defer func() { m.busy = false }()

	cmd := m.undo[len(m.undo)-1]
	if err := cmd.Revert(); err != nil {
		m.logger.Error("failed to undo command", "desc", cmd.Desc(), "error", err)
		return fmt.Errorf("undo %q: %w", cmd.Desc(), err)
	}
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, cmd)
	m.logger.Debug("command undone", "desc", cmd.Desc())
	m.emit()
	return nil
}

// Redo re-applies the most recently undone command. It is a no-op on an
// empty stack.
func (m *Manager) Redo() error {
	if m.busy {
		return ErrReentrant
	}
	if len(m.redo) == 0 {
		return nil
	}
	m.busy = true
	defer func() { m.busy = false }()

	cmd := m.redo[len(m.redo)-1]
	if err := cmd.Apply(); err != nil {
		m.logger.Error("failed to redo command", "desc", cmd.Desc(), "error", err)
		return fmt.Errorf("redo %q: %w", cmd.Desc(), err)
	}
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, cmd)
	m.logger.Debug("command redone", "desc", cmd.Desc())
	m.emit()
	return nil
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// UndoDesc names the command Undo would revert, or "".
func (m *Manager) UndoDesc() string {
	if len(m.undo) == 0 {
		return ""
	}
	return m.undo[len(m.undo)-1].Desc()
}

// RedoDesc names the command Redo would apply, or "".
func (m *Manager) RedoDesc() string {
	if len(m.redo) == 0 {
		return ""
	}
	return m.redo[len(m.redo)-1].Desc()
}

// Clear drops both stacks.
func (m *Manager) Clear() error {
	if m.busy {
		return ErrReentrant
	}
	if len(m.undo) == 0 && len(m.redo) == 0 {
		return nil
	}
	m.busy = true
	defer func() { m.busy = false }()
	m.undo, m.redo = nil, nil
	m.emit()
	return nil
}

func (m *Manager) Stats() Stats {
	return Stats{Undo: len(m.undo), Redo: len(m.redo)}
}

func (m *Manager) emit() {
	m.change.Emit(Change{CanUndo: m.CanUndo(), CanRedo: m.CanRedo()})
}
