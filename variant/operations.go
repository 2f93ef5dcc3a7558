package variant

import (
	"fmt"

	"github.com/google/uuid"
)

// CreateVariant appends one variant initialized from the variant at source
// and returns its index. The new variant gets a generated id.
func (m *Manager) CreateVariant(source int) (int, error) {
	idx, err := m.CreateVariants(source, 1)
	if err != nil {
		return 0, err
	}
	return idx[0], nil
}

// CreateVariants appends count variants initialized from source in a single
// pass over the entities and returns their indices.
func (m *Manager) CreateVariants(source, count int) ([]int, error) {
	if count <= 0 {
		return nil, nil
	}
	ids := make([]string, count)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if source < 0 || source >= len(m.ids) {
		return nil, fmt.Errorf("%w: source %d", ErrVariantOutOfRange, source)
	}
	return m.extend(source, ids, OpCreate), nil
}

// CloneVariant creates targetIDs as copies of sourceID in one pass.
func (m *Manager) CloneVariant(sourceID string, targetIDs ...string) error {
	if len(targetIDs) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	source, ok := m.byID[sourceID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrVariantNotFound, sourceID)
	}
	seen := make(map[string]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		if id == "" {
			return ErrEmptyVariantID
		}
		if _, dup := m.byID[id]; dup {
			return fmt.Errorf("%w: %q", ErrVariantExists, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q", ErrVariantExists, id)
		}
		seen[id] = struct{}{}
	}
	m.extend(source, targetIDs, OpClone)
	return nil
}

// CloneVariantOverwrite copies sourceID into targetID, overwriting targetID
// when it already exists and creating it otherwise. The lookup and the copy
// happen under one lock.
func (m *Manager) CloneVariantOverwrite(sourceID, targetID string) error {
	if targetID == "" {
		return ErrEmptyVariantID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	source, ok := m.byID[sourceID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrVariantNotFound, sourceID)
	}
	target, exists := m.byID[targetID]
	if !exists {
		m.extend(source, []string{targetID}, OpClone)
		return nil
	}
	if target == source {
		return nil
	}
	for _, s := range m.entities {
		s.OverwriteVariantArrayElement(target, source)
	}
	m.logger.Debug("variant overwritten", "source", sourceID, "target", targetID)
	m.metrics.RecordVariantOperation(OpOverwrite, len(m.ids))
	return nil
}

// extend runs ExtendVariantArraySize on every entity. Caller holds m.mu.
func (m *Manager) extend(source int, ids []string, op string) []int {
	initSize := len(m.ids)
	for _, s := range m.entities {
		s.ExtendVariantArraySize(initSize, len(ids), source)
	}
	out := make([]int, len(ids))
	for k, id := range ids {
		out[k] = initSize + k
		m.byID[id] = initSize + k
	}
	m.ids = append(m.ids, ids...)
	m.logger.Debug("variants created",
		"source", m.ids[source], "count", len(ids), "size", len(m.ids))
	m.metrics.RecordVariantOperation(op, len(m.ids))
	return out
}

// RemoveVariant removes the variant named id. The initial variant cannot be
// removed by id.
func (m *Manager) RemoveVariant(id string) error {
	if id == InitialVariantID {
		return ErrInitialVariantRemoval
	}
	i, err := m.VariantIndex(id)
	if err != nil {
		return err
	}
	return m.RemoveVariantAt(i)
}

// RemoveVariantAt deletes the variant at index from every entity, then
// compacts every entity so the variants above index shift down by one.
// Bindings equal to index become unset; bindings above it follow their
// variant to its new index.
func (m *Manager) RemoveVariantAt(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.ids) {
		return fmt.Errorf("%w: %d", ErrVariantOutOfRange, index)
	}
	if len(m.ids) == 1 {
		return ErrLastVariant
	}
	for _, s := range m.entities {
		s.DeleteVariantArrayElement(index)
	}
	for _, s := range m.entities {
		s.CompactVariantArray(index)
	}

	removed := m.ids[index]
	m.ids = append(m.ids[:index], m.ids[index+1:]...)
	delete(m.byID, removed)
	for i := index; i < len(m.ids); i++ {
		m.byID[m.ids[i]] = i
	}

	m.vc.ResetIfEquals(index)
	m.vc.Compact(index)

	m.logger.Debug("variant removed", "id", removed, "index", index, "size", len(m.ids))
	m.metrics.RecordVariantOperation(OpRemove, len(m.ids))
	return nil
}
