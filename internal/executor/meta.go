package executor

import (
	"sort"

	"nestbox/internal/engine"
)

// MetaTable maps block names to block keys and back. Scripts refer to
// blocks by name; the world knows them by key.
type MetaTable struct {
	nameToKey map[string]engine.BlockKey
	keyToName map[engine.BlockKey]string
}

// NewMetaTable creates an empty table.
func NewMetaTable() *MetaTable {
	return &MetaTable{
		nameToKey: make(map[string]engine.BlockKey),
		keyToName: make(map[engine.BlockKey]string),
	}
}

// Insert associates a name with a key, dropping any previous pairing of
// either.
func (m *MetaTable) Insert(name string, key engine.BlockKey) {
	if old, ok := m.nameToKey[name]; ok {
		delete(m.keyToName, old)
	}
	if old, ok := m.keyToName[key]; ok {
		delete(m.nameToKey, old)
	}
	m.nameToKey[name] = key
	m.keyToName[key] = name
}

// RemoveByName drops the pairing for the name, returning its key.
func (m *MetaTable) RemoveByName(name string) (engine.BlockKey, bool) {
	key, ok := m.nameToKey[name]
	if !ok {
		return engine.BlockKey{}, false
	}
	delete(m.nameToKey, name)
	delete(m.keyToName, key)
	return key, true
}

// RemoveByKey drops the pairing for the key, returning its name.
func (m *MetaTable) RemoveByKey(key engine.BlockKey) (string, bool) {
	name, ok := m.keyToName[key]
	if !ok {
		return "", false
	}
	delete(m.nameToKey, name)
	delete(m.keyToName, key)
	return name, true
}

// ContainsName reports whether the name is in the table.
func (m *MetaTable) ContainsName(name string) bool {
	_, ok := m.nameToKey[name]
	return ok
}

// GetKey returns the key for the name.
func (m *MetaTable) GetKey(name string) (engine.BlockKey, bool) {
	key, ok := m.nameToKey[name]
	return key, ok
}

// GetName returns the name for the key.
func (m *MetaTable) GetName(key engine.BlockKey) (string, bool) {
	name, ok := m.keyToName[key]
	return name, ok
}

// Names returns the block names, sorted.
func (m *MetaTable) Names() []string {
	names := make([]string, 0, len(m.nameToKey))
	for name := range m.nameToKey {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
