package view

import (
	"errors"
	"sync"
)

// Manager is a registry of views keyed by name.
type Manager struct {
	mutex sync.RWMutex
	views map[string]*View
	order []string
}

func NewManager() *Manager {
	return &Manager{views: make(map[string]*View)}
}

func (m *Manager) Add(v *View) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.views[v.Name()]; ok {
		return NewDuplicateError(v.Name())
	}
	m.views[v.Name()] = v
	m.order = append(m.order, v.Name())
	return nil
}

func (m *Manager) Get(name string) (*View, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	v, ok := m.views[name]
	if !ok {
		return nil, ErrViewNotFound
	}
	return v, nil
}

// Names 按注册顺序返回
func (m *Manager) Names() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return append([]string(nil), m.order...)
}

// Remove 注销并销毁一个 view
func (m *Manager) Remove(name string) error {
	m.mutex.Lock()
	v, ok := m.views[name]
	if ok {
		delete(m.views, name)
		for i, n := range m.order {
			if n == name {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	m.mutex.Unlock()
	if !ok {
		return ErrViewNotFound
	}
	return v.Dispose()
}

// DisposeAll 销毁所有 view 并清空注册表
func (m *Manager) DisposeAll() error {
	m.mutex.Lock()
	views := m.views
	m.views = make(map[string]*View)
	m.order = nil
	m.mutex.Unlock()

	var errs []error
	for _, v := range views {
		if err := v.Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
